package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionEntry represents session_entries table (SQL session backend)
type SessionEntry struct {
	Key       string    `gorm:"column:session_key;primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionEntry) TableName() string {
	return "session_entries"
}

// AutoMigrate creates the tables used by the SQL session backend
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&SessionEntry{})
}
