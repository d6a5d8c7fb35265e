package config

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"time"

	"credit-admin/internal/core/domain"
	"credit-admin/internal/core/services"
	"credit-admin/internal/pkg/password"
)

// Seeder loads the development roster and generated loans
type Seeder struct {
	cfg    *Config
	store  *services.IdentityStore
	ledger *services.LoanLedger
	now    func() time.Time
}

// NewSeeder creates a new seeder instance
func NewSeeder(cfg *Config, store *services.IdentityStore, ledger *services.LoanLedger) *Seeder {
	return &Seeder{cfg: cfg, store: store, ledger: ledger, now: time.Now}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Seeding mock data...")

	var hash string
	if s.cfg.IsStrictAuth() {
		h, err := password.Hash(s.cfg.Seed.Password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		hash = h
	}

	users := MockUsers(hash)
	if err := s.store.SeedUsers(ctx, users); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	rng := rand.New(rand.NewSource(s.seed()))
	loans := MockLoans(users[0], s.cfg.Seed.LoanCount, rng, s.now())
	if err := s.ledger.SeedLoans(ctx, loans); err != nil {
		return fmt.Errorf("seed loans: %w", err)
	}

	log.Printf("✅ Seeded %d users and %d loans", len(users), len(loans))
	return nil
}

func (s *Seeder) seed() int64 {
	if s.cfg.Seed.RandomSeed != 0 {
		return s.cfg.Seed.RandomSeed
	}
	return time.Now().UnixNano()
}

// MockUsers returns the fixed development roster, one user per role
func MockUsers(passwordHash string) []*domain.User {
	return []*domain.User{
		{
			ID:           "1",
			Name:         "John Okoh",
			Email:        "john@example.com",
			Role:         domain.RoleUser,
			Image:        "https://randomuser.me/api/portraits/men/1.jpg",
			PasswordHash: passwordHash,
		},
		{
			ID:           "2",
			Name:         "Jane Smith",
			Email:        "jane@example.com",
			Role:         domain.RoleVerifier,
			Image:        "https://randomuser.me/api/portraits/women/2.jpg",
			PasswordHash: passwordHash,
		},
		{
			ID:           "3",
			Name:         "Admin User",
			Email:        "admin@example.com",
			Role:         domain.RoleAdmin,
			Image:        "https://randomuser.me/api/portraits/men/3.jpg",
			PasswordHash: passwordHash,
		},
	}
}

// MockLoans generates n applications owned by owner with amounts in
// 10000..100000 and submissions within the last 30 days. The result is
// ordered oldest first.
func MockLoans(owner *domain.User, n int, rng *rand.Rand, now time.Time) []*domain.LoanApplication {
	loans := make([]*domain.LoanApplication, 0, n)
	for i := 0; i < n; i++ {
		created := now.AddDate(0, 0, -rng.Intn(30))

		var notes string
		switch {
		case i%3 == 0:
			notes = "Net Debt Set"
		case i%5 == 0:
			notes = "Loan Fully Repaid"
		}

		loans = append(loans, &domain.LoanApplication{
			ID:           fmt.Sprintf("loan-%d", i),
			UserID:       owner.ID,
			OfficerName:  owner.Name,
			OfficerImage: owner.Image,
			Amount:       math.Round(rng.Float64()*90000 + 10000),
			Purpose:      domain.LoanPurposes[rng.Intn(len(domain.LoanPurposes))],
			Description:  "Generated application for development data",
			Status:       domain.LoanStatuses[rng.Intn(len(domain.LoanStatuses))],
			CreatedAt:    created,
			UpdatedAt:    now,
			Notes:        notes,
		})
	}

	sort.SliceStable(loans, func(a, b int) bool {
		return loans[a].CreatedAt.Before(loans[b].CreatedAt)
	})
	return loans
}
