package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates a Redis client for the redis session driver and
// pings it with a short timeout
func ConnectRedis(cfg *Config) (*redis.Client, error) {
	var tlsConf *tls.Config
	if cfg.Redis.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}

	log.Printf("✅ Redis connected successfully [%s/%d]", cfg.Redis.Addr, cfg.Redis.DB)
	return client, nil
}
