// Package redis connects to Redis and stores the json backend's document in it.
package redis

import (
	"context"
	"log/slog"
	"net"

	"github.com/redis/go-redis/v9"

	"gallery_backend/internal/platform/config"
)

// Config holds the connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr is host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Enabled reports whether a Redis host was configured at all.
func (c Config) Enabled() bool {
	return c.Host != ""
}

func LoadConfigFromEnv() Config {
	return Config{
		Host:     config.String("REDIS_HOST", ""),
		Port:     config.String("REDIS_PORT", "6379"),
		Password: config.String("REDIS_PASSWORD", ""),
		DB:       config.Int("REDIS_DB", 0),
	}
}

// NewRedisClient connects and pings. The caller owns the returned client.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
