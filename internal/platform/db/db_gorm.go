// Package db opens the gorm connection used by the SQL backend.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gallery_backend/internal/platform/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	retryInterval = 3 * time.Second
)

// Config holds the connection settings for either supported driver.
type Config struct {
	Driver         string
	SQLitePath     string
	User           string
	Password       string
	Name           string
	Host           string
	Port           string
	SSLMode        string
	ConnectTimeout time.Duration
	LogLevel       logger.LogLevel
}

// LoadConfigFromEnv reads DB_* and SQLITE_PATH.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:         strings.ToLower(config.String("DB_DRIVER", DriverSQLite)),
		SQLitePath:     config.String("SQLITE_PATH", "gallery.db"),
		User:           config.String("DB_USER", ""),
		Password:       config.String("DB_PASSWORD", ""),
		Name:           config.String("DB_NAME", ""),
		Host:           config.String("DB_HOST", "localhost"),
		Port:           config.String("DB_PORT", "5432"),
		SSLMode:        config.String("DB_SSLMODE", "disable"),
		ConnectTimeout: config.Duration("DB_CONNECT_TIMEOUT", 60*time.Second),
		LogLevel:       gormLogLevel(config.String("LOG_LEVEL", "info")),
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}

// BuildDSN returns the connection string for cfg.Driver.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
	}
	path := cfg.SQLitePath
	if path == "" {
		path = "gallery.db"
	}
	if path == ":memory:" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects according to cfg. In-memory sqlite is pinned to a single
// connection because every new connection would see an empty database.
func Open(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(cfg.LogLevel),
	}

	var opener Opener
	switch cfg.Driver {
	case DriverSQLite, "":
		opener = func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }
	case DriverPostgres:
		opener = func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	gdb, err := ConnectWithRetry(BuildDSN(cfg), timeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Driver != DriverPostgres && strings.Contains(cfg.SQLitePath, ":memory:") {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	slog.Info("database connected", "driver", cfg.Driver)
	return gdb, nil
}

// Close releases the underlying pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("nil db")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
