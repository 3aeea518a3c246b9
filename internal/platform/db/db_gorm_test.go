package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "postgres",
			cfg: Config{
				Driver: DriverPostgres, User: "u", Password: "p", Name: "gallery",
				Host: "db", Port: "5432", SSLMode: "disable",
			},
			want: "host=db user=u password=p dbname=gallery port=5432 sslmode=disable TimeZone=UTC",
		},
		{
			name: "sqlite file",
			cfg:  Config{Driver: DriverSQLite, SQLitePath: "data/gallery.db"},
			want: "data/gallery.db?_foreign_keys=on&_busy_timeout=5000",
		},
		{
			name: "sqlite file with params",
			cfg:  Config{Driver: DriverSQLite, SQLitePath: "gallery.db?cache=shared"},
			want: "gallery.db?cache=shared&_foreign_keys=on&_busy_timeout=5000",
		},
		{
			name: "sqlite memory",
			cfg:  Config{Driver: DriverSQLite, SQLitePath: ":memory:"},
			want: ":memory:",
		},
		{
			name: "sqlite default path",
			cfg:  Config{},
			want: "gallery.db?_foreign_keys=on&_busy_timeout=5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildDSN(tt.cfg))
		})
	}
}

func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	calls := 0
	opener := func(dsn string) (*gorm.DB, error) {
		calls++
		return mockDB, nil
	}

	got, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, got)
	assert.Equal(t, 1, calls)
}

func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel: sleeps between attempts.
	mockDB := &gorm.DB{}
	calls := 0
	opener := func(dsn string) (*gorm.DB, error) {
		calls++
		if calls < 2 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	got, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, got)
	assert.Equal(t, 2, calls)
}

func TestConnectWithRetry_Timeout(t *testing.T) {
	t.Parallel()

	calls := 0
	opener := func(dsn string) (*gorm.DB, error) {
		calls++
		return nil, errors.New("connection refused")
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, calls)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_NAME", "envdb")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("DB_CONNECT_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, "envdb", cfg.Name)
	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, "5433", cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, logger.Info, cfg.LogLevel)
}

func TestOpen_SQLiteMemory(t *testing.T) {
	t.Parallel()

	gdb, err := Open(Config{Driver: DriverSQLite, SQLitePath: ":memory:", ConnectTimeout: time.Second, LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{Driver: "oracle"})
	assert.Error(t, err)
}
