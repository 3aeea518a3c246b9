package config

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// Backend names the storage implementation.
type Backend string

const (
	BackendAuto Backend = "auto"
	BackendSQL  Backend = "sql"
	BackendJSON Backend = "json"
)

// Blob names where the json backend persists its document.
type Blob string

const (
	BlobFile   Blob = "file"
	BlobRedis  Blob = "redis"
	BlobMemory Blob = "memory"
)

// Config is the application-level configuration. Database and Redis settings
// are loaded by their own packages.
type Config struct {
	Backend        Backend
	JSONBlob       Blob
	JSONBlobPath   string
	JSONBlobKey    string
	CatalogTTL     time.Duration
	JWTSecret      string
	JWTExpiration  time.Duration
	AdminEmails    []string
	AdminMarker    string
	AuthRateLimit  int
	AuthRateWindow time.Duration
	HTTPAddr       string
	LogLevel       slog.Level
}

// Load reads Config from the environment.
func Load() (Config, error) {
	cfg := Config{
		Backend:        Backend(strings.ToLower(String("GALLERY_BACKEND", string(BackendAuto)))),
		JSONBlob:       Blob(strings.ToLower(String("JSON_BLOB", string(BlobFile)))),
		JSONBlobPath:   String("JSON_BLOB_PATH", "gallery.json"),
		JSONBlobKey:    String("JSON_BLOB_KEY", "gallery:dataset"),
		CatalogTTL:     Duration("CATALOG_CACHE_TTL", 5*time.Minute),
		JWTSecret:      String("JWT_SECRET", ""),
		JWTExpiration:  Duration("JWT_EXPIRATION", 24*time.Hour),
		AdminEmails:    List("ADMIN_EMAILS", []string{"admin@projetoquadros.com"}),
		AdminMarker:    String("ADMIN_EMAIL_MARKER", ""),
		AuthRateLimit:  Int("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: Duration("AUTH_RATE_WINDOW", time.Minute),
		HTTPAddr:       String("HTTP_ADDR", ":8080"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(String("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendSQL, BackendJSON:
	default:
		return fmt.Errorf("GALLERY_BACKEND: unknown backend %q", c.Backend)
	}
	switch c.JSONBlob {
	case BlobFile, BlobRedis, BlobMemory:
	default:
		return fmt.Errorf("JSON_BLOB: unknown blob %q", c.JSONBlob)
	}
	return nil
}

// ResolveBackend turns auto into a concrete backend by platform: the json
// store where no embedded SQL engine can run (js/wasm), SQL everywhere else.
func (c Config) ResolveBackend() Backend {
	if c.Backend != BackendAuto {
		return c.Backend
	}
	return backendFor(runtime.GOOS)
}

func backendFor(goos string) Backend {
	if goos == "js" || goos == "wasip1" {
		return BackendJSON
	}
	return BackendSQL
}
