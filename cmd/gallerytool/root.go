package main

import (
	"context"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"gallery_backend/internal/app/di"
	"gallery_backend/internal/platform/config"
	"gallery_backend/internal/platform/db"
	infraredis "gallery_backend/internal/platform/redis"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gallerytool",
		Short: "Maintain the gallery data store",
		Long: `Maintain the gallery data store selected by GALLERY_BACKEND.

Available commands:
  init    - create the schema and seed the default settings
  export  - write a full backup document
  import  - replace all data with a backup document
  stats   - print the dashboard statistics`,
		SilenceUsage: true,
	}
	root.AddCommand(newInitCommand())
	root.AddCommand(newExportCommand())
	root.AddCommand(newImportCommand())
	root.AddCommand(newStatsCommand())
	return root
}

// session is one opened backend with its usecases.
type session struct {
	backend *di.Backend
	uc      *di.Usecases
	rdb     *redisv9.Client
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfigFromEnv(); rcfg.Enabled() {
		if rdb, err = infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
			rdb = nil
		}
	}

	backend, err := di.OpenBackend(ctx, cfg, db.LoadConfigFromEnv(), rdb)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}
	return &session{backend: backend, uc: di.NewUsecases(backend, rdb, cfg), rdb: rdb}, nil
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		slog.Error("failed to close storage backend", "error", err)
	}
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
}
