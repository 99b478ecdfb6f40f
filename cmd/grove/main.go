package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grove-ui/grove/core/nested"
	"github.com/grove-ui/grove/internal/config"
	"github.com/grove-ui/grove/internal/logger"
	"github.com/grove-ui/grove/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})

	adapter, ok := nested.AdapterFor(cfg.Nested.Adapter)
	if !ok {
		log.Fatalf("unknown adapter %q", cfg.Nested.Adapter)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := store.RunMigrations(cfg.Store.Path, migrationsDir()); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	app := newApp(ctx, cfg, adapter, store.NewSnapshotStore(db))
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func migrationsDir() string {
	if dir := os.Getenv("GROVE_MIGRATIONS"); dir != "" {
		return dir
	}
	return "internal/store/migrations"
}
