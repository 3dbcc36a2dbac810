package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/questchronicles/internal/config"
)

// Open returns the character repository selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage) (CharacterRepository, error) {
	var (
		repo CharacterRepository
		err  error
	)

	switch cfg.Backend {
	case config.BackendFile, "":
		repo, err = NewFileRepository(cfg.SaveDir)
	case config.BackendSQLite:
		repo, err = OpenSQLite(ctx, cfg.SQLitePath)
	case config.BackendPostgres:
		repo, err = OpenPostgres(ctx, cfg.Database.DSN())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Backend, err)
	}

	slog.Info("character storage ready", "backend", cfg.Backend)
	return repo, nil
}
