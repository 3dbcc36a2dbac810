package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/questchronicles/internal/cli"
	"github.com/udisondev/questchronicles/internal/config"
	"github.com/udisondev/questchronicles/internal/data"
	"github.com/udisondev/questchronicles/internal/db"
	"github.com/udisondev/questchronicles/internal/game/quest"
	"github.com/udisondev/questchronicles/internal/game/session"
)

const GameConfigPath = "config/questchronicles.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := flag.String("config", GameConfigPath, "path to YAML config")
	flag.Parse()

	// .env необязателен: переменные окружения могут быть заданы напрямую.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.LoadGame(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("quest chronicles starting", "log_level", cfg.LogLevel, "storage", cfg.Storage.Backend)

	catalogs, err := loadCatalogs(cfg.DataDir)
	if err != nil {
		return err
	}

	repo, err := db.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Error("closing storage", "err", err)
		}
	}()

	app := cli.New(os.Stdin, os.Stdout, repo, catalogs, session.NewRand(cfg.Rules.Seed), cfg.Rules)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("quest chronicles stopped")
	return nil
}

// setupLogging sends logs to cfg.LogFile, or stderr when unset, so stdout
// stays with the game text.
func setupLogging(cfg config.Game) (func(), error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

// loadCatalogs loads items and quests in parallel. Missing data files are
// created with the starter content and loaded again.
func loadCatalogs(dir string) (session.Catalogs, error) {
	catalogs, err := loadCatalogFiles(dir)
	if errors.Is(err, data.ErrMissingDataFile) {
		slog.Warn("data files missing, creating defaults", "dir", dir)
		if err := data.CreateDefaultFiles(dir); err != nil {
			return session.Catalogs{}, err
		}
		catalogs, err = loadCatalogFiles(dir)
	}
	if err != nil {
		return session.Catalogs{}, fmt.Errorf("loading game data: %w", err)
	}

	if err := quest.NewManager(catalogs.Quests).ValidatePrerequisites(); err != nil {
		return session.Catalogs{}, fmt.Errorf("validating quests: %w", err)
	}

	slog.Info("game data loaded", "items", catalogs.Items.Len(), "quests", catalogs.Quests.Len())
	return catalogs, nil
}

func loadCatalogFiles(dir string) (session.Catalogs, error) {
	var (
		catalogs session.Catalogs
		g        errgroup.Group
	)
	g.Go(func() error {
		items, err := data.LoadItems(filepath.Join(dir, data.ItemsFile))
		catalogs.Items = items
		return err
	})
	g.Go(func() error {
		quests, err := data.LoadQuests(filepath.Join(dir, data.QuestsFile))
		catalogs.Quests = quests
		return err
	})
	if err := g.Wait(); err != nil {
		return session.Catalogs{}, err
	}
	return catalogs, nil
}
