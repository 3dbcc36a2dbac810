package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUESTCHRONICLES_"

// Game holds all configuration for the game binary.
type Game struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"LOG_FILE"` // empty = stderr

	// Directory with items.txt and quests.txt
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`

	Storage Storage `yaml:"storage" envPrefix:"STORAGE_"`
	Rules   Rules   `yaml:"game" envPrefix:"GAME_"`
}

// Storage selects and configures the character repository.
type Storage struct {
	Backend    string         `yaml:"backend" env:"BACKEND"`
	SaveDir    string         `yaml:"save_dir" env:"SAVE_DIR"`
	SQLitePath string         `yaml:"sqlite_path" env:"SQLITE_PATH"`
	Database   DatabaseConfig `yaml:"database" envPrefix:"DB_"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Rules tunes gameplay numbers that are not part of the core formulas.
type Rules struct {
	// RNG seed; 0 = seeded from time
	Seed uint64 `yaml:"seed" env:"SEED"`

	ReviveCostPerLevel int `yaml:"revive_cost_per_level" env:"REVIVE_COST_PER_LEVEL"`
	MinReviveCost      int `yaml:"min_revive_cost" env:"MIN_REVIVE_COST"`
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		DataDir:  "data",
		Storage: Storage{
			Backend:    BackendFile,
			SaveDir:    "data/save_games",
			SQLitePath: "data/questchronicles.db",
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "questchronicles",
				Password: "questchronicles",
				DBName:   "questchronicles",
				SSLMode:  "disable",
			},
		},
		Rules: Rules{
			ReviveCostPerLevel: 20,
			MinReviveCost:      10,
		},
	}
}

// LoadGame loads config from a YAML file, then applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		slog.Debug("config file not found, using defaults", "path", path)
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (g Game) Validate() error {
	var errs []error

	if _, err := ParseLogLevel(g.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(g.DataDir) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}

	switch g.Storage.Backend {
	case BackendFile:
		if strings.TrimSpace(g.Storage.SaveDir) == "" {
			errs = append(errs, errors.New("storage.save_dir is required for file backend"))
		}
	case BackendSQLite:
		if strings.TrimSpace(g.Storage.SQLitePath) == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for sqlite backend"))
		}
	case BackendPostgres:
		if g.Storage.Database.Host == "" || g.Storage.Database.DBName == "" {
			errs = append(errs, errors.New("storage.database host and dbname are required for postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.backend %q", g.Storage.Backend))
	}

	if g.Rules.ReviveCostPerLevel < 0 {
		errs = append(errs, fmt.Errorf("game.revive_cost_per_level must be >= 0, got %d", g.Rules.ReviveCostPerLevel))
	}
	if g.Rules.MinReviveCost < 0 {
		errs = append(errs, fmt.Errorf("game.min_revive_cost must be >= 0, got %d", g.Rules.MinReviveCost))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ParseLogLevel maps a config level name to slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
	}
}
