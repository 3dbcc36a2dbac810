package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/udisondev/questchronicles/internal/model"
)

// SQLiteRepository stores characters in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
// Path ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := path
	if path != ":memory:" {
		cleanPath := filepath.Clean(path)
		if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite dir: %w", err)
		}
		dsn = "file:" + cleanPath
	}
	dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Одно соединение: in-memory база живёт в пределах соединения.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB, "sqlite3"); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &SQLiteRepository{db: sqlDB}, nil
}

// Save upserts the character and replaces its items and quests in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, c *model.Character) error {
	if err := checkName(c.Name()); err != nil {
		return err
	}
	rec := c.Record()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO characters (name, class, level, health, max_health, strength, magic,
		                        experience, gold, equipped_weapon, equipped_armor, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET
			class = excluded.class,
			level = excluded.level,
			health = excluded.health,
			max_health = excluded.max_health,
			strength = excluded.strength,
			magic = excluded.magic,
			experience = excluded.experience,
			gold = excluded.gold,
			equipped_weapon = excluded.equipped_weapon,
			equipped_armor = excluded.equipped_armor,
			updated_at = CURRENT_TIMESTAMP`,
		rec.Name, rec.Class.String(), rec.Level, rec.Health, rec.MaxHealth, rec.Strength, rec.Magic,
		rec.Experience, rec.Gold, rec.EquippedWeapon, rec.EquippedArmor,
	)
	if err != nil {
		return fmt.Errorf("upserting character %s: %w", rec.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM character_items WHERE character_name = ?`, rec.Name); err != nil {
		return fmt.Errorf("clearing items of %s: %w", rec.Name, err)
	}
	for i, itemID := range rec.Inventory {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO character_items (character_name, position, item_id) VALUES (?, ?, ?)`,
			rec.Name, i, itemID,
		); err != nil {
			return fmt.Errorf("saving item %s of %s: %w", itemID, rec.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM character_quests WHERE character_name = ?`, rec.Name); err != nil {
		return fmt.Errorf("clearing quests of %s: %w", rec.Name, err)
	}
	for _, q := range questRows(rec) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO character_quests (character_name, quest_id, status, position) VALUES (?, ?, ?, ?)`,
			rec.Name, q.questID, q.status, q.position,
		); err != nil {
			return fmt.Errorf("saving quest %s of %s: %w", q.questID, rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save of %s: %w", rec.Name, err)
	}

	slog.Debug("character saved", "character", rec.Name, "backend", "sqlite")
	return nil
}

// Load reads a character with its items and quests.
func (r *SQLiteRepository) Load(ctx context.Context, name string) (*model.Character, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	var rec model.CharacterRecord
	var className string
	err := r.db.QueryRowContext(ctx, `
		SELECT name, class, level, health, max_health, strength, magic,
		       experience, gold, equipped_weapon, equipped_armor
		FROM characters WHERE name = ?`, name,
	).Scan(&rec.Name, &className, &rec.Level, &rec.Health, &rec.MaxHealth, &rec.Strength, &rec.Magic,
		&rec.Experience, &rec.Gold, &rec.EquippedWeapon, &rec.EquippedArmor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %s: %w", name, err)
	}

	if rec.Inventory, err = r.loadItems(ctx, name); err != nil {
		return nil, err
	}
	if err := r.loadQuests(ctx, &rec); err != nil {
		return nil, err
	}

	return restoreRow(rec, className)
}

func (r *SQLiteRepository) loadItems(ctx context.Context, name string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id FROM character_items WHERE character_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("querying items of %s: %w", name, err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("scanning item of %s: %w", name, err)
		}
		items = append(items, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items of %s: %w", name, err)
	}
	return items, nil
}

func (r *SQLiteRepository) loadQuests(ctx context.Context, rec *model.CharacterRecord) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT quest_id, status FROM character_quests WHERE character_name = ? ORDER BY position`, rec.Name)
	if err != nil {
		return fmt.Errorf("querying quests of %s: %w", rec.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var questID, status string
		if err := rows.Scan(&questID, &status); err != nil {
			return fmt.Errorf("scanning quest of %s: %w", rec.Name, err)
		}
		addQuest(rec, questID, status)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating quests of %s: %w", rec.Name, err)
	}
	return nil
}

// List returns all character names, sorted.
func (r *SQLiteRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM characters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning character name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a character; items and quests cascade.
func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting character %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting character %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
	}
	slog.Info("character deleted", "character", name, "backend", "sqlite")
	return nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
