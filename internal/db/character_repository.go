package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/questchronicles/internal/model"
)

// PostgresRepository управляет персонажами в PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wraps an existing pool. Migrations must already be applied.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// OpenPostgres runs migrations, connects and pings the database.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	if err := RunMigrations(ctx, dsn); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

// Save upserts the character and replaces its items and quests in one transaction.
func (r *PostgresRepository) Save(ctx context.Context, c *model.Character) error {
	if err := checkName(c.Name()); err != nil {
		return err
	}
	rec := c.Record()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO characters (name, class, level, health, max_health, strength, magic,
		                        experience, gold, equipped_weapon, equipped_armor, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (name) DO UPDATE SET
			class = EXCLUDED.class,
			level = EXCLUDED.level,
			health = EXCLUDED.health,
			max_health = EXCLUDED.max_health,
			strength = EXCLUDED.strength,
			magic = EXCLUDED.magic,
			experience = EXCLUDED.experience,
			gold = EXCLUDED.gold,
			equipped_weapon = EXCLUDED.equipped_weapon,
			equipped_armor = EXCLUDED.equipped_armor,
			updated_at = now()`,
		rec.Name, rec.Class.String(), rec.Level, rec.Health, rec.MaxHealth, rec.Strength, rec.Magic,
		rec.Experience, rec.Gold, rec.EquippedWeapon, rec.EquippedArmor,
	)
	if err != nil {
		return fmt.Errorf("upserting character %s: %w", rec.Name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM character_items WHERE character_name = $1`, rec.Name); err != nil {
		return fmt.Errorf("clearing items of %s: %w", rec.Name, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM character_quests WHERE character_name = $1`, rec.Name); err != nil {
		return fmt.Errorf("clearing quests of %s: %w", rec.Name, err)
	}

	// Batch INSERT для предметов и квестов.
	batch := &pgx.Batch{}
	for i, itemID := range rec.Inventory {
		batch.Queue(`INSERT INTO character_items (character_name, position, item_id) VALUES ($1, $2, $3)`,
			rec.Name, i, itemID)
	}
	for _, q := range questRows(rec) {
		batch.Queue(`INSERT INTO character_quests (character_name, quest_id, status, position) VALUES ($1, $2, $3, $4)`,
			rec.Name, q.questID, q.status, q.position)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("saving items and quests of %s: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save of %s: %w", rec.Name, err)
	}

	slog.Debug("character saved", "character", rec.Name, "backend", "postgres")
	return nil
}

// Load reads a character with its items and quests.
func (r *PostgresRepository) Load(ctx context.Context, name string) (*model.Character, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	var rec model.CharacterRecord
	var className string
	err := r.pool.QueryRow(ctx, `
		SELECT name, class, level, health, max_health, strength, magic,
		       experience, gold, equipped_weapon, equipped_armor
		FROM characters WHERE name = $1`, name,
	).Scan(&rec.Name, &className, &rec.Level, &rec.Health, &rec.MaxHealth, &rec.Strength, &rec.Magic,
		&rec.Experience, &rec.Gold, &rec.EquippedWeapon, &rec.EquippedArmor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %s: %w", name, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT item_id FROM character_items WHERE character_name = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("querying items of %s: %w", name, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning items of %s: %w", name, err)
	}
	if len(items) > 0 {
		rec.Inventory = items
	}

	rows, err = r.pool.Query(ctx,
		`SELECT quest_id, status FROM character_quests WHERE character_name = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("querying quests of %s: %w", name, err)
	}
	var questID, status string
	_, err = pgx.ForEachRow(rows, []any{&questID, &status}, func() error {
		addQuest(&rec, questID, status)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning quests of %s: %w", name, err)
	}

	return restoreRow(rec, className)
}

// List returns all character names, sorted.
func (r *PostgresRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM characters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning character names: %w", err)
	}
	return names, nil
}

// Delete removes a character; items and quests cascade.
func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM characters WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting character %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
	}
	slog.Info("character deleted", "character", name, "backend", "postgres")
	return nil
}

// Close closes the connection pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
