package store

import (
	"github.com/jmoiron/sqlx"
)

// migration is one versioned schema change.
type migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "create_searches",
		SQL: `
		CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			group_id INTEGER NOT NULL DEFAULT 0,
			sender_id INTEGER NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL,
			threshold REAL NOT NULL,
			hit_count INTEGER NOT NULL DEFAULT 0,
			top_similarity REAL NOT NULL DEFAULT 0,
			cached INTEGER NOT NULL DEFAULT 0,
			origin TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
	},
	{
		Version: 2,
		Name:    "index_searches_created_at",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches (created_at)`,
	},
}

// applyMigrations brings the schema up to date.
func applyMigrations(db *sqlx.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return err
	}

	for _, m := range migrations {
		var count int
		if err := db.Get(&count, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.Version); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sqlx.DB, m migration) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		m.Version, m.Name,
	); err != nil {
		return err
	}
	return tx.Commit()
}
