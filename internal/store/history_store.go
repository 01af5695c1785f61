package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"searchbyimage/internal/domain"
)

// HistorySQLStore persists searches in SQLite.
type HistorySQLStore struct {
	db *sqlx.DB
}

// OpenHistory opens (creating if needed) the database at path and migrates it.
func OpenHistory(path string) (*HistorySQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return &HistorySQLStore{db: db}, nil
}

// Close closes the database.
func (s *HistorySQLStore) Close() error { return s.db.Close() }

// Record inserts rec, assigning an id and timestamp when unset.
func (s *HistorySQLStore) Record(ctx context.Context, rec domain.SearchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO searches (id, group_id, sender_id, image_url, threshold, hit_count,
			top_similarity, cached, origin, created_at)
		VALUES (:id, :group_id, :sender_id, :image_url, :threshold, :hit_count,
			:top_similarity, :cached, :origin, :created_at)`, rec)
	return err
}

// Recent returns up to limit records, newest first.
func (s *HistorySQLStore) Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.SearchRecord
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, group_id, sender_id, image_url, threshold, hit_count,
			top_similarity, cached, origin, created_at
		FROM searches
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	return out, err
}

// Prune deletes records created before the cutoff and reports how many went.
func (s *HistorySQLStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM searches WHERE created_at < ?", before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats counts all and cache-served searches.
func (s *HistorySQLStore) Stats(ctx context.Context) (domain.HistoryStats, error) {
	var st domain.HistoryStats
	err := s.db.GetContext(ctx, &st,
		"SELECT COUNT(*) AS total, COALESCE(SUM(cached), 0) AS cached FROM searches")
	return st, err
}

var _ domain.HistoryStore = (*HistorySQLStore)(nil)
