package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/spacesedan/sentiscope/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS handoff_slots (
	slot       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore keeps the hand-off slots in a local SQLite file.
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	slog.Info("[SQLiteStore] Opened hand-off store", slog.String("path", path))
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, reviews []models.Review, batch models.AnalysisBatch) error {
	reviewsJSON, batchJSON, err := encodeSlots(reviews, batch)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	const upsert = `INSERT INTO handoff_slots (slot, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	for slot, value := range map[string][]byte{SlotReviews: reviewsJSON, SlotAnalysisResults: batchJSON} {
		if _, err := tx.ExecContext(ctx, upsert, slot, string(value), now); err != nil {
			return fmt.Errorf("write %s: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit hand-off: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Handoff, bool, error) {
	reviewsJSON, err := s.slot(ctx, SlotReviews)
	if errors.Is(err, sql.ErrNoRows) {
		return Handoff{}, false, nil
	}
	if err != nil {
		return Handoff{}, false, err
	}

	batchJSON, err := s.slot(ctx, SlotAnalysisResults)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Handoff{}, false, err
	}

	h, err := decodeSlots([]byte(reviewsJSON), []byte(batchJSON))
	if err != nil {
		return Handoff{}, false, err
	}
	return h, len(h.Reviews) > 0, nil
}

func (s *SQLiteStore) slot(ctx context.Context, name string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM handoff_slots WHERE slot = ?`, name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return value, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
