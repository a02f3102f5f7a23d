package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"remindbot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Get returns the blob stored under key, or ok=false when the key is absent.
func (r *SQLiteRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores the blob under key, replacing any previous value.
func (r *SQLiteRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// PutTrigger upserts a trigger registration. Re-registering an id replaces
// its fire spec and next fire time, which makes repeated reschedule passes
// idempotent.
func (r *SQLiteRepo) PutTrigger(ctx context.Context, t domain.Trigger, nextFireAt time.Time) error {
	spec, err := json.Marshal(t.Spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO triggers (id, title, body, spec, next_fire_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title        = excluded.title,
			body         = excluded.body,
			spec         = excluded.spec,
			next_fire_at = excluded.next_fire_at`,
		t.ID, t.Title, t.Body, string(spec), nextFireAt.UTC().Unix(),
	)
	return err
}

// DeleteTrigger removes a trigger registration. Deleting an unknown id is
// not an error.
func (r *SQLiteRepo) DeleteTrigger(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM triggers WHERE id = ?`, id)
	return err
}

// ListTriggerIDs returns the ids of all registered triggers.
func (r *SQLiteRepo) ListTriggerIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM triggers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListDueTriggers returns up to `limit` triggers whose next_fire_at is <= now,
// ordered by next_fire_at ascending.
func (r *SQLiteRepo) ListDueTriggers(ctx context.Context, now time.Time, limit int) ([]ScheduledTrigger, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, body, spec, next_fire_at
		FROM triggers
		WHERE next_fire_at <= ?
		ORDER BY next_fire_at ASC
		LIMIT ?`,
		now.UTC().Unix(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ScheduledTrigger
	for rows.Next() {
		var (
			t        domain.Trigger
			specJSON string
			nextUnix int64
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Body, &specJSON, &nextUnix); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(specJSON), &t.Spec); err != nil {
			return nil, fmt.Errorf("trigger %s: unmarshal spec: %w", t.ID, err)
		}
		res = append(res, ScheduledTrigger{
			Trigger:    t,
			NextFireAt: time.Unix(nextUnix, 0).UTC(),
		})
	}
	return res, rows.Err()
}

// SetTriggerNextFire updates next_fire_at for a trigger.
func (r *SQLiteRepo) SetTriggerNextFire(ctx context.Context, id string, next time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE triggers SET next_fire_at = ? WHERE id = ?`,
		next.UTC().Unix(), id,
	)
	return err
}
