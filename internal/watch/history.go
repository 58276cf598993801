package watch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/onewire-tools/owctl/internal/config"
)

// History keeps a local SQLite log of readings so short gaps in the
// remote sinks do not lose data. It doubles as the query backend for
// owwatch's recent-readings lookups.
type History struct {
	db         *sql.DB
	retainDays int
}

// OpenHistory opens (and if needed creates) the reading log. Use
// ":memory:" as the path for an ephemeral store.
func OpenHistory(cfg config.HistoryConfig) (*History, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("history open failed (%s): %w", cfg.Path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		value TEXT NOT NULL,
		read_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_readings_path_time ON readings(path, read_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history schema failed: %w", err)
	}

	return &History{db: db, retainDays: cfg.RetainDays}, nil
}

func (h *History) Name() string { return "history" }

func (h *History) Record(ctx context.Context, r Reading) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO readings (path, value, read_at) VALUES (?, ?, ?)`,
		r.Path, r.Value, r.At.UTC())
	if err != nil {
		return fmt.Errorf("history record %s: %w", r.Path, err)
	}
	return nil
}

// Recent returns the newest readings for a path, newest first.
func (h *History) Recent(ctx context.Context, path string, limit int) ([]Reading, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT path, value, read_at FROM readings
		 WHERE path = ? ORDER BY read_at DESC LIMIT ?`,
		path, limit)
	if err != nil {
		return nil, fmt.Errorf("history query %s: %w", path, err)
	}
	defer rows.Close()

	var out []Reading
	for rows.Next() {
		var r Reading
		if err := rows.Scan(&r.Path, &r.Value, &r.At); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune drops readings older than the retention window. A zero or
// negative retain_days disables pruning.
func (h *History) Prune(ctx context.Context, now time.Time) (int64, error) {
	if h.retainDays <= 0 {
		return 0, nil
	}
	cutoff := now.UTC().AddDate(0, 0, -h.retainDays)
	res, err := h.db.ExecContext(ctx,
		`DELETE FROM readings WHERE read_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history prune: %w", err)
	}
	return res.RowsAffected()
}

func (h *History) Close() error {
	return h.db.Close()
}
