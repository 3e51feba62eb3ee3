package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"SlideInk/internal/ink"
)

const penKey = "pen"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Store keeps presenter preferences in SQLite.
type Store struct {
	db *sql.DB
}

// penRecord is the stored form of a pen.
type penRecord struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Open opens (creating if needed) the settings database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadPen returns the saved pen. Missing or unreadable settings yield
// fallback without an error; only database failures are reported.
func (s *Store) LoadPen(ctx context.Context, fallback ink.Pen) (ink.Pen, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, penKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("load pen: %w", err)
	}

	var rec penRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		log.Printf("[SETTINGS] Ignoring corrupted pen settings: %v", err)
		return fallback, nil
	}
	pen := fallback
	if c, err := ParseColor(rec.Color); err == nil {
		pen.Color = c
	}
	if rec.Width > 0 {
		pen.Width = rec.Width
	}
	return pen, nil
}

// SavePen stores p, replacing any earlier value.
func (s *Store) SavePen(ctx context.Context, p ink.Pen) error {
	raw, err := json.Marshal(penRecord{Color: FormatColor(p.Color), Width: p.Width})
	if err != nil {
		return fmt.Errorf("encode pen: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
    `, penKey, string(raw))
	if err != nil {
		return fmt.Errorf("save pen: %w", err)
	}
	return nil
}
