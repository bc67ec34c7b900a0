// Package store provides a SQLite-backed history of generated reports.
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

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned by Get when no entry has the id.
var ErrNotFound = errors.New("store: entry not found")

// Entry is one recorded operation output.
type Entry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Persona   string          `json:"persona,omitempty"`
	Input     json.RawMessage `json:"input"`
	Output    string          `json:"output"`
	CreatedAt time.Time       `json:"created_at"`
}

// History provides SQLite-backed report history.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db, now: time.Now}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Save stores e, assigning an id and timestamp when they are unset, and
// returns the stored entry.
func (h *History) Save(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = h.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()
	if len(e.Input) == 0 {
		e.Input = json.RawMessage("{}")
	}

	_, err := h.db.ExecContext(ctx, `INSERT INTO reports
		(id, kind, persona, input, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Persona, string(e.Input), e.Output, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("saving %s entry: %w", e.Kind, err)
	}
	return e, nil
}

// Record encodes input as JSON and saves an entry for one operation.
func (h *History) Record(ctx context.Context, op, persona string, input any, output string) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("encoding %s input: %w", op, err)
	}
	_, err = h.Save(ctx, Entry{Kind: op, Persona: persona, Input: raw, Output: output})
	return err
}

// Recent returns up to limit entries, newest first. A non-empty kind
// filters by operation. limit <= 0 returns everything.
func (h *History) Recent(ctx context.Context, limit int, kind string) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.QueryContext(ctx, `SELECT id, kind, persona, input, output, created_at
		FROM reports
		WHERE ? = '' OR kind = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, kind, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns the entry with id, or ErrNotFound.
func (h *History) Get(ctx context.Context, id string) (Entry, error) {
	row := h.db.QueryRowContext(ctx, `SELECT id, kind, persona, input, output, created_at
		FROM reports WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// Count returns the number of entries, optionally filtered by kind.
func (h *History) Count(ctx context.Context, kind string) (int, error) {
	var n int
	err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports WHERE ? = '' OR kind = ?", kind, kind).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var input string
	var created int64
	if err := s.Scan(&e.ID, &e.Kind, &e.Persona, &input, &e.Output, &created); err != nil {
		return Entry{}, err
	}
	e.Input = json.RawMessage(input)
	e.CreatedAt = time.Unix(0, created).UTC()
	return e, nil
}
