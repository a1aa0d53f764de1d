// Package history records section edit requests. Only the request is
// kept (which section, which file, from where); the edited content never
// passes through shellmarks.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shellmarks/catalog/internal/db"
)

// Source identifies the surface an edit request came from.
type Source string

const (
	SourceWeb Source = "web"
	SourceCLI Source = "cli"
	SourceMCP Source = "mcp"
)

// timeLayout is fixed-width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one edit request.
type Entry struct {
	ID          string    `json:"id"`
	RequestedAt time.Time `json:"requested_at"`
	Section     string    `json:"section"`
	Path        string    `json:"path"`
	Created     bool      `json:"created"`
	Source      Source    `json:"source"`
}

// Store provides access to edit request entries.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Log inserts an entry. Empty ID and zero RequestedAt are filled in.
func (s *Store) Log(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.RequestedAt.IsZero() {
		e.RequestedAt = s.now()
	}
	e.RequestedAt = e.RequestedAt.UTC()

	created := 0
	if e.Created {
		created = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO edit_requests (id, requested_at, section, path, created, source)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.RequestedAt.Format(timeLayout), e.Section, e.Path, created, string(e.Source),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting edit request: %w", err)
	}
	return e, nil
}

// Recent returns the newest entries first. limit <= 0 means 50.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, "", limit)
}

// BySection returns the newest entries for one section first.
func (s *Store) BySection(ctx context.Context, section string, limit int) ([]Entry, error) {
	return s.query(ctx, section, limit)
}

func (s *Store) query(ctx context.Context, section string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	q := "SELECT id, requested_at, section, path, created, source FROM edit_requests"
	var args []any
	if section != "" {
		q += " WHERE section = ?"
		args = append(args, section)
	}
	q += " ORDER BY requested_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying edit requests: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			ts      string
			created int
			source  string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Section, &e.Path, &created, &source); err != nil {
			return nil, fmt.Errorf("scanning edit request: %w", err)
		}
		t, err := time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing requested_at %q: %w", ts, err)
		}
		e.RequestedAt = t
		e.Created = created != 0
		e.Source = Source(source)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
