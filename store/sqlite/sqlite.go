/*
Package sqlite provides the SQLite-backed holiday store.

PURPOSE:
  Persists the operator-maintained holiday table that feeds the generic
  country resolver. The CSV file remains the stateless alternative; this
  store exists so holidays can be managed over the API and survive
  restarts. Scheduling state itself is never persisted - every run is
  recomputed from scratch.

KEY TABLE:
  holidays: (id, country, date, name). Country "_GLOBAL" applies to every
  profile. Unique on (country, date, name) so re-posting is idempotent.

WAL MODE:
  Opened with WAL for better concurrency: multiple readers don't block,
  single writer at a time.

USAGE:
  store, err := sqlite.New("./data/holidays.db")   // ":memory:" for tests
  if err != nil { ... }
  defer store.Close()

  byCountry, err := store.HolidayDates(ctx)
  resolver := country.NewTableResolver(country.WithHolidays(byCountry))
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/cycle-engine/schedule"
)

// Holiday is one stored holiday record.
type Holiday struct {
	ID      string
	Country string
	Date    schedule.Date
	Name    string
}

// Store implements holiday persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		country TEXT NOT NULL,
		date TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_country_date
		ON holidays(country, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(country, date, name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveHoliday inserts a holiday, doing nothing on conflict so that
// re-posting the same (country, date, name) is idempotent.
func (s *Store) SaveHoliday(ctx context.Context, h Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, country, date, name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(country, date, name) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.Country,
		h.Date.String(),
		h.Name,
		time.Now().Format(time.RFC3339),
	)
	return err
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// ListHolidays returns all stored holidays ordered by country and date.
func (s *Store) ListHolidays(ctx context.Context) ([]Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, country, date, name FROM holidays ORDER BY country, date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holiday
	for rows.Next() {
		var h Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &h.Country, &dateStr, &h.Name); err != nil {
			return nil, err
		}
		d, err := schedule.ParseDate(dateStr)
		if err != nil {
			continue
		}
		h.Date = d
		out = append(out, h)
	}
	return out, rows.Err()
}

// HolidayDates exports the table as country -> dates, the shape the
// country resolver consumes.
func (s *Store) HolidayDates(ctx context.Context) (map[string][]schedule.Date, error) {
	holidays, err := s.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]schedule.Date)
	for _, h := range holidays {
		out[h.Country] = append(out[h.Country], h.Date)
	}
	return out, nil
}
