/*
Package sqlite provides a SQLite-backed festival store.

PURPOSE:
  Persists the curated festival catalog that feeds the panchang calendar.
  The panchang views themselves are never persisted - they are derived
  data cached in memory with wall-clock expiry - so the database holds
  inputs only.

KEY TABLE:
  festivals: one row per observance; year NULL means the festival recurs
  on the same civil date every year, a concrete year pins it (lunar
  festivals published per-year).

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/panchang.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - festival/festival.go: domain type and provider interface
  - festival/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/supernova/panchang-engine/festival"
)

// Store implements festival.Provider plus the write-side catalog API
// using SQLite.
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
	CREATE TABLE IF NOT EXISTS festivals (
		id TEXT PRIMARY KEY,
		region TEXT NOT NULL,
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),
		name TEXT NOT NULL,
		year INTEGER,
		created_at TEXT NOT NULL
	);

	-- Hot path: month view assembly filters by region+month.
	CREATE INDEX IF NOT EXISTS idx_festivals_region_month
		ON festivals(region, month);
	CREATE INDEX IF NOT EXISTS idx_festivals_year
		ON festivals(year) WHERE year IS NOT NULL;
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATALOG WRITES
// =============================================================================

// SaveFestival inserts or replaces a festival by ID.
func (s *Store) SaveFestival(ctx context.Context, f festival.Festival) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO festivals (id, region, month, day, name, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			region = excluded.region,
			month = excluded.month,
			day = excluded.day,
			name = excluded.name,
			year = excluded.year
	`

	var year any
	if f.Year != nil {
		year = *f.Year
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		f.ID, f.Region, int(f.Month), f.Day, f.Name, year, now,
	)
	return err
}

// SeedDefaults inserts the built-in festival set, skipping IDs that
// already exist so curated edits survive restarts.
func (s *Store) SeedDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO festivals (id, region, month, day, name, year, created_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?)
		ON CONFLICT(id) DO NOTHING
	`
	now := time.Now().UTC().Format(time.RFC3339)
	for _, f := range festival.Defaults() {
		if _, err := s.db.ExecContext(ctx, query, f.ID, f.Region, int(f.Month), f.Day, f.Name, now); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFestival removes a festival by ID.
func (s *Store) DeleteFestival(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM festivals WHERE id = ?", id)
	return err
}

// Reset clears the catalog. Dev/test only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM festivals")
	return err
}

// =============================================================================
// CATALOG READS
// =============================================================================

// ListFestivals returns the catalog for a region (region-specific plus
// the catch-all), ordered by month then day. Empty region lists all.
func (s *Store) ListFestivals(ctx context.Context, region string) ([]festival.Festival, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, region, month, day, name, year FROM festivals"
	var args []any
	if region != "" {
		query += " WHERE region = ? OR region = ?"
		args = append(args, region, festival.RegionAll)
	}
	query += " ORDER BY month, day, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []festival.Festival
	for rows.Next() {
		f, err := scanFestival(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanFestival(rows *sql.Rows) (festival.Festival, error) {
	var f festival.Festival
	var month int
	var year sql.NullInt64
	if err := rows.Scan(&f.ID, &f.Region, &month, &f.Day, &f.Name, &year); err != nil {
		return festival.Festival{}, err
	}
	f.Month = time.Month(month)
	if year.Valid {
		y := int(year.Int64)
		f.Year = &y
	}
	return f, nil
}

// =============================================================================
// PROVIDER IMPLEMENTATION
// =============================================================================

// FestivalsForMonth implements festival.Provider.
func (s *Store) FestivalsForMonth(ctx context.Context, year int, month time.Month, region string) (map[int][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT day, name FROM festivals
		WHERE month = ?
		  AND (region = ? OR region = ?)
		  AND (year IS NULL OR year = ?)
		ORDER BY day, name
	`, int(month), region, festival.RegionAll, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDay := make(map[int][]string)
	for rows.Next() {
		var day int
		var name string
		if err := rows.Scan(&day, &name); err != nil {
			return nil, err
		}
		byDay[day] = append(byDay[day], name)
	}
	return byDay, rows.Err()
}

// FestivalsForYear implements festival.Provider.
func (s *Store) FestivalsForYear(ctx context.Context, year int, region string) (map[time.Month][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT month, name FROM festivals
		WHERE (region = ? OR region = ?)
		  AND (year IS NULL OR year = ?)
		ORDER BY month, day, name
	`, region, festival.RegionAll, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMonth := make(map[time.Month][]string)
	for rows.Next() {
		var month int
		var name string
		if err := rows.Scan(&month, &name); err != nil {
			return nil, err
		}
		byMonth[time.Month(month)] = append(byMonth[time.Month(month)], name)
	}
	return byMonth, rows.Err()
}
