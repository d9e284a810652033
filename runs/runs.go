// Package runs persists export-run history using SQLite, so callers can
// surface "last export" status and re-render past reports.
package runs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned when a run id does not exist in the store.
var ErrRunNotFound = errors.New("export run not found")

// Run records one completed export.
type Run struct {
	RunID      uuid.UUID `json:"run_id"`
	SourceURL  string    `json:"source_url"`
	PostsFound int       `json:"posts_found"`
	OutputFile string    `json:"output_file"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store manages export-run history.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the run store at the given database path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS export_runs (
		run_id TEXT PRIMARY KEY,
		source_url TEXT NOT NULL,
		posts_found INTEGER NOT NULL,
		output_file TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a completed export run.
func (s *Store) Add(run Run) error {
	query := `INSERT INTO export_runs
		(run_id, source_url, posts_found, output_file, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		run.RunID.String(),
		run.SourceURL,
		run.PostsFound,
		run.OutputFile,
		run.DurationMs,
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert export run: %w", err)
	}
	return nil
}

// List returns all export runs, newest first.
func (s *Store) List() ([]Run, error) {
	query := `SELECT run_id, source_url, posts_found, output_file, duration_ms, created_at
		FROM export_runs ORDER BY created_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query export runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}

// Get returns a single run by id, or ErrRunNotFound.
func (s *Store) Get(id uuid.UUID) (*Run, error) {
	query := `SELECT run_id, source_url, posts_found, output_file, duration_ms, created_at
		FROM export_runs WHERE run_id = ?`

	row := s.db.QueryRow(query, id.String())
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Delete removes a run by id. Deleting a missing run returns
// ErrRunNotFound.
func (s *Store) Delete(id uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM export_runs WHERE run_id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete export run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrRunNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		idText    string
		createdAt string
	)

	if err := row.Scan(&idText, &run.SourceURL, &run.PostsFound,
		&run.OutputFile, &run.DurationMs, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("failed to scan export run: %w", err)
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return Run{}, fmt.Errorf("failed to parse run id %q: %w", idText, err)
	}
	run.RunID = id

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts

	return run, nil
}
