// Package registry keeps a local record of submitted sweeps so status runs
// do not need the job id, config path, and log dir re-typed every time.
package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// ErrEmpty is returned when the registry has no sweeps yet.
var ErrEmpty = errors.New("no sweeps registered")

// Sweep is one registered submission.
type Sweep struct {
	ID          int64
	JobID       string
	Label       string
	ConfigPath  string
	LogDir      string
	SubmittedAt time.Time
	LastSummary string
}

// Registry wraps the SQLite store.
type Registry struct {
	db *sql.DB
}

// DefaultPath returns ~/.nwbsweep/sweeps.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nwbsweep", "sweeps.db"), nil
}

// Open opens (creating if needed) the registry at path.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Registry{db: db}, nil
}

func initSchema(db *sql.DB) error {
	const createSweeps = `
CREATE TABLE IF NOT EXISTS sweeps (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  job_id       TEXT NOT NULL,
  label        TEXT NOT NULL,
  config_path  TEXT NOT NULL,
  log_dir      TEXT NOT NULL,
  submitted_at TEXT NOT NULL,
  last_summary TEXT NOT NULL DEFAULT ''
);`
	_, err := db.Exec(createSweeps)
	return err
}

// Close releases the underlying database handle.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Add records a sweep and fills in its assigned ID.
func (r *Registry) Add(s *Sweep) error {
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	res, err := r.db.Exec(
		`INSERT INTO sweeps (job_id, label, config_path, log_dir, submitted_at, last_summary)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.JobID, s.Label, s.ConfigPath, s.LogDir,
		s.SubmittedAt.Format(time.RFC3339), s.LastSummary,
	)
	if err != nil {
		return fmt.Errorf("registering sweep %s: %w", s.JobID, err)
	}
	s.ID, err = res.LastInsertId()
	return err
}

// List returns all sweeps, most recently registered first.
func (r *Registry) List() ([]Sweep, error) {
	rows, err := r.db.Query(
		`SELECT id, job_id, label, config_path, log_dir, submitted_at, last_summary
		 FROM sweeps ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sweeps []Sweep
	for rows.Next() {
		s, err := scanSweep(rows)
		if err != nil {
			return nil, err
		}
		sweeps = append(sweeps, s)
	}
	return sweeps, rows.Err()
}

// Latest returns the most recently registered sweep, or ErrEmpty.
func (r *Registry) Latest() (*Sweep, error) {
	row := r.db.QueryRow(
		`SELECT id, job_id, label, config_path, log_dir, submitted_at, last_summary
		 FROM sweeps ORDER BY id DESC LIMIT 1`)
	s, err := scanSweep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Lookup finds a sweep by job id, preferring the newest registration.
func (r *Registry) Lookup(jobID string) (*Sweep, error) {
	row := r.db.QueryRow(
		`SELECT id, job_id, label, config_path, log_dir, submitted_at, last_summary
		 FROM sweeps WHERE job_id = ? ORDER BY id DESC LIMIT 1`, jobID)
	s, err := scanSweep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %s not registered", jobID)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSummary stores the latest one-line summary for a sweep.
func (r *Registry) UpdateSummary(id int64, summary string) error {
	_, err := r.db.Exec(`UPDATE sweeps SET last_summary = ? WHERE id = ?`, summary, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSweep(row rowScanner) (Sweep, error) {
	var s Sweep
	var submitted string
	if err := row.Scan(&s.ID, &s.JobID, &s.Label, &s.ConfigPath, &s.LogDir, &submitted, &s.LastSummary); err != nil {
		return Sweep{}, err
	}
	t, err := time.Parse(time.RFC3339, submitted)
	if err != nil {
		return Sweep{}, fmt.Errorf("sweep %d: bad submitted_at %q: %w", s.ID, submitted, err)
	}
	s.SubmittedAt = t
	return s, nil
}
