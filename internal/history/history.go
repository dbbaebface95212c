// Package history records completed analysis runs in a local SQLite
// database so past results can be listed and aggregated.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
	path string
}

// DefaultDBPath returns ~/.selfdeploy/history.db, creating the directory if needed.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	dir := filepath.Join(home, ".selfdeploy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying *sql.DB for advanced queries.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS analysis_runs (
    id          TEXT PRIMARY KEY,
    repository  TEXT NOT NULL,
    platform    TEXT NOT NULL,
    language    TEXT NOT NULL,
    confidence  REAL NOT NULL,
    frameworks  TEXT,
    file_count  INTEGER NOT NULL DEFAULT 0,
    method      TEXT NOT NULL DEFAULT 'clone',
    output_dir  TEXT,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_runs_repository ON analysis_runs(repository, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_language ON analysis_runs(language);
`

// Migrate applies the database schema.
func (d *DB) Migrate() error {
	var count int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = 1").Scan(&count)
	if err == nil && count > 0 {
		return nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaV1); err != nil {
		return fmt.Errorf("apply schema v1: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// Reset drops all tables and re-applies the schema.
func (d *DB) Reset() error {
	tables := []string{"analysis_runs", "schema_version"}
	for _, t := range tables {
		if _, err := d.conn.Exec("DROP TABLE IF EXISTS " + t); err != nil {
			return fmt.Errorf("drop table %s: %w", t, err)
		}
	}
	return d.Migrate()
}

// Run represents a row in the analysis_runs table.
type Run struct {
	ID         string
	Repository string
	Platform   string
	Language   string
	Confidence float64
	Frameworks []string
	FileCount  int
	Method     string
	OutputDir  string
	Duration   time.Duration
	CreatedAt  string
}

// Record inserts a completed analysis run and returns its generated id.
func (d *DB) Record(r Run) (string, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := d.conn.Exec(
		`INSERT INTO analysis_runs (id, repository, platform, language, confidence, frameworks, file_count, method, output_dir, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Repository, r.Platform, r.Language, r.Confidence,
		strings.Join(r.Frameworks, ","), r.FileCount, r.Method, r.OutputDir,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("record analysis run: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. Pass limit <= 0 for all.
func (d *DB) List(limit int) ([]Run, error) {
	q := `SELECT id, repository, platform, language, confidence, frameworks, file_count, method, output_dir, duration_ms, created_at
	      FROM analysis_runs ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := d.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListByRepository returns runs for a single repository, newest first.
func (d *DB) ListByRepository(repo string) ([]Run, error) {
	rows, err := d.conn.Query(
		`SELECT id, repository, platform, language, confidence, frameworks, file_count, method, output_dir, duration_ms, created_at
		 FROM analysis_runs WHERE repository = ? ORDER BY created_at DESC, id DESC`,
		repo,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs for %s: %w", repo, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	var frameworks sql.NullString
	var outputDir sql.NullString
	var durationMs int64
	if err := rows.Scan(&r.ID, &r.Repository, &r.Platform, &r.Language, &r.Confidence,
		&frameworks, &r.FileCount, &r.Method, &outputDir, &durationMs, &r.CreatedAt); err != nil {
		return Run{}, fmt.Errorf("scan analysis run: %w", err)
	}
	if frameworks.Valid && frameworks.String != "" {
		r.Frameworks = strings.Split(frameworks.String, ",")
	}
	if outputDir.Valid {
		r.OutputDir = outputDir.String
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	return r, nil
}

// LanguageCount pairs a primary language with how many runs detected it.
type LanguageCount struct {
	Language string
	Count    int
}

// Stats aggregates recorded runs.
type Stats struct {
	TotalRuns     int
	UniqueRepos   int
	AvgConfidence float64
	AvgDuration   time.Duration
	Languages     []LanguageCount
}

// Stats computes aggregate statistics over all recorded runs.
func (d *DB) Stats() (*Stats, error) {
	var s Stats
	var avgConf sql.NullFloat64
	var avgDur sql.NullFloat64
	err := d.conn.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT repository), AVG(confidence), AVG(duration_ms) FROM analysis_runs`,
	).Scan(&s.TotalRuns, &s.UniqueRepos, &avgConf, &avgDur)
	if err != nil {
		return nil, fmt.Errorf("aggregate runs: %w", err)
	}
	if avgConf.Valid {
		s.AvgConfidence = avgConf.Float64
	}
	if avgDur.Valid {
		s.AvgDuration = time.Duration(avgDur.Float64) * time.Millisecond
	}

	rows, err := d.conn.Query(
		`SELECT language, COUNT(*) AS n FROM analysis_runs GROUP BY language ORDER BY n DESC, language ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("count languages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lc LanguageCount
		if err := rows.Scan(&lc.Language, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan language count: %w", err)
		}
		s.Languages = append(s.Languages, lc)
	}
	return &s, rows.Err()
}
