package db

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Migrate applies migrations and optional seed files found in the repository.
// It creates a `schema_migrations` table to track applied migrations and applies
// any SQL files in `db/migrations/` that have not yet been recorded. The seed
// file provides default job postings and is applied only when the jobs table
// is still empty, so admin-managed data is never overwritten.
func Migrate(ctx context.Context, d *DB, migrationFS embed.FS, seedFS embed.FS) error {
	// ensure migrations table exists
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	// embedded migrations are provided under "migrations/..." in the top-level db package
	migDir := "migrations"

	entries, err := fs.ReadDir(migrationFS, migDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	// collect .sql files and sort
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), ".sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		// use filename (without extension) as migration version key
		version := strings.TrimSuffix(fname, path.Ext(fname))

		// check if already applied
		var count int
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version)
		if row == nil {
			return fmt.Errorf("migration check query returned nil row for %s", version)
		}
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration applied count: %w", err)
		}
		if count > 0 {
			// already applied
			continue
		}

		// read and execute migration from embedded FS (use posix path.Join)
		p := path.Join(migDir, fname)
		b, err := fs.ReadFile(migrationFS, p)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		if _, err := d.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec migration %s: %w", fname, err)
		}

		// record migration
		if _, err := d.Exec(ctx, `INSERT INTO schema_migrations (version, applied) VALUES (?, strftime('%s','now'))`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", fname, err)
		}
	}

	return seedJobs(ctx, d, seedFS)
}

type seedJob struct {
	Title        string   `json:"title"`
	Country      string   `json:"country"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Duration     string   `json:"duration"`
	PostedDays   int64    `json:"posted_days_ago"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Salary       string   `json:"salary"`
}

func seedJobs(ctx context.Context, d *DB, seedFS embed.FS) error {
	b, err := fs.ReadFile(seedFS, path.Join("seed", "jobs.json"))
	if err != nil {
		// missing seed file is fine, nothing to apply
		return nil
	}

	var count int64
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`).Scan(&count); err != nil {
		return fmt.Errorf("count jobs for seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	var seeds []seedJob
	if err := json.Unmarshal(b, &seeds); err != nil {
		return fmt.Errorf("parse seed jobs: %w", err)
	}

	for _, s := range seeds {
		reqs, err := json.Marshal(s.Requirements)
		if err != nil {
			return fmt.Errorf("marshal seed requirements: %w", err)
		}
		posted := fmt.Sprintf("(strftime('%%s','now') - %d) * 1000", s.PostedDays*24*3600)
		q := `INSERT INTO jobs (title, country, location, type, duration, posted, description, requirements, salary) VALUES (?, ?, ?, ?, ?, ` + posted + `, ?, ?, ?)`
		if _, err := d.Exec(ctx, q, s.Title, s.Country, s.Location, s.Type, s.Duration, s.Description, string(reqs), s.Salary); err != nil {
			return fmt.Errorf("seed job %q: %w", s.Title, err)
		}
	}

	return nil
}
