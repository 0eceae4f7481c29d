// Package migrations applies the embedded SQL schema at startup.
//
// Files follow the NNN_description.sql convention and run in lexicographic
// order. Applied versions are recorded in schema_migrations, so Run is
// idempotent across restarts.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/auhide/trips-website/internal/db"
)

//go:embed *.sql
var sqlFiles embed.FS

// Pool is the subset of pgxpool.Pool the runner needs. pgxmock satisfies it
// as well, which keeps the runner testable without a live database.
type Pool interface {
	db.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type migration struct {
	version string
	sql     string
}

// Run applies every pending migration in its own transaction.
func Run(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("migrations: ensure tracking table: %w", err)
	}

	pending, err := load()
	if err != nil {
		return fmt.Errorf("migrations: load files: %w", err)
	}

	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return fmt.Errorf("migrations: read applied versions: %w", err)
	}

	ran := 0
	for _, m := range pending {
		if applied[m.version] {
			continue
		}
		if err := apply(ctx, pool, m); err != nil {
			return fmt.Errorf("migrations: apply %q: %w", m.version, err)
		}
		log.Printf("migrations: applied %q", m.version)
		ran++
	}

	if ran == 0 {
		log.Println("migrations: schema is up to date")
	}
	return nil
}

func appliedVersions(ctx context.Context, pool Pool) (map[string]bool, error) {
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		seen[v] = true
	}
	return seen, rows.Err()
}

// load returns the embedded files in lexicographic order, which ReadDir
// already guarantees.
func load() ([]migration, error) {
	entries, err := sqlFiles.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var out []migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		content, err := sqlFiles.ReadFile(e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", e.Name(), err)
		}
		out = append(out, migration{version: e.Name(), sql: string(content)})
	}
	return out, nil
}

// apply runs the migration and records its version in one transaction.
func apply(ctx context.Context, pool Pool, m migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, m.sql); err != nil {
		return fmt.Errorf("exec sql: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.version); err != nil {
		return fmt.Errorf("record version: %w", err)
	}
	return tx.Commit(ctx)
}
