package database

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/penguins/internal/config"
	"github.com/at-ishikawa/penguins/schemas"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY
)`

// Migration is one embedded schema file.
type Migration struct {
	Version string
	SQL     string
}

// Migrations lists the embedded migrations for driver in the order they apply.
func Migrations(driver string) ([]Migration, error) {
	switch driver {
	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	files, err := fs.Glob(schemas.Migrations, path.Join("migrations", driver, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("fs.Glob() > %w", err)
	}
	sort.Strings(files)

	migrations := make([]Migration, 0, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(schemas.Migrations, file)
		if err != nil {
			return nil, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(path.Base(file), ".sql"),
			SQL:     string(content),
		})
	}
	return migrations, nil
}

// Migrate applies every embedded migration that schema_migrations does not list yet
// and returns the versions it applied.
func Migrate(ctx context.Context, db *sqlx.DB, driver string) ([]string, error) {
	migrations, err := Migrations(driver)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("db.ExecContext(schema_migrations) > %w", err)
	}
	var done []string
	if err := db.SelectContext(ctx, &done, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	var versions []string
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return fmt.Errorf("tx.ExecContext(%s) > %w", m.Version, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), m.Version); err != nil {
				return fmt.Errorf("tx.ExecContext(schema_migrations) > %w", err)
			}
			return nil
		})
		if err != nil {
			return versions, err
		}
		versions = append(versions, m.Version)
	}
	return versions, nil
}
