// Package database opens connections to the catalog database and applies its schema.
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/penguins/internal/config"
)

// Open opens a connection pool for the configured driver. It does not reach the server.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driverName, dsn, err := DataSourceName(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSQLite && cfg.URL == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(cfg.Path), err)
		}
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

// DataSourceName returns the database/sql driver name and DSN for cfg.
func DataSourceName(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn, err := postgresDSN(cfg)
		return "pgx", dsn, err
	case config.DriverMySQL:
		dsn, err := mysqlDSN(cfg)
		return "mysql", dsn, err
	case config.DriverSQLite:
		return "sqlite", sqliteDSN(cfg), nil
	}
	return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func postgresDSN(cfg config.DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("url.Parse(database.url) > %w", err)
		}
		if _, ok := u.User.Password(); !ok && u.User != nil && cfg.Password != "" {
			u.User = url.UserPassword(u.User.Username(), cfg.Password)
		}
		return u.String(), nil
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	query := url.Values{}
	for k, v := range cfg.Params {
		query.Set(k, v)
	}
	if query.Get("sslmode") == "" {
		if cfg.TLS {
			query.Set("sslmode", "require")
		} else {
			query.Set("sslmode", "disable")
		}
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

func mysqlDSN(cfg config.DatabaseConfig) (string, error) {
	mysqlCfg := mysql.NewConfig()
	if cfg.URL != "" {
		parsed, err := mysql.ParseDSN(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("mysql.ParseDSN(database.url) > %w", err)
		}
		mysqlCfg = parsed
		if mysqlCfg.Passwd == "" {
			mysqlCfg.Passwd = cfg.Password
		}
	} else {
		mysqlCfg.User = cfg.Username
		mysqlCfg.Passwd = cfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mysqlCfg.DBName = cfg.Database
		if cfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(cfg.Params) > 0 {
			mysqlCfg.Params = cfg.Params
		}
	}
	mysqlCfg.ParseTime = true
	mysqlCfg.MultiStatements = true
	mysqlCfg.Loc = time.UTC
	return mysqlCfg.FormatDSN(), nil
}

func sqliteDSN(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path)
}

// RunInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
