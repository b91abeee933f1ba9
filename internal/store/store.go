// Package store holds the shared persistence handle used by the penguin and memory
// repositories: a bounded connection pool, the SQL dialect of the engine behind it,
// column codecs and error classification.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store is an explicitly constructed handle over a connection pool.
// It is safe for concurrent use; Close drains the pool.
type Store struct {
	db             *sqlx.DB
	dialect        Dialect
	acquireTimeout time.Duration
	now            func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithAcquireTimeout bounds how long an operation waits for a free pooled connection.
// Zero waits until the caller's context is done.
func WithAcquireTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.acquireTimeout = d
	}
}

// WithClock overrides the clock used for store-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithDialect overrides the dialect detected from the driver name.
func WithDialect(d Dialect) Option {
	return func(s *Store) {
		s.dialect = d
	}
}

// New wraps db. The dialect is derived from db.DriverName() unless WithDialect is given.
func New(db *sqlx.DB, opts ...Option) (*Store, error) {
	s := &Store{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dialect.Name == "" {
		dialect, err := DialectFor(db.DriverName())
		if err != nil {
			return nil, err
		}
		s.dialect = dialect
	}
	return s, nil
}

// Dialect returns the SQL dialect of the underlying engine.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Now returns the current time as stored: UTC, truncated to microseconds.
func (s *Store) Now() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Rebind converts '?' placeholders to the engine's bind style.
func (s *Store) Rebind(query string) string {
	return s.db.Rebind(query)
}

// Conn acquires a pooled connection, waiting at most the acquire timeout.
// The caller must Close the returned connection to give it back to the pool.
func (s *Store) Conn(ctx context.Context) (*sqlx.Conn, error) {
	acquireCtx := ctx
	if s.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, s.acquireTimeout)
		defer cancel()
	}

	conn, err := s.db.Connx(acquireCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(acquireCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("db.Connx() > %w after %s", ErrPoolTimeout, s.acquireTimeout)
		}
		return nil, Classify(fmt.Errorf("db.Connx() > %w", err))
	}
	return conn, nil
}

// WithConn runs fn on a pooled connection and releases it on every exit path.
func (s *Store) WithConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := s.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

// Stats reports pool statistics.
func (s *Store) Stats() sql.DBStats {
	return s.db.Stats()
}

// Ping verifies the engine is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.WithConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.PingContext(ctx); err != nil {
			return Classify(fmt.Errorf("conn.PingContext() > %w", err))
		}
		return nil
	})
}

// DB exposes the pool for migrations and tests.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the pool. Operations in flight finish first.
func (s *Store) Close() error {
	return s.db.Close()
}
