// Package storetest provides stores backed by real engines for repository tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/penguins/internal/config"
	"github.com/at-ishikawa/penguins/internal/store"
)

// NewSQLite returns a migrated store over a fresh SQLite file that is removed with t.
func NewSQLite(t testing.TB, opts ...store.Option) *store.Store {
	t.Helper()
	return open(t, config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "penguins.db"),
		MaxOpenConns:   4,
		AcquireTimeout: 5 * time.Second,
		AutoMigrate:    true,
	}, opts...)
}

func open(t testing.TB, cfg config.DatabaseConfig, opts ...store.Option) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
