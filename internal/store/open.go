package store

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/penguins/internal/config"
	"github.com/at-ishikawa/penguins/internal/database"
)

// Open connects to the configured database, verifies it is reachable and,
// when cfg.AutoMigrate is set, applies pending migrations.
func Open(ctx context.Context, cfg config.DatabaseConfig, opts ...Option) (*Store, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}

	s, err := New(db, append([]Option{WithAcquireTimeout(cfg.AcquireTimeout)}, opts...)...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s > %w", cfg.Driver, err)
	}

	if cfg.AutoMigrate {
		if _, err := database.Migrate(ctx, db, cfg.Driver); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
	}
	return s, nil
}
