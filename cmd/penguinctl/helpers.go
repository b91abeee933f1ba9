package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/at-ishikawa/penguins/internal/catalog"
	"github.com/at-ishikawa/penguins/internal/config"
	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/revalidate"
	"github.com/at-ishikawa/penguins/internal/store"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// catalogDeps holds what a command needs to work on the catalog.
type catalogDeps struct {
	penguins penguin.Repository
	memories memory.Repository
	catalog  *catalog.Service
	closers  []func() error
}

func openCatalog(ctx context.Context) (*catalogDeps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("store.Open() > %w", err)
	}
	deps := &catalogDeps{
		penguins: penguin.NewDBRepository(s),
		memories: memory.NewDBRepository(s),
		closers:  []func() error{s.Close},
	}

	revalidator := revalidate.New(cfg.Revalidate)
	if client, ok := revalidator.(*revalidate.Client); ok {
		deps.closers = append(deps.closers, client.Close)
	}
	deps.catalog = catalog.NewService(deps.penguins, deps.memories, revalidator, log.Logger)
	return deps, nil
}

func (d *catalogDeps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Warn().Err(err).Msg("failed to close")
		}
	}
}
