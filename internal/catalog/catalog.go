// Package catalog combines the penguin and memory repositories into the
// operations behind the public pages and the admin screens.
//
// Every successful mutation asks the frontend to revalidate the pages that show
// the changed records. A failed revalidation is logged and does not fail the
// mutation, since the data is already committed.
package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/revalidate"
)

// Service combines the penguin and memory repositories and refreshes cached pages after writes.
type Service struct {
	penguins    penguin.Repository
	memories    memory.Repository
	revalidator revalidate.Revalidator
	logger      zerolog.Logger
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock used for ages and the on-this-day lookup.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service. A nil revalidator disables page refreshes.
func NewService(
	penguins penguin.Repository,
	memories memory.Repository,
	revalidator revalidate.Revalidator,
	logger zerolog.Logger,
	opts ...Option,
) *Service {
	if revalidator == nil {
		revalidator = revalidate.Nop{}
	}
	s := &Service{
		penguins:    penguins,
		memories:    memories,
		revalidator: revalidator,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) revalidate(ctx context.Context, paths ...string) {
	if err := s.revalidator.Revalidate(ctx, paths...); err != nil {
		s.logger.Warn().Err(err).Strs("paths", paths).Msg("failed to revalidate pages")
	}
}
