package catalog

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/penguins/internal/statistics"
)

func (s *Service) Stats(ctx context.Context) (statistics.CollectionStatistics, error) {
	penguins, err := s.penguins.List(ctx)
	if err != nil {
		return statistics.CollectionStatistics{}, fmt.Errorf("penguins.List() > %w", err)
	}
	return statistics.Calculate(penguins, s.now()), nil
}

// DanglingReferences reports the memories that still refer to deleted penguins.
func (s *Service) DanglingReferences(ctx context.Context) ([]statistics.DanglingReference, error) {
	penguins, err := s.penguins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("penguins.List() > %w", err)
	}
	memories, err := s.memories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("memories.List() > %w", err)
	}
	return statistics.DanglingReferences(memories, penguins), nil
}
