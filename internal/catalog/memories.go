package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/revalidate"
	"github.com/at-ishikawa/penguins/internal/statistics"
)

func (s *Service) ListMemories(ctx context.Context) ([]memory.Memory, error) {
	memories, err := s.memories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("memories.List() > %w", err)
	}
	return memories, nil
}

func (s *Service) ListMemoriesByPenguin(ctx context.Context, penguinID string) ([]memory.Memory, error) {
	memories, err := s.memories.ListByPenguin(ctx, penguinID)
	if err != nil {
		return nil, fmt.Errorf("memories.ListByPenguin(%s) > %w", penguinID, err)
	}
	return memories, nil
}

func (s *Service) GetMemory(ctx context.Context, id string) (*memory.Memory, error) {
	m, err := s.memories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("memories.GetByID(%s) > %w", id, err)
	}
	return m, nil
}

func (s *Service) CreateMemory(ctx context.Context, in memory.Input) (*memory.Memory, error) {
	m, err := s.memories.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("memories.Create() > %w", err)
	}
	s.revalidate(ctx, revalidate.AdminPath, revalidate.MemoriesPath)
	return m, nil
}

// UpdateMemory returns nil when no memory has the id.
func (s *Service) UpdateMemory(ctx context.Context, id string, patch memory.Patch) (*memory.Memory, error) {
	m, err := s.memories.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("memories.Update(%s) > %w", id, err)
	}
	if m == nil {
		return nil, nil
	}
	s.revalidate(ctx, revalidate.AdminPath, revalidate.MemoriesPath)
	return m, nil
}

func (s *Service) DeleteMemory(ctx context.Context, id string) error {
	if err := s.memories.Delete(ctx, id); err != nil {
		return fmt.Errorf("memories.Delete(%s) > %w", id, err)
	}
	s.revalidate(ctx, revalidate.AdminPath, revalidate.MemoriesPath)
	return nil
}

func (s *Service) MemoriesByYear(ctx context.Context) ([]statistics.YearGroup, error) {
	memories, err := s.ListMemories(ctx)
	if err != nil {
		return nil, err
	}
	groups := statistics.GroupByYear(memories)
	if groups == nil {
		groups = []statistics.YearGroup{}
	}
	return groups, nil
}

// OnThisDay returns the memories dated on day's month and day, or the latest
// memory when there are none. A zero day means today.
func (s *Service) OnThisDay(ctx context.Context, day time.Time) ([]memory.Memory, error) {
	if day.IsZero() {
		day = s.now()
	}
	memories, err := s.ListMemories(ctx)
	if err != nil {
		return nil, err
	}
	return statistics.OnThisDay(memories, day), nil
}
