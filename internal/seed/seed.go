// Package seed loads the starter penguins and memories into an empty catalog.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
)

//go:embed starter.yaml
var starter []byte

// Dataset is a set of records with fixed ids.
type Dataset struct {
	Penguins []penguin.Penguin `yaml:"penguins"`
	Memories []memory.Memory   `yaml:"memories"`
}

// Starter returns the dataset shipped with the catalog.
func Starter() (Dataset, error) {
	return Parse(starter)
}

func Parse(data []byte) (Dataset, error) {
	var dataset Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return Dataset{}, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}
	return dataset, nil
}

func ReadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return Parse(data)
}

type Counts struct {
	New     int `json:"new"`
	Skipped int `json:"skipped"`
}

type Result struct {
	Penguins Counts `json:"penguins"`
	Memories Counts `json:"memories"`
}

type Options struct {
	// DryRun reports what would be imported without writing.
	DryRun bool
}

type Seeder struct {
	penguins penguin.Repository
	memories memory.Repository
	logger   zerolog.Logger
}

func NewSeeder(penguins penguin.Repository, memories memory.Repository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		penguins: penguins,
		memories: memories,
		logger:   logger,
	}
}

// Run imports every record of dataset whose id is not in the catalog yet.
// Existing records are left as they are.
func (s *Seeder) Run(ctx context.Context, dataset Dataset, opts Options) (Result, error) {
	var result Result
	for _, p := range dataset.Penguins {
		created, err := s.importPenguin(ctx, p, opts)
		if err != nil {
			return result, err
		}
		count(&result.Penguins, created)
		s.logger.Debug().Str("id", p.ID).Bool("new", created).Msg("seed penguin")
	}
	for _, m := range dataset.Memories {
		created, err := s.importMemory(ctx, m, opts)
		if err != nil {
			return result, err
		}
		count(&result.Memories, created)
		s.logger.Debug().Str("id", m.ID).Bool("new", created).Msg("seed memory")
	}
	return result, nil
}

func (s *Seeder) importPenguin(ctx context.Context, p penguin.Penguin, opts Options) (bool, error) {
	if opts.DryRun {
		existing, err := s.penguins.GetByID(ctx, p.ID)
		if err != nil {
			return false, fmt.Errorf("penguins.GetByID(%s) > %w", p.ID, err)
		}
		return existing == nil, nil
	}
	created, err := s.penguins.Import(ctx, p)
	if err != nil {
		return false, fmt.Errorf("penguins.Import(%s) > %w", p.ID, err)
	}
	return created, nil
}

func (s *Seeder) importMemory(ctx context.Context, m memory.Memory, opts Options) (bool, error) {
	if opts.DryRun {
		existing, err := s.memories.GetByID(ctx, m.ID)
		if err != nil {
			return false, fmt.Errorf("memories.GetByID(%s) > %w", m.ID, err)
		}
		return existing == nil, nil
	}
	created, err := s.memories.Import(ctx, m)
	if err != nil {
		return false, fmt.Errorf("memories.Import(%s) > %w", m.ID, err)
	}
	return created, nil
}

func count(c *Counts, created bool) {
	if created {
		c.New++
	} else {
		c.Skipped++
	}
}
