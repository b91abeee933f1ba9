package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/revalidate"
)

type SortField string

const (
	SortByName      SortField = "name"
	SortByBirthDate SortField = "birthDate"
	SortByCountry   SortField = "country"
)

var sortFields = []SortField{SortByName, SortByBirthDate, SortByCountry}

// ParseSortField returns the sort field named s. An empty s sorts by name.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByName, nil
	}
	for _, f := range sortFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q, must be one of %v", s, sortFields)
}

// String and Set let a SortField be used as a command line flag.
func (f *SortField) String() string {
	return string(*f)
}

func (f *SortField) Set(s string) error {
	parsed, err := ParseSortField(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f *SortField) Type() string {
	return "sortField"
}

// PenguinQuery narrows and orders the penguin grid.
type PenguinQuery struct {
	// Search matches a case-insensitive substring of the name, nickname or country.
	Search string
	// Tag keeps only penguins with exactly this tag when set.
	Tag  string
	Sort SortField
}

func (q PenguinQuery) matches(p penguin.Penguin) bool {
	if q.Tag != "" && p.Tag != q.Tag {
		return false
	}
	if q.Search == "" {
		return true
	}
	search := strings.ToLower(q.Search)
	for _, field := range []string{p.Name, p.Nickname, p.Country} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func sortKey(p penguin.Penguin, field SortField) string {
	switch field {
	case SortByBirthDate:
		return p.BirthDate
	case SortByCountry:
		return strings.ToLower(p.Country)
	default:
		return strings.ToLower(p.Name)
	}
}

// ListPenguins returns the penguins matching q. Penguins with equal sort keys
// keep the repository order.
func (s *Service) ListPenguins(ctx context.Context, q PenguinQuery) ([]penguin.Penguin, error) {
	penguins, err := s.penguins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("penguins.List() > %w", err)
	}

	result := make([]penguin.Penguin, 0, len(penguins))
	for _, p := range penguins {
		if q.matches(p) {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return sortKey(result[i], q.Sort) < sortKey(result[j], q.Sort)
	})
	return result, nil
}

// Tags returns the distinct non-empty tags in order of first appearance.
func Tags(penguins []penguin.Penguin) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range penguins {
		if p.Tag == "" || seen[p.Tag] {
			continue
		}
		seen[p.Tag] = true
		tags = append(tags, p.Tag)
	}
	return tags
}

func (s *Service) GetPenguin(ctx context.Context, id string) (*penguin.Penguin, error) {
	p, err := s.penguins.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("penguins.GetByID(%s) > %w", id, err)
	}
	return p, nil
}

func (s *Service) CreatePenguin(ctx context.Context, in penguin.Input) (*penguin.Penguin, error) {
	p, err := s.penguins.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("penguins.Create() > %w", err)
	}
	s.revalidate(ctx, revalidate.PenguinsPath, revalidate.AdminPath)
	return p, nil
}

// UpdatePenguin returns nil when no penguin has the id.
func (s *Service) UpdatePenguin(ctx context.Context, id string, patch penguin.Patch) (*penguin.Penguin, error) {
	p, err := s.penguins.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("penguins.Update(%s) > %w", id, err)
	}
	if p == nil {
		return nil, nil
	}
	s.revalidate(ctx, revalidate.PenguinPath(p.ID), revalidate.PenguinsPath, revalidate.AdminPath)
	return p, nil
}

// DeletePenguin leaves the id in the memories that refer to the penguin.
func (s *Service) DeletePenguin(ctx context.Context, id string) error {
	if err := s.penguins.Delete(ctx, id); err != nil {
		return fmt.Errorf("penguins.Delete(%s) > %w", id, err)
	}
	s.revalidate(ctx, revalidate.PenguinsPath, revalidate.AdminPath)
	return nil
}
