package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/statistics"
)

func gridPenguins() []penguin.Penguin {
	return []penguin.Penguin{
		{ID: "1", Name: "Kowalski", BirthDate: "2019-11-15", Tag: "Adelie", Country: "Madagascar"},
		{ID: "2", Name: "Mumble", BirthDate: "2021-02-14", Tag: "Emperor", Country: "Antarctica"},
		{ID: "3", Name: "Pingu", Nickname: "Noot", BirthDate: "2020-05-28", Tag: "Emperor", Country: "Switzerland"},
		{ID: "4", Name: "rico", Tag: "Adelie"},
	}
}

func TestService_ListPenguins(t *testing.T) {
	tests := []struct {
		name    string
		query   PenguinQuery
		wantIDs []string
	}{
		{
			name:    "default sorts by name ignoring case",
			query:   PenguinQuery{},
			wantIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:    "search matches the nickname",
			query:   PenguinQuery{Search: "NOOT"},
			wantIDs: []string{"3"},
		},
		{
			name:    "search matches the country",
			query:   PenguinQuery{Search: "mada"},
			wantIDs: []string{"1"},
		},
		{
			name:    "tag filter",
			query:   PenguinQuery{Tag: "Emperor", Sort: SortByName},
			wantIDs: []string{"2", "3"},
		},
		{
			name:    "sort by birth date puts missing dates first",
			query:   PenguinQuery{Sort: SortByBirthDate},
			wantIDs: []string{"4", "1", "3", "2"},
		},
		{
			name:    "sort by country",
			query:   PenguinQuery{Sort: SortByCountry},
			wantIDs: []string{"4", "2", "1", "3"},
		},
		{
			name:    "no match",
			query:   PenguinQuery{Search: "gunter"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m, _ := newTestService(t)
			m.penguins.EXPECT().List(gomock.Any()).Return(gridPenguins(), nil)

			got, err := s.ListPenguins(context.Background(), tt.query)
			require.NoError(t, err)
			gotIDs := make([]string, 0, len(got))
			for _, p := range got {
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestService_ListPenguins_Error(t *testing.T) {
	s, m, _ := newTestService(t)
	want := errors.New("boom")
	m.penguins.EXPECT().List(gomock.Any()).Return(nil, want)

	_, err := s.ListPenguins(context.Background(), PenguinQuery{})
	assert.ErrorIs(t, err, want)
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		in      string
		want    SortField
		wantErr bool
	}{
		{in: "", want: SortByName},
		{in: "name", want: SortByName},
		{in: "birthDate", want: SortByBirthDate},
		{in: "country", want: SortByCountry},
		{in: "weight", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortField(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"Adelie", "Emperor"}, Tags(gridPenguins()))
	assert.Nil(t, Tags([]penguin.Penguin{{ID: "1"}}))
}

func TestService_Gallery(t *testing.T) {
	s, m, _ := newTestService(t)
	m.penguins.EXPECT().List(gomock.Any()).Return([]penguin.Penguin{
		{ID: "1", Name: "Pingu", Nickname: "Noot", Note: "Classic", Images: []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}},
		{ID: "2", Name: "Mumble", Tag: "Emperor", Country: "Antarctica", Images: []string{}},
	}, nil)
	m.memories.EXPECT().List(gomock.Any()).Return([]memory.Memory{
		{ID: "m1", Title: "Beach", Location: "Izu", Description: "Sunny", Date: "2024-06-01", ImageURL: "https://example.com/m.jpg"},
	}, nil)

	got, err := s.Gallery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []GalleryItem{
		{ID: "p-1-0", Type: GalleryPenguin, ImageURL: "https://example.com/a.jpg", Title: "Pingu", Subtitle: "Noot", Description: "Classic", Tags: []string{"Penguin", "Unknown"}},
		{ID: "p-1-1", Type: GalleryPenguin, ImageURL: "https://example.com/b.jpg", Title: "Pingu", Subtitle: "Noot", Description: "Classic", Tags: []string{"Penguin", "Unknown"}},
		{ID: "m-m1", Type: GalleryMemory, ImageURL: "https://example.com/m.jpg", Title: "Beach", Subtitle: "Izu", Description: "Sunny", Date: "2024-06-01", Tags: []string{"Memory"}},
	}, got)
}

func TestService_MemoryQueries(t *testing.T) {
	memories := []memory.Memory{
		{ID: "m1", Date: "2024-06-01", PenguinIDs: []string{"1"}},
		{ID: "m2", Date: "2023-12-01", PenguinIDs: []string{"1", "9"}},
	}

	t.Run("on this day uses the clock for a zero day", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.memories.EXPECT().List(gomock.Any()).Return(memories, nil)

		got, err := s.OnThisDay(context.Background(), time.Time{})
		require.NoError(t, err)
		assert.Equal(t, []memory.Memory{memories[1]}, got)
	})

	t.Run("on this day for a given day", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.memories.EXPECT().List(gomock.Any()).Return(memories, nil)

		got, err := s.OnThisDay(context.Background(), time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, []memory.Memory{memories[0]}, got)
	})

	t.Run("by year", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.memories.EXPECT().List(gomock.Any()).Return(memories, nil)

		got, err := s.MemoriesByYear(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []statistics.YearGroup{
			{Year: "2024", Memories: memories[:1]},
			{Year: "2023", Memories: memories[1:]},
		}, got)
	})

	t.Run("by penguin", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.memories.EXPECT().ListByPenguin(gomock.Any(), "1").Return(memories, nil)

		got, err := s.ListMemoriesByPenguin(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, memories, got)
	})

	t.Run("dangling references", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.penguins.EXPECT().List(gomock.Any()).Return([]penguin.Penguin{{ID: "1"}}, nil)
		m.memories.EXPECT().List(gomock.Any()).Return(memories, nil)

		got, err := s.DanglingReferences(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []statistics.DanglingReference{{MemoryID: "m2", PenguinIDs: []string{"9"}}}, got)
	})
}

func TestService_Stats(t *testing.T) {
	s, m, _ := newTestService(t)
	m.penguins.EXPECT().List(gomock.Any()).Return(gridPenguins(), nil)

	got, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalPenguins)
	assert.Equal(t, "Kowalski", got.Facts.Oldest.Name)
	assert.Equal(t, "Mumble", got.Facts.Youngest.Name)
	assert.Equal(t, []statistics.Distribution{
		{Label: "Adelie", Count: 2, Percentage: 50},
		{Label: "Emperor", Count: 2, Percentage: 50},
	}, got.SpeciesDistribution)
}
