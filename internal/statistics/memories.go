package statistics

import (
	"sort"
	"time"

	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
)

type YearGroup struct {
	Year     string          `json:"year"`
	Memories []memory.Memory `json:"memories"`
}

// GroupByYear groups memories by the year of their date, newest year first.
// Memories keep their relative order within a year.
func GroupByYear(memories []memory.Memory) []YearGroup {
	index := make(map[string]int)
	var groups []YearGroup
	for _, m := range memories {
		year := m.Year()
		i, ok := index[year]
		if !ok {
			i = len(groups)
			index[year] = i
			groups = append(groups, YearGroup{Year: year})
		}
		groups[i].Memories = append(groups[i].Memories, m)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Year > groups[j].Year
	})
	return groups
}

// OnThisDay returns the memories dated on day's month and day in any year.
// When none match it falls back to the most recent memory.
func OnThisDay(memories []memory.Memory, day time.Time) []memory.Memory {
	monthDay := day.Format("-01-02")
	var matches []memory.Memory
	for _, m := range memories {
		if len(m.Date) == len(time.DateOnly) && m.Date[4:] == monthDay {
			matches = append(matches, m)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	var latest *memory.Memory
	for i := range memories {
		m := &memories[i]
		if latest == nil || m.Date > latest.Date || (m.Date == latest.Date && m.ID < latest.ID) {
			latest = m
		}
	}
	if latest == nil {
		return []memory.Memory{}
	}
	return []memory.Memory{*latest}
}

// DanglingReference lists the penguin ids of a memory that match no penguin.
type DanglingReference struct {
	MemoryID   string   `json:"memoryId"`
	PenguinIDs []string `json:"penguinIds"`
}

// DanglingReferences reports memories that refer to penguins which do not exist.
// Nothing is removed.
func DanglingReferences(memories []memory.Memory, penguins []penguin.Penguin) []DanglingReference {
	known := make(map[string]bool, len(penguins))
	for _, p := range penguins {
		known[p.ID] = true
	}

	var result []DanglingReference
	for _, m := range memories {
		seen := make(map[string]bool)
		var missing []string
		for _, id := range m.PenguinIDs {
			if known[id] || seen[id] {
				continue
			}
			seen[id] = true
			missing = append(missing, id)
		}
		if len(missing) > 0 {
			result = append(result, DanglingReference{MemoryID: m.ID, PenguinIDs: missing})
		}
	}
	return result
}
