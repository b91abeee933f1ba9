// Package statistics derives the figures shown on the collection dashboard and memories pages.
package statistics

import (
	"math"
	"sort"
	"time"

	"github.com/at-ishikawa/penguins/internal/penguin"
)

// UnknownLabel groups penguins without a tag or group.
const UnknownLabel = "Unknown"

const daysPerYear = 365.25

// Distribution is the share of penguins carrying one label.
type Distribution struct {
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Facts holds the record holders of the collection. A fact is nil when no
// penguin has the value it is based on.
type Facts struct {
	Oldest   *penguin.Penguin `json:"oldest,omitempty"`
	Youngest *penguin.Penguin `json:"youngest,omitempty"`
	Tallest  *penguin.Penguin `json:"tallest,omitempty"`
	Heaviest *penguin.Penguin `json:"heaviest,omitempty"`
}

// CollectionStatistics summarizes the penguin collection.
type CollectionStatistics struct {
	TotalPenguins       int            `json:"totalPenguins"`
	AverageAge          float64        `json:"averageAge"`    // years, one decimal
	AverageWeight       int            `json:"averageWeight"` // grams
	AverageHeight       int            `json:"averageHeight"` // centimeters
	SpeciesDistribution []Distribution `json:"speciesDistribution"`
	GroupDistribution   []Distribution `json:"groupDistribution"`
	Facts               Facts          `json:"facts"`
}

// Calculate computes the collection statistics at now.
// Averages are taken over all penguins; missing values count as zero.
func Calculate(penguins []penguin.Penguin, now time.Time) CollectionStatistics {
	result := CollectionStatistics{
		TotalPenguins:       len(penguins),
		SpeciesDistribution: distribution(penguins, func(p penguin.Penguin) string { return p.Tag }),
		GroupDistribution:   distribution(penguins, func(p penguin.Penguin) string { return p.Group }),
		Facts:               facts(penguins),
	}
	if len(penguins) == 0 {
		return result
	}

	var totalAge float64
	var totalWeight, totalHeight int
	for _, p := range penguins {
		if age, ok := p.Age(now); ok {
			totalAge += age.Hours() / 24 / daysPerYear
		}
		if p.Weight != nil {
			totalWeight += *p.Weight
		}
		if p.Height != nil {
			totalHeight += *p.Height
		}
	}
	n := float64(len(penguins))
	result.AverageAge = math.Round(totalAge/n*10) / 10
	result.AverageWeight = int(math.Round(float64(totalWeight) / n))
	result.AverageHeight = int(math.Round(float64(totalHeight) / n))
	return result
}

func distribution(penguins []penguin.Penguin, label func(penguin.Penguin) string) []Distribution {
	counts := make(map[string]int)
	for _, p := range penguins {
		l := label(p)
		if l == "" {
			l = UnknownLabel
		}
		counts[l]++
	}

	result := make([]Distribution, 0, len(counts))
	for l, count := range counts {
		result = append(result, Distribution{
			Label:      l,
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(len(penguins)) * 100)),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}

// facts picks the first penguin in input order on ties.
func facts(penguins []penguin.Penguin) Facts {
	var f Facts
	for i := range penguins {
		p := &penguins[i]
		if p.BirthDate != "" {
			if f.Oldest == nil || p.BirthDate < f.Oldest.BirthDate {
				f.Oldest = p
			}
			if f.Youngest == nil || p.BirthDate > f.Youngest.BirthDate {
				f.Youngest = p
			}
		}
		if p.Height != nil && (f.Tallest == nil || *p.Height > *f.Tallest.Height) {
			f.Tallest = p
		}
		if p.Weight != nil && (f.Heaviest == nil || *p.Weight > *f.Heaviest.Weight) {
			f.Heaviest = p
		}
	}
	return f
}
