package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			stats, err := deps.catalog.Stats(cmd.Context())
			if err != nil {
				return err
			}
			dangling, err := deps.catalog.DanglingReferences(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printStats(out, stats)
			yellow := color.New(color.FgYellow)
			for _, d := range dangling {
				yellow.Fprintf(out, "memory %s refers to missing penguins: %s\n", d.MemoryID, strings.Join(d.PenguinIDs, ", "))
			}
			return nil
		},
	}
}

func printStats(w io.Writer, stats statistics.CollectionStatistics) {
	bold := color.New(color.Bold)

	fmt.Fprintf(w, "penguins:       %d\n", stats.TotalPenguins)
	fmt.Fprintf(w, "average age:    %.1f years\n", stats.AverageAge)
	fmt.Fprintf(w, "average weight: %d g\n", stats.AverageWeight)
	fmt.Fprintf(w, "average height: %d cm\n", stats.AverageHeight)

	for _, section := range []struct {
		title string
		items []statistics.Distribution
	}{
		{title: "species", items: stats.SpeciesDistribution},
		{title: "groups", items: stats.GroupDistribution},
	} {
		bold.Fprintf(w, "%s\n", section.title)
		for _, d := range section.items {
			fmt.Fprintf(w, "  %-20s %3d %3d%%\n", d.Label, d.Count, d.Percentage)
		}
	}

	bold.Fprintln(w, "hall of fame")
	for _, fact := range []struct {
		title   string
		penguin *penguin.Penguin
	}{
		{title: "oldest", penguin: stats.Facts.Oldest},
		{title: "youngest", penguin: stats.Facts.Youngest},
		{title: "tallest", penguin: stats.Facts.Tallest},
		{title: "heaviest", penguin: stats.Facts.Heaviest},
	} {
		name := "-"
		if fact.penguin != nil {
			name = fact.penguin.Name
		}
		fmt.Fprintf(w, "  %-9s %s\n", fact.title, name)
	}
}
