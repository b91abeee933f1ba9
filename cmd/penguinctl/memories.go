package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/penguins/internal/memory"
)

func newMemoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memories",
		Short: "Inspect memories",
	}
	cmd.AddCommand(newMemoriesListCommand())
	return cmd
}

func newMemoriesListCommand() *cobra.Command {
	var penguinID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memories, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			var memories []memory.Memory
			if penguinID != "" {
				memories, err = deps.catalog.ListMemoriesByPenguin(cmd.Context(), penguinID)
			} else {
				memories, err = deps.catalog.ListMemories(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTITLE\tLOCATION\tPENGUINS")
			for _, m := range memories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", m.ID, m.Date, m.Title, m.Location, len(m.PenguinIDs))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&penguinID, "penguin", "", "only memories featuring this penguin id")
	return cmd
}
