package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/penguins/internal/catalog"
)

var (
	_ pflag.Value = (*catalog.SortField)(nil)
)

func newPenguinsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "penguins",
		Short: "Inspect and manage penguins",
	}
	cmd.AddCommand(
		newPenguinsListCommand(),
		newPenguinsGetCommand(),
		newPenguinsDeleteCommand(),
	)
	return cmd
}

func newPenguinsListCommand() *cobra.Command {
	query := catalog.PenguinQuery{Sort: catalog.SortByName}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List penguins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			penguins, err := deps.catalog.ListPenguins(cmd.Context(), query)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTAG\tCOUNTRY\tBIRTH DATE")
			for _, p := range penguins {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Tag, p.Country, p.BirthDate)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&query.Search, "query", "q", "", "match name, nickname or country")
	cmd.Flags().StringVar(&query.Tag, "tag", "", "only penguins with this tag")
	cmd.Flags().Var(&query.Sort, "sort", "sort by name, birthDate or country")
	return cmd
}

func newPenguinsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a penguin and its memories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			p, err := deps.catalog.GetPenguin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("penguin %s not found", args[0])
			}
			memories, err := deps.catalog.ListMemoriesByPenguin(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if err := encoder.Encode(p); err != nil {
				return fmt.Errorf("encoder.Encode() > %w", err)
			}
			if err := encoder.Close(); err != nil {
				return err
			}
			if len(memories) == 0 {
				return nil
			}
			titles := make([]string, 0, len(memories))
			for _, m := range memories {
				titles = append(titles, fmt.Sprintf("%s %s", m.Date, m.Title))
			}
			_, err = color.New(color.Bold).Fprintf(out, "memories:\n  %s\n", strings.Join(titles, "\n  "))
			return err
		},
	}
}

func newPenguinsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a penguin. Memories keep referring to it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			if err := deps.catalog.DeletePenguin(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}
