package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/penguins/internal/seed"
)

func newSeedCommand() *cobra.Command {
	var opts seed.Options
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the starter penguins and memories",
		Long:  "Import the starter penguins and memories. Records whose id already exists are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := loadDataset(file)
			if err != nil {
				return err
			}

			deps, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			result, err := seed.NewSeeder(deps.penguins, deps.memories, log.Logger).Run(cmd.Context(), dataset, opts)
			if err != nil {
				return fmt.Errorf("seeder.Run() > %w", err)
			}

			verb := "imported"
			if opts.DryRun {
				verb = "would import"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "penguins: %s %d, skipped %d\nmemories: %s %d, skipped %d\n",
				verb, result.Penguins.New, result.Penguins.Skipped,
				verb, result.Memories.New, result.Memories.Skipped,
			)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report what would be imported without writing")
	cmd.Flags().StringVar(&file, "file", "", "YAML dataset to import instead of the starter data")
	return cmd
}

func loadDataset(file string) (seed.Dataset, error) {
	if file == "" {
		return seed.Starter()
	}
	return seed.ReadFile(file)
}
