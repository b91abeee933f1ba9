package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/penguins/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(cmd.Context(), db, cfg.Database.Driver)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				_, err := fmt.Fprintln(out, "schema is up to date")
				return err
			}
			green := color.New(color.FgGreen)
			for _, version := range applied {
				if _, err := green.Fprintf(out, "applied %s\n", version); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
