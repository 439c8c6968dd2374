package main

import (
	"github.com/spf13/cobra"

	"github.com/mkraft/missiontext/corpus"
)

func newBuildCmd(a *app) *cobra.Command {
	var inputs []string
	var output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Aggregate cleaned trees into the deduplicated corpus",
		Long: `Merge every cleaned transcript tree into a single corpus file.
Duplicate lines are dropped, keeping the first occurrence; roots that
do not exist are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bc := a.cfg.Build
			if len(inputs) > 0 {
				bc.Inputs = inputs
			}
			if output != "" {
				bc.Output = output
			}

			db, store, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			b := corpus.New(corpus.Config{
				Inputs:  bc.Inputs,
				Output:  bc.Output,
				Catalog: store,
				Logger:  a.logger,
			})

			stats, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Printf("Total lines read: %d\n", stats.Total)
			cmd.Printf("Unique lines written: %d\n", stats.Unique)
			cmd.Printf("Duplicates removed: %d\n", stats.Duplicates)
			cmd.Printf("Output: %s\n", bc.Output)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&inputs, "input", nil, "cleaned tree to aggregate (repeatable)")
	cmd.Flags().StringVar(&output, "output", "", "corpus output file")

	return cmd
}
