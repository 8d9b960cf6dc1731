package main

import (
	"fmt"
	"os"

	"stancewatch/db"
	"stancewatch/internal/report"
	"stancewatch/internal/repository"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		target     string
		targetType string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored predictions per target",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			connectDB(ctx)
			defer db.Close()

			counts, err := repository.NewPredictionRepository(db.DB).CountPredictions(ctx, target, targetType)
			if err != nil {
				return fmt.Errorf("count predictions: %w", err)
			}

			return report.NewPrinter(os.Stdout, report.UseColors()).PredictionCounts(counts)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "filter by target")
	cmd.Flags().StringVarP(&targetType, "type", "y", "", "filter by target type")

	return cmd
}
