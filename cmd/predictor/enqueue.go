package main

import (
	"fmt"
	"log/slog"

	"stancewatch/db"
	"stancewatch/internal/predictor"
	"stancewatch/internal/repository"

	"github.com/spf13/cobra"
)

func newEnqueueCmd() *cobra.Command {
	var (
		target     string
		targetType string
		limit      int
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Queue articles that have no prediction for a target",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := predictor.ResolveTarget(target, targetType)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			connectDB(ctx)
			defer db.Close()
			connectRedis(ctx)
			defer db.CloseRedis()

			repo := repository.NewPredictionRepository(db.DB)
			ids, err := repo.GetArticleIDsWithoutPrediction(ctx, resolved, targetType, limit, force)
			if err != nil {
				return fmt.Errorf("select articles: %w", err)
			}

			if len(ids) == 0 {
				slog.Info("no articles found to process", "target", resolved, "target_type", targetType)
				return nil
			}

			pushed, err := predictor.Enqueue(ctx, db.PredictQueueKey, ids, resolved, targetType)
			slog.Info("articles queued", "target", resolved, "target_type", targetType, "queued", pushed, "found", len(ids))
			return err
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "target club (required for club type, ignored for referee type)")
	cmd.Flags().StringVarP(&targetType, "type", "y", "club", "type of target (club or referee)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "limit the number of articles to queue")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "queue articles that already have predictions")

	return cmd
}
