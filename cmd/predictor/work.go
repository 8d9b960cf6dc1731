package main

import (
	"log"

	"stancewatch/db"
	"stancewatch/internal/predictor"
	"stancewatch/internal/repository"
	"stancewatch/pkg/llm"

	"github.com/spf13/cobra"
)

func newWorkCmd() *cobra.Command {
	var drain bool

	cmd := &cobra.Command{
		Use:   "work",
		Short: "Classify queued articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := llm.NewClassifier(cfg.LLMProvider, cfg.OpenAIAPIKey, cfg.AnthropicAPIKey)
			if err != nil {
				log.Fatalf("error creating LLM client: %v", err)
			}

			ctx := cmd.Context()
			connectDB(ctx)
			defer db.Close()
			connectRedis(ctx)
			defer db.CloseRedis()

			worker := predictor.NewWorker(
				repository.NewArticleRepository(db.DB),
				repository.NewPredictionRepository(db.DB),
				classifier,
			)

			return worker.Run(ctx, db.PredictQueueKey, drain)
		},
	}

	cmd.Flags().BoolVar(&drain, "drain", false, "exit once the queue is empty")

	return cmd
}
