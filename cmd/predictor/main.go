package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"stancewatch/db"
	"stancewatch/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "predictor",
	Short: "Predict the stance of stored articles towards clubs and referees",
	Long: `predictor queues stored articles for stance classification, runs the
classification workers and lists the stored predictions.

Example usage:
  predictor enqueue --target Ολυμπιακός --type club --limit 50
  predictor enqueue --type referee --force
  predictor work
  predictor list --type club`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return nil
	},
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(newEnqueueCmd(), newWorkCmd(), newListCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func connectDB(ctx context.Context) {
	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}

	err = db.Migrate(ctx)
	if err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}
}

func connectRedis(ctx context.Context) {
	err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
}
