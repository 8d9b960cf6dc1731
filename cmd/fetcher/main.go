package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"stancewatch/db"
	"stancewatch/internal/config"
	"stancewatch/internal/model"
	"stancewatch/internal/predictor"
	"stancewatch/internal/report"
	"stancewatch/internal/repository"
	"stancewatch/pkg/news"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfg config.Config

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fetcher",
		Short: "Scrape blogger articles and queue them for stance prediction",
		Long: `fetcher scrapes the configured news source, stores new articles and queues
one prediction job per configured target for each of them.

Example usage:
  fetcher            # scrape, save and queue
  fetcher bloggers   # list the bloggers on the source index`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runFetch(cmd.Context())
			return nil
		},
	}

	root.AddCommand(newBloggersCmd())

	return root
}

func newBloggersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bloggers",
		Short: "List the bloggers on the source index",
		RunE: func(cmd *cobra.Command, args []string) error {
			bloggers, err := news.NewGazzettaClient(cfg.ScrapeBloggers).ListBloggers(cmd.Context())
			if err != nil {
				return fmt.Errorf("list bloggers: %w", err)
			}
			return report.NewPrinter(cmd.OutOrStdout(), report.UseColors()).Bloggers(bloggers)
		},
	}
}

func runFetch(ctx context.Context) {
	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.Migrate(ctx)
	if err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	err = db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	if len(cfg.PredictTargets) == 0 {
		slog.Warn("no prediction targets configured, articles will not be queued")
	}

	clients := []news.NewsClient{news.NewGazzettaClient(cfg.ScrapeBloggers)}

	repo := repository.NewArticleRepository(db.DB)

	for _, client := range clients {
		source := client.Name()

		fetchedArticles, err := client.Fetch(ctx, cfg.ScrapeMaxArticles)
		if err != nil {
			slog.Error("error fetching articles", "source", source, "error", err)
			if len(fetchedArticles) == 0 {
				continue
			}
		}

		var saved, duplicated, errors int

		for _, a := range fetchedArticles {
			article := toArticle(a)

			success, err := repo.SaveScraped(ctx, &article)
			if err != nil {
				slog.Error("error saving article", "source", source, "error", err)
				errors++
				continue
			}

			if !success {
				slog.Info("duplicate article skipped", "source", source, "url", a.URL)
				duplicated++
				continue
			}

			saved++

			err = predictor.EnqueueArticle(ctx, db.PredictQueueKey, article.ID, cfg.PredictTargets)
			if err != nil {
				slog.Error("error pushing to Redis queue", "source", source, "error", err, "article_id", article.ID)
				errors++
			}
		}

		slog.Info("fetch complete", "source", source, "saved", saved, "duplicated", duplicated, "errors", errors)
	}
}

func toArticle(a news.Article) model.Article {
	published := a.PublishedAt

	categories := make([]model.Category, 0, len(a.Categories))
	for _, name := range a.Categories {
		categories = append(categories, model.Category{Name: name})
	}

	return model.Article{
		Title:         a.Title,
		Content:       a.Content,
		ArticleURL:    a.URL,
		PublishedDate: &published,
		Blogger: model.Blogger{
			Name:       a.BloggerName,
			ProfileURL: a.BloggerURL,
		},
		Categories: categories,
	}
}
