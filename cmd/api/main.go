package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"stancewatch/db"
	"stancewatch/internal/config"
	"stancewatch/internal/handler"
	"stancewatch/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.Migrate(context.Background())
	if err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	articleRepo := repository.NewArticleRepository(db.DB)
	articleHandler := handler.NewArticleHandler(articleRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", articleHandler.GetRoot)
	r.GET("/api/v1/articles", articleHandler.GetArticles)
	r.GET("/health", articleHandler.GetHealth)

	err = r.Run(cfg.APIAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
