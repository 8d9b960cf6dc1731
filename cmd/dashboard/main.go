package main

import (
	"log"
	"log/slog"
	"os"

	"stancewatch/internal/config"
	"stancewatch/internal/handler"
	"stancewatch/pkg/stanceapi"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	client := stanceapi.NewClient(cfg.APIURL)
	slog.Info("using stance API", "url", client.BaseURL())

	dashboardHandler := handler.NewDashboardHandler(client)

	r := gin.Default()

	r.GET("/", dashboardHandler.GetDashboard)
	r.GET("/stats", dashboardHandler.GetStats)
	r.GET("/health", dashboardHandler.GetHealth)

	err := r.Run(cfg.DashboardAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
