package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"stancewatch/internal/config"
	"stancewatch/internal/dashboard"
	"stancewatch/internal/report"
	"stancewatch/pkg/stanceapi"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg := config.Load()

	session := dashboard.NewSession()
	session.Load(context.Background(), stanceapi.NewClient(cfg.APIURL))

	err := report.NewPrinter(os.Stdout, report.UseColors()).Render(session.View())
	if err != nil {
		log.Fatalf("error rendering report: %v", err)
	}
}
