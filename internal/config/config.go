// Package config reads process configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"stancewatch/internal/model"
)

type Config struct {
	APIURL        string
	DashboardAddr string
	APIAddr       string
	FrontendURL   string

	DatabaseURL string
	RedisURL    string

	LLMProvider     string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	PredictTargets    []Target
	ScrapeBloggers    []string
	ScrapeMaxArticles int
}

// Target is one stance target the predictor runs against.
type Target struct {
	Name string
	Type string
}

func Load() Config {
	return Config{
		APIURL:            getEnv("API_URL", "http://localhost:8000"),
		DashboardAddr:     getEnv("DASHBOARD_ADDR", ":3000"),
		APIAddr:           getEnv("API_ADDR", ":8000"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		PredictTargets:    ParseTargets(os.Getenv("PREDICT_TARGETS")),
		ScrapeBloggers:    splitList(os.Getenv("SCRAPE_BLOGGERS")),
		ScrapeMaxArticles: getEnvInt("SCRAPE_MAX_ARTICLES", 0),
	}
}

// ParseTargets reads a list like "club:Olympiacos,club:PAOK,referee". A bare
// "referee" entry maps to the fixed referee target; malformed entries are
// skipped.
func ParseTargets(value string) []Target {
	var targets []Target
	for _, entry := range splitList(value) {
		kind, name, _ := strings.Cut(entry, ":")
		kind = strings.TrimSpace(kind)
		name = strings.TrimSpace(name)

		switch {
		case kind == model.TargetTypeReferee:
			targets = append(targets, Target{Name: model.RefereeTarget, Type: model.TargetTypeReferee})
		case kind == model.TargetTypeClub && name != "":
			targets = append(targets, Target{Name: name, Type: model.TargetTypeClub})
		default:
			slog.Warn("ignoring invalid prediction target", "entry", entry)
		}
	}
	return targets
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid environment variable, using default", "key", key, "value", value, "error", err)
		return defaultValue
	}
	return parsed
}
