package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"stancewatch/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	APIName    = "Greek News NLP API"
	APIVersion = "0.1.0"
)

type ArticleStore interface {
	ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error)
	Ping(ctx context.Context) error
}

type ArticleHandler struct {
	repository ArticleStore
}

func NewArticleHandler(repository ArticleStore) *ArticleHandler {
	return &ArticleHandler{repository: repository}
}

func (h *ArticleHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Name:    APIName,
		Version: APIVersion,
		Status:  "active",
	})
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	filter := model.ArticleFilter{
		Skip:       getQuerySkip(c),
		Limit:      getQueryLimit(c),
		Target:     c.Query("target"),
		TargetType: c.Query("target_type"),
		Stance:     c.Query("stance"),
	}

	articles, err := h.repository.ListArticles(c.Request.Context(), filter)
	if err != nil {
		slog.Error("error fetching articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, toArticleResponse(a))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	err := h.repository.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQuerySkip(c *gin.Context) int {
	skip := getQueryInt("skip", 0, c)
	if skip < 0 {
		slog.Warn("invalid query parameter, using default", "param", "skip", "value", skip, "default", 0)
		return 0
	}
	return skip
}
