package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"stancewatch/internal/dashboard"
	"stancewatch/internal/stats"
	"stancewatch/pkg/stanceapi"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	source    stanceapi.ArticleSource
	templates *template.Template
}

func NewDashboardHandler(source stanceapi.ArticleSource) *DashboardHandler {
	return &DashboardHandler{source: source, templates: dashboard.Templates()}
}

// GetDashboard streams the page. Every request is a fresh mount: the loading
// placeholder is flushed first, then the articles are fetched once and the
// results are written below it. A failed fetch still renders, with a
// notification.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	session := dashboard.NewSession()

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	if err := h.templates.ExecuteTemplate(c.Writer, dashboard.LoadingTemplate, session.View()); err != nil {
		slog.Error("error rendering dashboard", "error", err)
		return
	}
	c.Writer.Flush()

	session.Load(c.Request.Context(), h.source)

	if err := h.templates.ExecuteTemplate(c.Writer, dashboard.ResultTemplate, session.View()); err != nil {
		slog.Error("error rendering dashboard", "error", err)
	}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	limit := dashboard.FetchLimit
	articles, err := h.source.GetArticles(c.Request.Context(), stanceapi.GetArticlesParams{Limit: &limit})
	if err != nil {
		slog.Error("error fetching articles", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error fetching articles"})
		return
	}

	res := stats.Calculate(articles)
	if res == nil {
		res = []stats.StanceStats{}
	}

	c.JSON(http.StatusOK, res)
}

func (h *DashboardHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
