// Package dashboard builds the stance dashboard page from a list of articles.
package dashboard

import (
	"stancewatch/internal/model"
	"stancewatch/internal/stats"
)

const (
	PageHeading  = "Greek Sports News Analysis"
	ChartHeading = "Stance Analysis by Target"
	PanelSize    = 5
)

type RecentArticle struct {
	ID      int64
	Title   string
	Blogger string
	URL     string
}

type TopTarget struct {
	Target   string
	Mentions int
}

type View struct {
	Heading      string
	ChartHeading string
	Loading      bool
	Notification *Notification
	Stats        []stats.StanceStats
	Chart        BarChart
	Recent       []RecentArticle
	Top          []TopTarget
}

func BuildView(articles []model.Article, notification *Notification) View {
	stanceStats := stats.Calculate(articles)

	v := View{
		Heading:      PageHeading,
		ChartHeading: ChartHeading,
		Notification: notification,
		Stats:        stanceStats,
		Chart:        NewBarChart(stanceStats),
		Recent:       []RecentArticle{},
		Top:          []TopTarget{},
	}

	for _, a := range stats.Recent(articles, PanelSize) {
		v.Recent = append(v.Recent, RecentArticle{
			ID:      a.ID,
			Title:   a.Title,
			Blogger: a.Blogger.Name,
			URL:     a.ArticleURL,
		})
	}

	for _, s := range stats.TopTargets(stanceStats, PanelSize) {
		v.Top = append(v.Top, TopTarget{Target: s.Target, Mentions: s.Total()})
	}

	return v
}
