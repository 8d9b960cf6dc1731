package report

import (
	"bytes"
	"strings"
	"testing"

	"stancewatch/internal/dashboard"
	"stancewatch/internal/model"
	"stancewatch/pkg/news"

	"github.com/go-playground/assert/v2"
)

func TestRender(t *testing.T) {
	articles := []model.Article{
		{
			ID:      1,
			Title:   "Το ντέρμπι",
			Blogger: model.Blogger{Name: "Νίκος"},
			Predictions: []model.StancePrediction{
				{Target: "TeamA", Stance: "positive"},
				{Target: "TeamB", Stance: "unknown"},
			},
		},
	}

	var buf bytes.Buffer
	err := NewPrinter(&buf, false).Render(dashboard.BuildView(articles, nil))
	assert.Equal(t, nil, err)

	out := buf.String()
	assert.Equal(t, true, strings.Contains(out, dashboard.PageHeading))
	assert.Equal(t, true, strings.Contains(out, dashboard.ChartHeading))
	assert.Equal(t, true, strings.Contains(out, "TeamA"))
	assert.Equal(t, true, strings.Contains(out, "TeamB"))
	assert.Equal(t, true, strings.Contains(out, "By Νίκος"))
	assert.Equal(t, true, strings.Contains(out, "1 mentions"))
	assert.Equal(t, true, strings.Contains(out, "0 mentions"))
	assert.Equal(t, false, strings.Contains(out, "\x1b["))
}

func TestRender_Notification(t *testing.T) {
	var buf bytes.Buffer
	v := dashboard.BuildView(nil, &dashboard.Notification{Title: "Error fetching articles", Description: "Please try again later"})

	err := NewPrinter(&buf, false).Render(v)
	assert.Equal(t, nil, err)

	out := buf.String()
	assert.Equal(t, true, strings.Contains(out, "Error fetching articles: Please try again later"))
	assert.Equal(t, false, strings.Contains(out, "mentions"))
}

func TestRender_Loading(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf, false).Render(dashboard.View{Heading: dashboard.PageHeading, Loading: true})
	assert.Equal(t, nil, err)
	assert.Equal(t, dashboard.PageHeading+"\nLoading...\n", buf.String())
}

func TestRender_Colors(t *testing.T) {
	var buf bytes.Buffer
	v := dashboard.BuildView([]model.Article{{Predictions: []model.StancePrediction{{Target: "AEK", Stance: "negative"}}}}, nil)

	err := NewPrinter(&buf, true).Render(v)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(buf.String(), "\x1b["))
}

func TestPredictionCounts(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf, false).PredictionCounts([]model.PredictionCount{
		{Target: "Ολυμπιακός", TargetType: "club", Count: 12},
		{Target: "διαιτησία", TargetType: "referee", Count: 3},
	})
	assert.Equal(t, nil, err)

	out := buf.String()
	assert.Equal(t, true, strings.Contains(out, "Ολυμπιακός"))
	assert.Equal(t, true, strings.Contains(out, "referee"))
	assert.Equal(t, true, strings.Contains(out, "12"))
}

func TestPredictionCounts_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf, false).PredictionCounts(nil)
	assert.Equal(t, nil, err)
	assert.Equal(t, "No predictions found\n", buf.String())
}

func TestBloggers(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf, false).Bloggers([]news.Blogger{
		{Name: "Νίκος Παπαδόπουλος", ProfileURL: "https://www.gazzetta.gr/bloggers/nikos"},
	})
	assert.Equal(t, nil, err)

	out := buf.String()
	assert.Equal(t, true, strings.Contains(out, "Available Bloggers"))
	assert.Equal(t, true, strings.Contains(out, "Νίκος Παπαδόπουλος"))
	assert.Equal(t, true, strings.Contains(out, "https://www.gazzetta.gr/bloggers/nikos"))
}

func TestBloggers_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf, false).Bloggers(nil)
	assert.Equal(t, nil, err)
	assert.Equal(t, "No bloggers found\n", buf.String())
}
