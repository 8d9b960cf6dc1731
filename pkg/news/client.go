package news

import (
	"context"
	"time"
)

type Article struct {
	Title       string
	Content     string
	URL         string
	PublishedAt time.Time
	Categories  []string
	BloggerName string
	BloggerURL  string
}

type Blogger struct {
	Name       string
	ProfileURL string
}

type NewsClient interface {
	// Fetch returns up to limit articles per author; limit <= 0 means no limit.
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}
