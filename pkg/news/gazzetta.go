package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

const (
	gazzettaBaseURL      = "https://www.gazzetta.gr"
	gazzettaUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxConcurrentFetches = 10
)

var gazzettaDateLayouts = []string{"02/01/2006 - 15:04", "02/01/2006"}

// GazzettaClient scrapes the blogger section of gazzetta.gr.
type GazzettaClient struct {
	baseURL    string
	httpClient *http.Client
	bloggers   map[string]bool
	pageDelay  time.Duration
	location   *time.Location
	now        func() time.Time
}

// NewGazzettaClient returns a scraper for all bloggers, or only the named ones
// when bloggers is not empty.
func NewGazzettaClient(bloggers []string) *GazzettaClient {
	loc, err := time.LoadLocation("Europe/Athens")
	if err != nil {
		slog.Warn("could not load Europe/Athens, using UTC", "error", err)
		loc = time.UTC
	}

	allow := make(map[string]bool, len(bloggers))
	for _, b := range bloggers {
		allow[b] = true
	}

	return &GazzettaClient{
		baseURL:    gazzettaBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		bloggers:   allow,
		pageDelay:  500 * time.Millisecond,
		location:   loc,
		now:        time.Now,
	}
}

func (c *GazzettaClient) Name() string {
	return "Gazzetta"
}

type gazzettaCard struct {
	title      string
	url        string
	date       string
	categories []string
}

func (c *GazzettaClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	var articles []Article

	err := c.walkIndex(ctx, func(b Blogger) error {
		bloggerArticles, err := c.fetchBloggerArticles(ctx, b, limit)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("error fetching blogger articles", "blogger", b.Name, "error", err)
		}
		slog.Info("blogger scraped", "blogger", b.Name, "articles", len(bloggerArticles))
		articles = append(articles, bloggerArticles...)
		return nil
	})

	return articles, err
}

// ListBloggers returns the bloggers on the index, restricted to the
// allow-list when one is set.
func (c *GazzettaClient) ListBloggers(ctx context.Context) ([]Blogger, error) {
	var bloggers []Blogger
	err := c.walkIndex(ctx, func(b Blogger) error {
		bloggers = append(bloggers, b)
		return nil
	})
	return bloggers, err
}

// walkIndex visits each blogger on the index pages once. It stops when a
// page lists nobody it has not already seen.
func (c *GazzettaClient) walkIndex(ctx context.Context, visit func(Blogger) error) error {
	seen := make(map[string]bool)

	for page := 0; ; page++ {
		listed, err := c.fetchBloggers(ctx, page)
		if err != nil {
			return err
		}

		var fresh []Blogger
		for _, b := range listed {
			if seen[b.Name] {
				continue
			}
			seen[b.Name] = true
			fresh = append(fresh, b)
		}
		if len(fresh) == 0 {
			return nil
		}

		for _, b := range fresh {
			if len(c.bloggers) > 0 && !c.bloggers[b.Name] {
				continue
			}
			if err := visit(b); err != nil {
				return err
			}
		}

		if err := c.sleep(ctx); err != nil {
			return err
		}
	}
}

// fetchBloggers reads one page of the bloggers index. It returns nothing once
// the index runs out.
func (c *GazzettaClient) fetchBloggers(ctx context.Context, page int) ([]Blogger, error) {
	doc, err := c.getDocument(ctx, fmt.Sprintf("%s/bloggers?page=%d", c.baseURL, page))
	if err != nil {
		return nil, fmt.Errorf("gazzetta fetch bloggers: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	var bloggers []Blogger
	doc.Find("div.bloggers .list-article__blogger").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find("h3").First().Text())
		href, ok := s.Find("a").First().Attr("href")
		if name == "" || !ok {
			slog.Warn("skipping malformed blogger entry", "page", page)
			return
		}
		bloggers = append(bloggers, Blogger{Name: name, ProfileURL: c.resolve(href)})
	})

	return bloggers, nil
}

func (c *GazzettaClient) fetchBloggerArticles(ctx context.Context, b Blogger, limit int) ([]Article, error) {
	var articles []Article
	seen := make(map[string]bool)

	for page := 0; limit <= 0 || len(articles) < limit; page++ {
		doc, err := c.getDocument(ctx, fmt.Sprintf("%s?page=%d", b.ProfileURL, page))
		if err != nil {
			return articles, fmt.Errorf("gazzetta fetch profile: %w", err)
		}
		if doc == nil {
			break
		}

		var cards []gazzettaCard
		for _, card := range c.parseCards(doc) {
			if seen[card.url] {
				continue
			}
			seen[card.url] = true
			cards = append(cards, card)
		}
		if len(cards) == 0 {
			break
		}

		if limit > 0 && len(articles)+len(cards) > limit {
			cards = cards[:limit-len(articles)]
		}

		contents := c.fetchContents(ctx, cards)
		for i, card := range cards {
			articles = append(articles, Article{
				Title:       card.title,
				Content:     contents[i],
				URL:         card.url,
				PublishedAt: c.parseDate(card.date),
				Categories:  card.categories,
				BloggerName: b.Name,
				BloggerURL:  b.ProfileURL,
			})
		}

		if err := c.sleep(ctx); err != nil {
			return articles, err
		}
	}

	return articles, nil
}

// parseCards reads the article cards of a profile page. Gazzetta uses two
// layouts: promo cards and flex list rows.
func (c *GazzettaClient) parseCards(doc *goquery.Document) []gazzettaCard {
	var cards []gazzettaCard

	doc.Find("article.list-article-promo").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("h2 a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		card := gazzettaCard{
			title: strings.TrimSpace(link.Text()),
			url:   c.resolve(href),
			date:  strings.TrimSpace(s.Find("time").First().Text()),
		}
		if cat := strings.TrimSpace(s.Find("a.is-category").First().Text()); cat != "" {
			card.categories = append(card.categories, cat)
		}
		cards = append(cards, card)
	})

	doc.Find("article.is-flex").Each(func(_ int, s *goquery.Selection) {
		link := s.Find(".list-article__info h3 a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		card := gazzettaCard{
			title: strings.TrimSpace(link.Text()),
			url:   c.resolve(href),
			date:  strings.TrimSpace(s.Find("time.is-category-light").First().Text()),
		}
		s.Find(".is-category.whubcategory, .is-category.whubteam").Each(func(_ int, cat *goquery.Selection) {
			if name := strings.TrimSpace(cat.Text()); name != "" {
				card.categories = append(card.categories, name)
			}
		})
		cards = append(cards, card)
	})

	return cards
}

// fetchContents downloads article bodies with bounded concurrency. A failed
// download leaves that article with empty content.
func (c *GazzettaClient) fetchContents(ctx context.Context, cards []gazzettaCard) []string {
	contents := make([]string, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, card := range cards {
		g.Go(func() error {
			content, err := c.fetchContent(gctx, card.url)
			if err != nil {
				slog.Error("error fetching article content", "url", card.url, "error", err)
				return nil
			}
			contents[i] = content
			return nil
		})
	}
	g.Wait()

	return contents
}

func (c *GazzettaClient) fetchContent(ctx context.Context, articleURL string) (string, error) {
	doc, err := c.getDocument(ctx, articleURL)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", nil
	}
	return extractContent(doc), nil
}

func extractContent(doc *goquery.Document) string {
	body := doc.Find("div.content.is-relative").First()
	if body.Length() == 0 {
		return ""
	}

	var parts []string
	if lead := strings.TrimSpace(doc.Find("div.content__lead").First().Text()); lead != "" {
		parts = append(parts, lead)
	}

	body.Find("p, blockquote").Each(func(_ int, s *goquery.Selection) {
		if s.Find(".admanager-content").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n\n")
}

// getDocument returns nil without an error when the page answers with a
// non-200 status, which ends pagination.
func (c *GazzettaClient) getDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", gazzettaUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("unexpected status", "url", pageURL, "status", resp.StatusCode)
		return nil, nil
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func (c *GazzettaClient) resolve(href string) string {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// parseDate reads "DD/MM/YYYY - HH:MM" or "DD/MM/YYYY" in Athens time and
// falls back to the current time.
func (c *GazzettaClient) parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range gazzettaDateLayouts {
		if t, err := time.ParseInLocation(layout, value, c.location); err == nil {
			return t
		}
	}
	return c.now()
}

func (c *GazzettaClient) sleep(ctx context.Context) error {
	if c.pageDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.pageDelay):
		return nil
	}
}
