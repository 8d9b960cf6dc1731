// Package stanceapi is a client for the articles endpoint of the stance
// analysis API.
package stanceapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stancewatch/internal/model"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	articlesPath   = "/api/v1/articles"
)

var ErrInvalidArticle = errors.New("invalid article payload")

type GetArticlesParams struct {
	Skip       *int
	Limit      *int
	Target     string
	TargetType string
	Stance     string
}

func (p GetArticlesParams) query() url.Values {
	q := url.Values{}
	if p.Skip != nil {
		q.Set("skip", strconv.Itoa(*p.Skip))
	}
	if p.Limit != nil {
		q.Set("limit", strconv.Itoa(*p.Limit))
	}
	if p.Target != "" {
		q.Set("target", p.Target)
	}
	if p.TargetType != "" {
		q.Set("target_type", p.TargetType)
	}
	if p.Stance != "" {
		q.Set("stance", p.Stance)
	}
	return q
}

type ArticleSource interface {
	GetArticles(ctx context.Context, params GetArticlesParams) ([]model.Article, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetArticles issues a single GET against the articles endpoint and returns
// the decoded, validated list.
func (c *Client) GetArticles(ctx context.Context, params GetArticlesParams) ([]model.Article, error) {
	endpoint := c.baseURL + articlesPath
	if q := params.query(); len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("stanceapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stanceapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("stanceapi fetch: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []rawArticle
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("stanceapi decode: %w", err)
	}

	articles := make([]model.Article, 0, len(raw))
	for i, item := range raw {
		a, err := item.toModel()
		if err != nil {
			return nil, fmt.Errorf("stanceapi decode: article %d: %w", i, err)
		}
		articles = append(articles, a)
	}

	return articles, nil
}
