package stanceapi

import (
	"fmt"
	"time"

	"stancewatch/internal/model"
)

// Wire shapes. Required fields are pointers so that an absent field is told
// apart from a zero value.

type rawArticle struct {
	ID                *int64          `json:"id"`
	Title             *string         `json:"title"`
	Content           *string         `json:"content"`
	ArticleURL        *string         `json:"article_url"`
	PublishedDate     *string         `json:"published_date"`
	Blogger           *rawBlogger     `json:"blogger"`
	Categories        []rawCategory   `json:"categories"`
	StancePredictions []rawPrediction `json:"stance_predictions"`
}

type rawBlogger struct {
	Name       *string `json:"name"`
	ProfileURL *string `json:"profile_url"`
}

type rawCategory struct {
	Name *string `json:"name"`
}

type rawPrediction struct {
	Target        *string `json:"target"`
	TargetType    *string `json:"target_type"`
	Stance        *string `json:"stance"`
	Justification *string `json:"justification"`
}

var publishedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsePublishedDate(value string) (time.Time, error) {
	for _, layout := range publishedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized published_date %q", value)
}

func (r rawArticle) toModel() (model.Article, error) {
	if r.ID == nil {
		return model.Article{}, fmt.Errorf("%w: missing id", ErrInvalidArticle)
	}
	if r.Title == nil {
		return model.Article{}, fmt.Errorf("%w: missing title", ErrInvalidArticle)
	}
	if r.ArticleURL == nil {
		return model.Article{}, fmt.Errorf("%w: missing article_url", ErrInvalidArticle)
	}
	if r.Blogger == nil || r.Blogger.Name == nil {
		return model.Article{}, fmt.Errorf("%w: missing blogger", ErrInvalidArticle)
	}

	a := model.Article{
		ID:         *r.ID,
		Title:      *r.Title,
		ArticleURL: *r.ArticleURL,
		Blogger:    model.Blogger{Name: *r.Blogger.Name},
		Categories: make([]model.Category, 0, len(r.Categories)),
	}

	if r.Content != nil {
		a.Content = *r.Content
	}

	if r.Blogger.ProfileURL != nil {
		a.Blogger.ProfileURL = *r.Blogger.ProfileURL
	}

	if r.PublishedDate != nil && *r.PublishedDate != "" {
		published, err := parsePublishedDate(*r.PublishedDate)
		if err != nil {
			return model.Article{}, fmt.Errorf("%w: %v", ErrInvalidArticle, err)
		}
		a.PublishedDate = &published
	}

	for _, c := range r.Categories {
		if c.Name == nil {
			return model.Article{}, fmt.Errorf("%w: category without name", ErrInvalidArticle)
		}
		a.Categories = append(a.Categories, model.Category{Name: *c.Name})
	}

	a.Predictions = make([]model.StancePrediction, 0, len(r.StancePredictions))
	for _, p := range r.StancePredictions {
		if p.Target == nil || p.Stance == nil {
			return model.Article{}, fmt.Errorf("%w: prediction without target or stance", ErrInvalidArticle)
		}

		prediction := model.StancePrediction{
			ArticleID:     a.ID,
			Target:        *p.Target,
			Stance:        *p.Stance,
			Justification: p.Justification,
		}
		if p.TargetType != nil {
			prediction.TargetType = *p.TargetType
		}
		a.Predictions = append(a.Predictions, prediction)
	}

	return a, nil
}
