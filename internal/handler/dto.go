package handler

import (
	"time"

	"stancewatch/internal/model"
)

type ArticleResponse struct {
	ID                int64                      `json:"id"`
	Title             string                     `json:"title"`
	Content           string                     `json:"content"`
	ArticleURL        string                     `json:"article_url"`
	PublishedDate     *string                    `json:"published_date"`
	Blogger           BloggerResponse            `json:"blogger"`
	Categories        []CategoryResponse         `json:"categories"`
	StancePredictions []StancePredictionResponse `json:"stance_predictions"`
}

type BloggerResponse struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url"`
}

type CategoryResponse struct {
	Name string `json:"name"`
}

type StancePredictionResponse struct {
	Target        string  `json:"target"`
	TargetType    string  `json:"target_type"`
	Stance        string  `json:"stance"`
	Justification *string `json:"justification"`
}

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func toArticleResponse(a model.Article) ArticleResponse {
	res := ArticleResponse{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		ArticleURL: a.ArticleURL,
		Blogger: BloggerResponse{
			Name:       a.Blogger.Name,
			ProfileURL: a.Blogger.ProfileURL,
		},
		Categories:        make([]CategoryResponse, 0, len(a.Categories)),
		StancePredictions: make([]StancePredictionResponse, 0, len(a.Predictions)),
	}

	if a.PublishedDate != nil {
		published := a.PublishedDate.Format(time.RFC3339)
		res.PublishedDate = &published
	}

	for _, c := range a.Categories {
		res.Categories = append(res.Categories, CategoryResponse{Name: c.Name})
	}

	for _, p := range a.Predictions {
		res.StancePredictions = append(res.StancePredictions, StancePredictionResponse{
			Target:        p.Target,
			TargetType:    p.TargetType,
			Stance:        p.Stance,
			Justification: p.Justification,
		})
	}

	return res
}
