package model

import (
	"strings"
	"time"
)

const (
	StancePositive = "positive"
	StanceNegative = "negative"
	StanceNeutral  = "neutral"

	TargetTypeClub    = "club"
	TargetTypeReferee = "referee"

	// RefereeTarget is the fixed target used for referee predictions.
	RefereeTarget = "διαιτησία"
)

type Blogger struct {
	ID         int64
	Name       string
	ProfileURL string
}

type Category struct {
	ID   int64
	Name string
}

type StancePrediction struct {
	ID            int64
	ArticleID     int64
	Target        string
	TargetType    string
	Stance        string
	Justification *string
	CreatedAt     time.Time
}

type Article struct {
	ID            int64
	Title         string
	Content       string
	ArticleURL    string
	PublishedDate *time.Time
	Blogger       Blogger
	Categories    []Category
	Predictions   []StancePrediction
}

// ArticleFilter narrows an article listing to those with a matching prediction.
type ArticleFilter struct {
	Skip       int
	Limit      int
	Target     string
	TargetType string
	Stance     string
}

type ProcessingError struct {
	ID           int64
	ArticleID    int64
	ErrorMessage string
	ErrorType    string
	CreatedAt    time.Time
}

// PredictionCount is one row of the per-target prediction tally kept in storage.
type PredictionCount struct {
	Target     string
	TargetType string
	Count      int
}

// NormalizeStance lower-cases a stance and reports whether it is one of the
// recognized values.
func NormalizeStance(stance string) (string, bool) {
	s := strings.ToLower(stance)
	switch s {
	case StancePositive, StanceNegative, StanceNeutral:
		return s, true
	}
	return s, false
}

func ValidTargetType(targetType string) bool {
	return targetType == TargetTypeClub || targetType == TargetTypeReferee
}
