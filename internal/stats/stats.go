// Package stats tallies stance predictions per target.
package stats

import (
	"sort"

	"stancewatch/internal/model"
)

type StanceStats struct {
	Target   string `json:"target"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

func (s StanceStats) Total() int {
	return s.Positive + s.Negative + s.Neutral
}

// Calculate groups every prediction of every article by its target and counts
// the recognized stances. Targets appear in first-seen order. A prediction with
// an unrecognized stance still creates a zero-count entry for its target.
func Calculate(articles []model.Article) []StanceStats {
	index := make(map[string]int)
	var result []StanceStats

	for _, article := range articles {
		for _, prediction := range article.Predictions {
			i, ok := index[prediction.Target]
			if !ok {
				i = len(result)
				index[prediction.Target] = i
				result = append(result, StanceStats{Target: prediction.Target})
			}

			stance, _ := model.NormalizeStance(prediction.Stance)
			switch stance {
			case model.StancePositive:
				result[i].Positive++
			case model.StanceNegative:
				result[i].Negative++
			case model.StanceNeutral:
				result[i].Neutral++
			}
		}
	}

	return result
}

// TopTargets returns the n targets with the most mentions. The input is not
// modified; ties keep first-seen order.
func TopTargets(stats []StanceStats, n int) []StanceStats {
	sorted := make([]StanceStats, len(stats))
	copy(sorted, stats)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total() > sorted[j].Total()
	})

	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Recent returns the first n articles in fetch order.
func Recent(articles []model.Article, n int) []model.Article {
	if n < 0 {
		n = 0
	}
	if n > len(articles) {
		n = len(articles)
	}
	return articles[:n]
}
