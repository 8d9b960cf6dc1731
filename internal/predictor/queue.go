package predictor

import (
	"context"
	"fmt"

	"stancewatch/db"
	"stancewatch/internal/config"
)

// Enqueue pushes one job per article for the given target.
func Enqueue(ctx context.Context, queueKey string, articleIDs []int64, target, targetType string) (int, error) {
	var pushed int
	for _, id := range articleIDs {
		job, err := NewJob(id, target, targetType)
		if err != nil {
			return pushed, err
		}
		if err := push(ctx, queueKey, job); err != nil {
			return pushed, err
		}
		pushed++
	}
	return pushed, nil
}

// EnqueueArticle pushes one job for every configured target.
func EnqueueArticle(ctx context.Context, queueKey string, articleID int64, targets []config.Target) error {
	for _, t := range targets {
		job, err := NewJob(articleID, t.Name, t.Type)
		if err != nil {
			return err
		}
		if err := push(ctx, queueKey, job); err != nil {
			return err
		}
	}
	return nil
}

func push(ctx context.Context, queueKey string, job Job) error {
	data, err := job.Encode()
	if err != nil {
		return err
	}
	if err := db.PushToQueue(ctx, queueKey, data); err != nil {
		return fmt.Errorf("push job for article %d: %w", job.ArticleID, err)
	}
	return nil
}
