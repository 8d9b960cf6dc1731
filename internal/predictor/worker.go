package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stancewatch/db"
	"stancewatch/internal/model"
	"stancewatch/pkg/llm"
)

const DefaultMaxRetries = 3

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrRetriesExceeded = errors.New("article exceeded max retries")
)

type ArticleStore interface {
	GetArticleByID(ctx context.Context, id int64) (*model.Article, error)
	GetErrorCount(ctx context.Context, id int64) (int, error)
	SaveError(ctx context.Context, articleID int64, errMsg string, errType string) error
}

type PredictionStore interface {
	SavePrediction(ctx context.Context, p *model.StancePrediction) error
}

type Worker struct {
	articles    ArticleStore
	predictions PredictionStore
	classifier  llm.StanceClassifier
	maxRetries  int
	retryDelay  time.Duration
	popTimeout  time.Duration
}

func NewWorker(articles ArticleStore, predictions PredictionStore, classifier llm.StanceClassifier) *Worker {
	return &Worker{
		articles:    articles,
		predictions: predictions,
		classifier:  classifier,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  5 * time.Second,
		popTimeout:  5 * time.Second,
	}
}

// Process classifies one article and stores the prediction. A failed
// classification is recorded against the article and returned.
func (w *Worker) Process(ctx context.Context, job Job) (*model.StancePrediction, error) {
	errorCount, err := w.articles.GetErrorCount(ctx, job.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("get error count: %w", err)
	}

	if errorCount >= w.maxRetries {
		return nil, ErrRetriesExceeded
	}

	article, err := w.articles.GetArticleByID(ctx, job.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	if article == nil {
		return nil, ErrArticleNotFound
	}

	text := article.Content
	if text == "" {
		text = article.Title
	}

	result, err := w.classifier.Classify(ctx, llm.StanceInput{
		Text:       text,
		Target:     job.Target,
		TargetType: job.TargetType,
	})
	if err != nil {
		if saveErr := w.articles.SaveError(ctx, job.ArticleID, err.Error(), "llm_error"); saveErr != nil {
			slog.Error("error saving processing error", "error", saveErr, "article_id", job.ArticleID)
		}
		return nil, fmt.Errorf("classify: %w", err)
	}

	prediction := &model.StancePrediction{
		ArticleID:  job.ArticleID,
		Target:     job.Target,
		TargetType: job.TargetType,
		Stance:     result.Stance,
	}
	if result.Justification != "" {
		prediction.Justification = &result.Justification
	}

	err = w.predictions.SavePrediction(ctx, prediction)
	if err != nil {
		return nil, fmt.Errorf("save prediction: %w", err)
	}

	return prediction, nil
}

// Run pops jobs until ctx is cancelled. With drain set it returns as soon as
// the queue is empty.
func (w *Worker) Run(ctx context.Context, queueKey string, drain bool) error {
	for {
		data, err := db.PopFromQueue(ctx, queueKey, w.popTimeout)
		if errors.Is(err, db.ErrQueueEmpty) {
			if drain {
				return nil
			}
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("pop from queue: %w", err)
		}

		job, err := DecodeJob(data)
		if err != nil {
			slog.Error("invalid job in queue", "data", data, "error", err)
			continue
		}

		prediction, err := w.Process(ctx, job)
		switch {
		case errors.Is(err, ErrRetriesExceeded):
			slog.Warn("article exceeded max retries, moving to dead letter queue", "article_id", job.ArticleID)
			if err := db.PushToQueue(ctx, db.DeadLetterKey, data); err != nil {
				slog.Error("error pushing to dead letter queue", "error", err, "article_id", job.ArticleID)
			}
		case errors.Is(err, ErrArticleNotFound):
			slog.Warn("article not found in DB", "article_id", job.ArticleID)
		case err != nil:
			slog.Error("error predicting stance", "error", err, "article_id", job.ArticleID, "target", job.Target)
			if err := db.PushToQueue(ctx, queueKey, data); err != nil {
				slog.Error("error requeueing job", "error", err, "article_id", job.ArticleID)
			}
			if err := w.sleep(ctx); err != nil {
				return nil
			}
		default:
			slog.Info("stance predicted", "article_id", job.ArticleID, "target", job.Target, "stance", prediction.Stance)
		}
	}
}

func (w *Worker) sleep(ctx context.Context) error {
	if w.retryDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.retryDelay):
		return nil
	}
}
