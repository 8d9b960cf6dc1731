package predictor

import (
	"context"
	"errors"
	"testing"
	"time"

	"stancewatch/db"
	"stancewatch/internal/config"
	"stancewatch/internal/model"
	"stancewatch/pkg/llm"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

type fakeArticles struct {
	articles map[int64]*model.Article
	errors   map[int64]int
	saved    []string
}

func newFakeArticles(articles ...*model.Article) *fakeArticles {
	f := &fakeArticles{articles: map[int64]*model.Article{}, errors: map[int64]int{}}
	for _, a := range articles {
		f.articles[a.ID] = a
	}
	return f
}

func (f *fakeArticles) GetArticleByID(ctx context.Context, id int64) (*model.Article, error) {
	return f.articles[id], nil
}

func (f *fakeArticles) GetErrorCount(ctx context.Context, id int64) (int, error) {
	return f.errors[id], nil
}

func (f *fakeArticles) SaveError(ctx context.Context, articleID int64, errMsg string, errType string) error {
	f.errors[articleID]++
	f.saved = append(f.saved, errType)
	return nil
}

type fakePredictions struct {
	saved []model.StancePrediction
}

func (f *fakePredictions) SavePrediction(ctx context.Context, p *model.StancePrediction) error {
	p.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, *p)
	return nil
}

type fakeClassifier struct {
	result *llm.StanceResult
	err    error
	inputs []llm.StanceInput
}

func (f *fakeClassifier) Classify(ctx context.Context, input llm.StanceInput) (*llm.StanceResult, error) {
	f.inputs = append(f.inputs, input)
	return f.result, f.err
}

func newTestWorker(articles *fakeArticles, predictions *fakePredictions, classifier llm.StanceClassifier) *Worker {
	w := NewWorker(articles, predictions, classifier)
	w.retryDelay = 0
	w.popTimeout = time.Second
	return w
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	require.NoError(t, db.ConnectRedis(context.Background(), "redis://"+mr.Addr()))
	t.Cleanup(db.CloseRedis)

	return mr
}

func TestProcess_SavesPrediction(t *testing.T) {
	articles := newFakeArticles(&model.Article{ID: 1, Title: "t", Content: "Η ομάδα κέρδισε."})
	predictions := &fakePredictions{}
	classifier := &fakeClassifier{result: &llm.StanceResult{Stance: "positive", Justification: "Καλή εμφάνιση"}}

	w := newTestWorker(articles, predictions, classifier)
	p, err := w.Process(context.Background(), Job{ArticleID: 1, Target: "ΠΑΟΚ", TargetType: "club"})

	require.NoError(t, err)
	require.Equal(t, "positive", p.Stance)
	require.Equal(t, "Καλή εμφάνιση", *p.Justification)
	require.Len(t, predictions.saved, 1)
	require.Equal(t, "ΠΑΟΚ", predictions.saved[0].Target)
	require.Equal(t, llm.StanceInput{Text: "Η ομάδα κέρδισε.", Target: "ΠΑΟΚ", TargetType: "club"}, classifier.inputs[0])
}

func TestProcess_EmptyJustificationIsNull(t *testing.T) {
	articles := newFakeArticles(&model.Article{ID: 1, Title: "Μόνο τίτλος"})
	predictions := &fakePredictions{}
	classifier := &fakeClassifier{result: &llm.StanceResult{Stance: "neutral"}}

	w := newTestWorker(articles, predictions, classifier)
	p, err := w.Process(context.Background(), Job{ArticleID: 1, Target: model.RefereeTarget, TargetType: "referee"})

	require.NoError(t, err)
	require.Nil(t, p.Justification)
	require.Equal(t, "Μόνο τίτλος", classifier.inputs[0].Text)
}

func TestProcess_ClassifyErrorRecorded(t *testing.T) {
	articles := newFakeArticles(&model.Article{ID: 1, Content: "x"})
	predictions := &fakePredictions{}
	classifier := &fakeClassifier{err: llm.ErrEmptyResponse}

	w := newTestWorker(articles, predictions, classifier)
	_, err := w.Process(context.Background(), Job{ArticleID: 1, Target: "AEK", TargetType: "club"})

	require.ErrorIs(t, err, llm.ErrEmptyResponse)
	require.Equal(t, 1, articles.errors[1])
	require.Equal(t, []string{"llm_error"}, articles.saved)
	require.Empty(t, predictions.saved)
}

func TestProcess_RetriesExceeded(t *testing.T) {
	articles := newFakeArticles(&model.Article{ID: 1, Content: "x"})
	articles.errors[1] = DefaultMaxRetries
	classifier := &fakeClassifier{result: &llm.StanceResult{Stance: "positive"}}

	w := newTestWorker(articles, &fakePredictions{}, classifier)
	_, err := w.Process(context.Background(), Job{ArticleID: 1, Target: "AEK", TargetType: "club"})

	require.ErrorIs(t, err, ErrRetriesExceeded)
	require.Empty(t, classifier.inputs)
}

func TestProcess_ArticleNotFound(t *testing.T) {
	w := newTestWorker(newFakeArticles(), &fakePredictions{}, &fakeClassifier{})
	_, err := w.Process(context.Background(), Job{ArticleID: 9, Target: "AEK", TargetType: "club"})

	require.ErrorIs(t, err, ErrArticleNotFound)
}

func TestRun_DrainsQueue(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	articles := newFakeArticles(&model.Article{ID: 1, Content: "a"}, &model.Article{ID: 2, Content: "b"})
	predictions := &fakePredictions{}
	classifier := &fakeClassifier{result: &llm.StanceResult{Stance: "negative"}}

	pushed, err := Enqueue(ctx, db.PredictQueueKey, []int64{1, 2}, "Ολυμπιακός", "club")
	require.NoError(t, err)
	require.Equal(t, 2, pushed)
	require.NoError(t, db.PushToQueue(ctx, db.PredictQueueKey, "garbage"))

	w := newTestWorker(articles, predictions, classifier)
	require.NoError(t, w.Run(ctx, db.PredictQueueKey, true))

	require.Len(t, predictions.saved, 2)
	require.Equal(t, int64(1), predictions.saved[0].ArticleID)
	require.Equal(t, int64(2), predictions.saved[1].ArticleID)

	length, err := db.GetQueueLength(ctx, db.PredictQueueKey)
	require.NoError(t, err)
	require.Equal(t, int64(0), length)
}

func TestRun_FailedJobsEndInDeadLetter(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	articles := newFakeArticles(&model.Article{ID: 7, Content: "x"})
	classifier := &fakeClassifier{err: errors.New("rate limited")}

	require.NoError(t, EnqueueArticle(ctx, db.PredictQueueKey, 7, []config.Target{{Name: "ΑΕΚ", Type: "club"}}))

	w := newTestWorker(articles, &fakePredictions{}, classifier)
	require.NoError(t, w.Run(ctx, db.PredictQueueKey, true))

	require.Len(t, classifier.inputs, DefaultMaxRetries)
	require.Equal(t, DefaultMaxRetries, articles.errors[7])

	dead, err := db.GetQueueLength(ctx, db.DeadLetterKey)
	require.NoError(t, err)
	require.Equal(t, int64(1), dead)
}

func TestEnqueueArticle_AllTargets(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	targets := []config.Target{
		{Name: "Ολυμπιακός", Type: "club"},
		{Name: model.RefereeTarget, Type: "referee"},
	}
	require.NoError(t, EnqueueArticle(ctx, db.PredictQueueKey, 3, targets))

	first, err := db.PopFromQueue(ctx, db.PredictQueueKey, time.Second)
	require.NoError(t, err)
	job, err := DecodeJob(first)
	require.NoError(t, err)
	require.Equal(t, Job{ArticleID: 3, Target: "Ολυμπιακός", TargetType: "club"}, job)

	second, err := db.PopFromQueue(ctx, db.PredictQueueKey, time.Second)
	require.NoError(t, err)
	job, err = DecodeJob(second)
	require.NoError(t, err)
	require.Equal(t, model.RefereeTarget, job.Target)
}

func TestEnqueue_InvalidTarget(t *testing.T) {
	setupRedis(t)

	pushed, err := Enqueue(context.Background(), db.PredictQueueKey, []int64{1}, "", "club")

	require.ErrorIs(t, err, ErrMissingTarget)
	require.Equal(t, 0, pushed)
}
