package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stancewatch/internal/model"
	"stancewatch/pkg/stanceapi"
)

// FetchLimit is the fixed page size requested on every load.
const FetchLimit = 100

type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

type Notification struct {
	Title       string
	Description string
	Status      string
	Duration    time.Duration
	Closable    bool
}

func fetchErrorNotification() *Notification {
	return &Notification{
		Title:       "Error fetching articles",
		Description: "Please try again later",
		Status:      "error",
		Duration:    5 * time.Second,
		Closable:    true,
	}
}

// Session holds the article list for one page mount. It starts out loading
// and moves to success or error exactly once.
type Session struct {
	once         sync.Once
	mu           sync.RWMutex
	state        State
	articles     []model.Article
	notification *Notification
}

func NewSession() *Session {
	return &Session{state: StateLoading}
}

// Load fetches the articles. Only the first call does any work; a failed fetch
// leaves the session with an empty article list and a notification.
func (s *Session) Load(ctx context.Context, source stanceapi.ArticleSource) {
	s.once.Do(func() {
		limit := FetchLimit
		articles, err := source.GetArticles(ctx, stanceapi.GetArticlesParams{Limit: &limit})

		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			slog.Error("error fetching articles", "error", err)
			s.articles = []model.Article{}
			s.notification = fetchErrorNotification()
			s.state = StateError
			return
		}

		s.articles = articles
		s.state = StateSuccess
	})
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Articles() []model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.articles
}

func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == StateLoading {
		return View{Heading: PageHeading, Loading: true}
	}
	return BuildView(s.articles, s.notification)
}
