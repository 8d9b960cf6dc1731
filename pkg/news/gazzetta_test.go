package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/assert/v2"
)

const bloggersPage = `<html><body><div class="bloggers">
<div class="list-article__blogger"><a href="/bloggers/nikos"><h3>Νίκος Παπαδόπουλος</h3></a></div>
<div class="list-article__blogger"><a href="/bloggers/maria"><h3>Μαρία Γεωργίου</h3></a></div>
</div></body></html>`

const nikosPage = `<html><body>
<article class="list-article-promo">
  <h2><a href="/article/1">Το ντέρμπι της χρονιάς</a></h2>
  <time>03/11/2024 - 18:30</time>
  <a class="is-category">Super League</a>
</article>
<article class="is-flex">
  <div class="list-article__info"><h3><a href="/article/2">Η διαιτησία στο επίκεντρο</a></h3></div>
  <time class="is-category-light">04/11/2024</time>
  <a class="is-category whubcategory">Ποδόσφαιρο</a>
  <a class="is-category whubteam">ΠΑΟΚ</a>
</article>
</body></html>`

const mariaPage = `<html><body>
<article class="is-flex">
  <div class="list-article__info"><h3><a href="/article/3">Χωρίς ημερομηνία</a></h3></div>
  <time class="is-category-light">χθες</time>
</article>
</body></html>`

const articlePage = `<html><body>
<div class="content__lead">  Η εισαγωγή.  </div>
<div class="content is-relative">
  <p>Πρώτη παράγραφος.</p>
  <p><span class="admanager-content">ad</span></p>
  <blockquote>Μια δήλωση.</blockquote>
  <p>   </p>
</div>
</body></html>`

type gazzettaSite struct {
	// repeatIndex serves the first index page for every page number.
	repeatIndex bool

	mu       sync.Mutex
	requests []string
	agents   []string
}

func (s *gazzettaSite) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.RequestURI())
	s.agents = append(s.agents, r.UserAgent())
	s.mu.Unlock()

	page := r.URL.Query().Get("page")
	switch {
	case r.URL.Path == "/bloggers" && (page == "0" || s.repeatIndex):
		w.Write([]byte(bloggersPage))
	case r.URL.Path == "/bloggers":
		w.Write([]byte(`<html><body><div class="bloggers"></div></body></html>`))
	case r.URL.Path == "/bloggers/nikos" && page == "0":
		w.Write([]byte(nikosPage))
	case r.URL.Path == "/bloggers/maria" && page == "0":
		w.Write([]byte(mariaPage))
	case r.URL.Path == "/bloggers/maria" && page == "1":
		// same cards again: pagination has run out
		w.Write([]byte(mariaPage))
	case r.URL.Path == "/article/2":
		w.WriteHeader(http.StatusNotFound)
	case strings.HasPrefix(r.URL.Path, "/article/"):
		w.Write([]byte(articlePage))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestGazzetta(t *testing.T, bloggers []string) (*GazzettaClient, *gazzettaSite) {
	t.Helper()
	return newTestGazzettaSite(t, &gazzettaSite{}, bloggers)
}

func newTestGazzettaSite(t *testing.T, site *gazzettaSite, bloggers []string) (*GazzettaClient, *gazzettaSite) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(site.handler))
	t.Cleanup(srv.Close)

	c := NewGazzettaClient(bloggers)
	c.baseURL = srv.URL
	c.httpClient = srv.Client()
	c.pageDelay = 0
	c.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return c, site
}

func TestGazzettaFetch(t *testing.T) {
	c, site := newTestGazzetta(t, nil)

	articles, err := c.Fetch(context.Background(), 0)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))

	a := articles[0]
	assert.Equal(t, "Το ντέρμπι της χρονιάς", a.Title)
	assert.Equal(t, c.baseURL+"/article/1", a.URL)
	assert.Equal(t, []string{"Super League"}, a.Categories)
	assert.Equal(t, "Νίκος Παπαδόπουλος", a.BloggerName)
	assert.Equal(t, c.baseURL+"/bloggers/nikos", a.BloggerURL)
	assert.Equal(t, "Η εισαγωγή.\n\nΠρώτη παράγραφος.\n\nΜια δήλωση.", a.Content)
	assert.Equal(t, true, a.PublishedAt.Equal(time.Date(2024, 11, 3, 18, 30, 0, 0, c.location)))

	b := articles[1]
	assert.Equal(t, "Η διαιτησία στο επίκεντρο", b.Title)
	assert.Equal(t, []string{"Ποδόσφαιρο", "ΠΑΟΚ"}, b.Categories)
	assert.Equal(t, "", b.Content)
	assert.Equal(t, true, b.PublishedAt.Equal(time.Date(2024, 11, 4, 0, 0, 0, 0, c.location)))

	m := articles[2]
	assert.Equal(t, "Μαρία Γεωργίου", m.BloggerName)
	assert.Equal(t, c.now(), m.PublishedAt)

	for _, agent := range site.agents {
		assert.Equal(t, gazzettaUserAgent, agent)
	}
}

func (s *gazzettaSite) indexRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, req := range s.requests {
		if strings.HasPrefix(req, "/bloggers?") {
			n++
		}
	}
	return n
}

func TestGazzettaFetch_RepeatedIndexPage(t *testing.T) {
	c, site := newTestGazzettaSite(t, &gazzettaSite{repeatIndex: true}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	articles, err := c.Fetch(ctx, 0)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
	assert.Equal(t, 2, site.indexRequests())
}

func TestGazzettaListBloggers(t *testing.T) {
	c, site := newTestGazzettaSite(t, &gazzettaSite{repeatIndex: true}, nil)

	bloggers, err := c.ListBloggers(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, []Blogger{
		{Name: "Νίκος Παπαδόπουλος", ProfileURL: c.baseURL + "/bloggers/nikos"},
		{Name: "Μαρία Γεωργίου", ProfileURL: c.baseURL + "/bloggers/maria"},
	}, bloggers)
	assert.Equal(t, 2, site.indexRequests())

	for _, req := range site.requests {
		assert.Equal(t, false, strings.HasPrefix(req, "/article/"))
	}
}

func TestGazzettaListBloggers_AllowList(t *testing.T) {
	c, _ := newTestGazzetta(t, []string{"Μαρία Γεωργίου"})

	bloggers, err := c.ListBloggers(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(bloggers))
	assert.Equal(t, "Μαρία Γεωργίου", bloggers[0].Name)
}

func TestGazzettaFetch_BloggerFilter(t *testing.T) {
	c, site := newTestGazzetta(t, []string{"Μαρία Γεωργίου"})

	articles, err := c.Fetch(context.Background(), 0)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Χωρίς ημερομηνία", articles[0].Title)

	for _, req := range site.requests {
		assert.Equal(t, false, strings.HasPrefix(req, "/bloggers/nikos"))
	}
}

func TestGazzettaFetch_Limit(t *testing.T) {
	c, _ := newTestGazzetta(t, nil)

	articles, err := c.Fetch(context.Background(), 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "Το ντέρμπι της χρονιάς", articles[0].Title)
	assert.Equal(t, "Χωρίς ημερομηνία", articles[1].Title)
}

func TestGazzettaFetch_Cancelled(t *testing.T) {
	c, _ := newTestGazzetta(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, 0)

	assert.NotEqual(t, nil, err)
}

func TestExtractContent_NoBody(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div class="content__lead">lead</div>`))
	assert.Equal(t, nil, err)
	assert.Equal(t, "", extractContent(doc))
}

func TestParseDate(t *testing.T) {
	c := NewGazzettaClient(nil)
	fallback := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fallback }

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "date and time", input: "03/11/2024 - 18:30", want: time.Date(2024, 11, 3, 18, 30, 0, 0, c.location)},
		{name: "date only", input: "03/11/2024", want: time.Date(2024, 11, 3, 0, 0, 0, 0, c.location)},
		{name: "padded", input: "  03/11/2024  ", want: time.Date(2024, 11, 3, 0, 0, 0, 0, c.location)},
		{name: "unparseable", input: "πριν 2 ώρες", want: fallback},
		{name: "empty", input: "", want: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, true, c.parseDate(tt.input).Equal(tt.want))
		})
	}
}
