package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/quenby/blogctl/internal/api"
	"github.com/quenby/blogctl/internal/domain"
	"github.com/quenby/blogctl/internal/mocks"
)

var ctx = context.Background()

func admin() domain.Session {
	return domain.Session{Token: "tok", Role: domain.RoleAdmin, Username: "bob"}
}

func someArticles() []domain.Article {
	return []domain.Article{
		{Slug: "a", Title: "First"},
		{Slug: "b", Title: "Second"},
		{Slug: "c", Title: "Third"},
	}
}

func TestLoadArticles(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)

	fetcher.EXPECT().ListArticles(gomock.Any()).Return(someArticles())

	c := NewList(fetcher, sessions, zerolog.Nop())
	defer c.Close()

	if got := c.Articles().Status; got != StatusIdle {
		t.Errorf("fresh controller should be idle, got %s", got)
	}

	c.LoadArticles(ctx)

	state := c.Articles()
	if state.Status != StatusLoaded {
		t.Fatalf("expected loaded, got %s", state.Status)
	}
	if diff := cmp.Diff(someArticles(), state.Data); diff != "" {
		t.Error(diff)
	}
}

func TestLoadCategoriesIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)

	fetcher.EXPECT().ListCategories(gomock.Any()).Return([]string{"Tech", "Databases"})

	c := NewList(fetcher, sessions, zerolog.Nop())
	defer c.Close()
	c.LoadCategories(ctx)

	if got := c.Categories().Status; got != StatusLoaded {
		t.Fatalf("expected loaded categories, got %s", got)
	}
	// The sibling machine is untouched.
	if got := c.Articles().Status; got != StatusIdle {
		t.Errorf("article machine should still be idle, got %s", got)
	}
}

// A delete without an admin session must not reach the network at all; the
// mock fetcher has no DeleteArticle expectation, so any call fails the test.
func TestDeleteRequiresAdmin(t *testing.T) {
	cases := []struct {
		name    string
		session domain.Session
		active  bool
	}{
		{"logged out", domain.Session{}, false},
		{"guest", domain.Session{Token: "tok", Role: domain.RoleGuest}, true},
		{"admin without token", domain.Session{Role: domain.RoleAdmin}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockFetcher(ctrl)
			sessions := mocks.NewMockSessions(ctrl)

			fetcher.EXPECT().ListArticles(gomock.Any()).Return(someArticles())
			sessions.EXPECT().Current().Return(tc.session, tc.active)

			c := NewList(fetcher, sessions, zerolog.Nop())
			defer c.Close()
			c.LoadArticles(ctx)

			if c.Delete(ctx, "a") {
				t.Error("delete should fail")
			}

			state := c.Articles()
			if state.Status != StatusFailed || state.Message != ErrMustLogIn {
				t.Errorf("expected Failed(%q), got %s %q", ErrMustLogIn, state.Status, state.Message)
			}
		})
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)

	fetcher.EXPECT().ListArticles(gomock.Any()).Return(someArticles())
	sessions.EXPECT().Current().Return(admin(), true)
	fetcher.EXPECT().DeleteArticle(gomock.Any(), "b", "tok").Return(true)

	c := NewList(fetcher, sessions, zerolog.Nop())
	defer c.Close()
	c.LoadArticles(ctx)

	if !c.Delete(ctx, "b") {
		t.Fatal("delete should succeed")
	}

	state := c.Articles()
	if state.Status != StatusLoaded {
		t.Fatalf("collection should stay loaded, got %s", state.Status)
	}
	expected := []domain.Article{
		{Slug: "a", Title: "First"},
		{Slug: "c", Title: "Third"},
	}
	if diff := cmp.Diff(expected, state.Data); diff != "" {
		t.Error(diff)
	}
	if msg := c.DeleteError(); msg != "" {
		t.Errorf("unexpected delete error %q", msg)
	}
}

// A snapshot handed out before a delete keeps its contents; the eviction
// must not rewrite the backing array an earlier State still aliases.
func TestDeletePreservesEarlierSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)

	fetcher.EXPECT().ListArticles(gomock.Any()).Return(someArticles())
	sessions.EXPECT().Current().Return(admin(), true)
	fetcher.EXPECT().DeleteArticle(gomock.Any(), "a", "tok").Return(true)

	c := NewList(fetcher, sessions, zerolog.Nop())
	defer c.Close()
	c.LoadArticles(ctx)

	before := c.Articles()
	landing := c.LandingArticles()

	if !c.Delete(ctx, "a") {
		t.Fatal("delete should succeed")
	}

	if diff := cmp.Diff(someArticles(), before.Data); diff != "" {
		t.Error("pre-delete snapshot changed:\n" + diff)
	}
	if diff := cmp.Diff(someArticles(), landing); diff != "" {
		t.Error("pre-delete landing list changed:\n" + diff)
	}
}

func TestDeleteFailureKeepsCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)

	fetcher.EXPECT().ListArticles(gomock.Any()).Return(someArticles())
	sessions.EXPECT().Current().Return(admin(), true)
	fetcher.EXPECT().DeleteArticle(gomock.Any(), "b", "tok").Return(false)

	c := NewList(fetcher, sessions, zerolog.Nop())
	defer c.Close()
	c.LoadArticles(ctx)

	if c.Delete(ctx, "b") {
		t.Fatal("delete should report failure")
	}

	state := c.Articles()
	if state.Status != StatusLoaded {
		t.Fatalf("collection should stay loaded, got %s", state.Status)
	}
	if diff := cmp.Diff(someArticles(), state.Data); diff != "" {
		t.Error("no article may be removed on a failed delete:\n" + diff)
	}
	if c.DeleteError() == "" {
		t.Error("a failed delete should surface a message")
	}
}

func TestEvictFromSibling(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)

	fetcher.EXPECT().ListArticles(gomock.Any()).Return(someArticles())

	c := NewList(fetcher, sessions, zerolog.Nop())
	defer c.Close()
	c.LoadArticles(ctx)

	c.Evict("a")

	var slugs []string
	for _, a := range c.Articles().Data {
		slugs = append(slugs, a.Slug)
	}
	if diff := cmp.Diff([]string{"b", "c"}, slugs); diff != "" {
		t.Error(diff)
	}
}

func TestLandingTruncation(t *testing.T) {
	articles := []domain.Article{
		{Slug: "1"}, {Slug: "2"}, {Slug: "3"}, {Slug: "4"}, {Slug: "5"}, {Slug: "6"}, {Slug: "7"},
	}

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)
	fetcher.EXPECT().ListArticles(gomock.Any()).Return(articles)

	c := NewList(fetcher, sessions, zerolog.Nop())
	defer c.Close()
	c.LoadArticles(ctx)

	landing := c.LandingArticles()
	if len(landing) != LandingLimit {
		t.Fatalf("expected %d articles, got %d", LandingLimit, len(landing))
	}
	if diff := cmp.Diff(articles[:LandingLimit], landing); diff != "" {
		t.Error("landing list must keep server order:\n" + diff)
	}
}

// A result resolving after Close must not transition any state.
func TestTeardownDiscardsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	sessions := mocks.NewMockSessions(ctrl)

	c := NewList(fetcher, sessions, zerolog.Nop())

	started := make(chan struct{})
	release := make(chan struct{})
	fetcher.EXPECT().ListArticles(gomock.Any()).DoAndReturn(func(context.Context) []domain.Article {
		close(started)
		<-release
		return someArticles()
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.LoadArticles(ctx)
	}()

	<-started
	c.Close()
	close(release)
	wg.Wait()

	if got := c.Articles().Status; got == StatusLoaded {
		t.Error("a result resolving after teardown must be discarded")
	}
}

// End-to-end through the real client: a server returning two articles lands
// as a Loaded state with exactly those two, in server order.
func TestListEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blogs" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"slug":"a","title":"A"},{"slug":"b","title":"B"}]`))
	}))
	defer server.Close()

	base, _ := url.Parse(server.URL)
	client := api.New(base, server.Client(), zerolog.Nop())

	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessions(ctrl)

	c := NewList(client, sessions, zerolog.Nop())
	defer c.Close()
	c.LoadArticles(ctx)

	state := c.Articles()
	if state.Status != StatusLoaded || len(state.Data) != 2 {
		t.Fatalf("expected 2 loaded articles, got %s with %d", state.Status, len(state.Data))
	}
	if state.Data[0].Slug != "a" || state.Data[1].Slug != "b" {
		t.Errorf("server order not preserved: %+v", state.Data)
	}
	if landing := c.LandingArticles(); len(landing) != 2 {
		t.Errorf("landing list should carry both articles, got %d", len(landing))
	}
}
