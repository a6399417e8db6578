package view

import (
	"context"
	"sync"

	"github.com/quenby/blogctl/internal/domain"
	"github.com/rs/zerolog"
)

// LandingLimit caps how many articles the landing list shows.
const LandingLimit = 5

// ListController drives the article list screen. The article collection and
// the category index are two parallel machines of the same shape; loading
// one never disturbs the other.
type ListController struct {
	mu     sync.Mutex
	closed bool

	fetcher  Fetcher
	sessions Sessions
	log      zerolog.Logger

	articles   State[[]domain.Article]
	categories State[[]string]
	deleteErr  string
}

func NewList(fetcher Fetcher, sessions Sessions, log zerolog.Logger) *ListController {
	return &ListController{
		fetcher:  fetcher,
		sessions: sessions,
		log:      log,
	}
}

// Close tears the controller down. Results of calls still in flight are
// discarded; no state transition happens after Close.
func (c *ListController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// apply runs fn under the lock unless the controller has been closed. The
// return reports whether fn ran.
func (c *ListController) apply(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	fn()
	return true
}

func (c *ListController) Articles() State[[]domain.Article] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.articles
}

func (c *ListController) Categories() State[[]string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories
}

// DeleteError is the message from the last failed delete, cleared by the
// next successful one. It accompanies the Loaded article state rather than
// replacing it.
func (c *ListController) DeleteError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteErr
}

// LandingArticles returns the Loaded collection truncated for the landing
// list, in server order.
func (c *ListController) LandingArticles() []domain.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.articles.Status != StatusLoaded {
		return nil
	}
	articles := c.articles.Data
	if len(articles) > LandingLimit {
		articles = articles[:LandingLimit]
	}
	return articles
}

// LoadArticles fetches the full article collection. The read fails soft, so
// an unreachable server lands here as an empty Loaded collection.
func (c *ListController) LoadArticles(ctx context.Context) {
	if !c.apply(func() { c.articles = State[[]domain.Article]{Status: StatusLoading} }) {
		return
	}
	articles := c.fetcher.ListArticles(ctx)
	c.apply(func() { c.articles = loaded(articles) })
}

// LoadCategory replaces the article collection with one category's
// articles.
func (c *ListController) LoadCategory(ctx context.Context, category string) {
	if !c.apply(func() { c.articles = State[[]domain.Article]{Status: StatusLoading} }) {
		return
	}
	articles := c.fetcher.ListByCategory(ctx, category)
	c.apply(func() { c.articles = loaded(articles) })
}

// LoadCategories fetches the category index.
func (c *ListController) LoadCategories(ctx context.Context) {
	if !c.apply(func() { c.categories = State[[]string]{Status: StatusLoading} }) {
		return
	}
	categories := c.fetcher.ListCategories(ctx)
	c.apply(func() { c.categories = loaded(categories) })
}

// Delete removes the article with the given slug. Without an admin session
// it fails before touching the network. A confirmed delete filters the slug
// out of the Loaded collection; there is no refetch. A rejected
// delete leaves the collection alone and surfaces a message next to it.
func (c *ListController) Delete(ctx context.Context, slug string) bool {
	sess, ok := c.sessions.Current()
	if !ok || !sess.IsAdmin() {
		c.apply(func() { c.articles = failed[[]domain.Article](ErrMustLogIn) })
		return false
	}

	deleted := c.fetcher.DeleteArticle(ctx, slug, sess.Token)

	applied := c.apply(func() {
		if !deleted {
			c.deleteErr = "failed to delete article"
			return
		}
		c.deleteErr = ""
		c.evictLocked(slug)
	})
	return deleted && applied
}

// Evict drops the slug from the Loaded collection without refetching. It is
// the target of the detail screen's cross-screen eviction callback.
func (c *ListController) Evict(slug string) {
	c.apply(func() { c.evictLocked(slug) })
}

// evictLocked builds a fresh slice rather than filtering in place, so
// snapshots handed out before the eviction keep their contents.
func (c *ListController) evictLocked(slug string) {
	if c.articles.Status != StatusLoaded {
		return
	}
	kept := make([]domain.Article, 0, len(c.articles.Data))
	for _, a := range c.articles.Data {
		if a.Slug != slug {
			kept = append(kept, a)
		}
	}
	c.articles.Data = kept
}
