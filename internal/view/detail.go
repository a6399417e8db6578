package view

import (
	"context"
	"sync"

	"github.com/quenby/blogctl/internal/compile"
	"github.com/quenby/blogctl/internal/domain"
	"github.com/rs/zerolog"
)

// BodyStatus is the phase of the compiled article body, tracked apart from
// the metadata so a broken body never hides a loaded title.
type BodyStatus int

const (
	BodyPending BodyStatus = iota
	BodyCompiling
	BodyReady
	BodyFailed
)

// BodyState carries the compiled document once ready, or the failure
// message when compilation broke.
type BodyState struct {
	Status  BodyStatus
	Doc     *compile.Document
	Message string
}

// DetailController drives the single-article screen. Metadata and body load
// independently: the metadata machine reaches Loaded as soon as the fetch
// resolves, while the body machine follows compilation.
type DetailController struct {
	mu     sync.Mutex
	closed bool

	fetcher  Fetcher
	sessions Sessions
	log      zerolog.Logger

	// compileFn exists so tests can interpose; it is compile.Compile
	// otherwise.
	compileFn func(context.Context, []byte, compile.Options) (*compile.Document, error)
	opts      compile.Options

	slug      string
	state     State[domain.Article]
	body      BodyState
	deleteErr string

	// onDeleted notifies the list screen so it can evict the slug without
	// refetching.
	onDeleted func(slug string)
}

func NewDetail(fetcher Fetcher, sessions Sessions, opts compile.Options, log zerolog.Logger) *DetailController {
	return &DetailController{
		fetcher:   fetcher,
		sessions:  sessions,
		log:       log,
		compileFn: compile.Compile,
		opts:      opts,
	}
}

// OnDeleted registers the cross-screen eviction callback fired after a
// confirmed delete.
func (c *DetailController) OnDeleted(fn func(slug string)) {
	c.mu.Lock()
	c.onDeleted = fn
	c.mu.Unlock()
}

// Close tears the controller down; late results are discarded.
func (c *DetailController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *DetailController) apply(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	fn()
	return true
}

func (c *DetailController) Article() State[domain.Article] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *DetailController) Body() BodyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

func (c *DetailController) DeleteError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteErr
}

// Load fetches the article and compiles its body. An absent slug fails the
// whole screen; a present article with broken markup keeps its metadata and
// fails only the body. Each Load owns a fresh compiled tree; the previous
// one is dropped when the new source arrives.
func (c *DetailController) Load(ctx context.Context, slug string) {
	ok := c.apply(func() {
		c.slug = slug
		c.state = State[domain.Article]{Status: StatusLoading}
		c.body = BodyState{Status: BodyPending}
	})
	if !ok {
		return
	}

	article, found := c.fetcher.GetArticleBySlug(ctx, slug)
	if !found {
		c.apply(func() { c.state = failed[domain.Article]("failed to load") })
		return
	}

	ok = c.apply(func() {
		c.state = loaded(article)
		c.body = BodyState{Status: BodyCompiling}
	})
	if !ok {
		return
	}

	doc, err := c.compileFn(ctx, []byte(article.Content), c.opts)
	c.apply(func() {
		if err != nil {
			c.log.Error().Err(err).Str("slug", slug).Msg("body compilation failed")
			c.body = BodyState{Status: BodyFailed, Message: "failed to load content"}
			return
		}
		c.body = BodyState{Status: BodyReady, Doc: doc}
	})
}

// Delete removes the displayed article. Nothing touches the network without
// explicit confirmation and an admin session. On success the eviction
// callback fires and the caller is expected to navigate away.
func (c *DetailController) Delete(ctx context.Context, confirm func() bool) bool {
	if confirm == nil || !confirm() {
		return false
	}

	sess, ok := c.sessions.Current()
	if !ok || !sess.IsAdmin() {
		c.apply(func() { c.deleteErr = ErrMustLogIn })
		return false
	}

	c.mu.Lock()
	closed := c.closed
	slug := c.slug
	onDeleted := c.onDeleted
	c.mu.Unlock()
	if closed {
		return false
	}

	deleted := c.fetcher.DeleteArticle(ctx, slug, sess.Token)
	applied := c.apply(func() {
		if !deleted {
			c.deleteErr = "failed to delete article; you may not have permission"
			return
		}
		c.deleteErr = ""
	})

	if deleted && applied && onDeleted != nil {
		onDeleted(slug)
	}
	return deleted && applied
}
