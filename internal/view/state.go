// Package view holds the per-screen controllers. Each controller is a small
// state machine that drives the content client and the compiler, owns its
// loaded data exclusively, and discards any asynchronous result that lands
// after the controller has been closed.
package view

import (
	"context"

	"github.com/quenby/blogctl/internal/domain"
)

// Status is the phase of one load machine. Exactly one status is active at
// a time.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusLoaded:  "loaded",
	StatusFailed:  "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// State is one machine's snapshot: Data is meaningful only when Loaded,
// Message only when Failed.
type State[T any] struct {
	Status  Status
	Data    T
	Message string
}

func loaded[T any](data T) State[T] {
	return State[T]{Status: StatusLoaded, Data: data}
}

func failed[T any](message string) State[T] {
	return State[T]{Status: StatusFailed, Message: message}
}

//go:generate mockgen -source=state.go -destination=../mocks/view.go -package=mocks

// Fetcher is the slice of the content client the controllers drive. The
// read methods fail soft; DeleteArticle reports confirmation as a boolean.
type Fetcher interface {
	ListArticles(ctx context.Context) []domain.Article
	GetArticleBySlug(ctx context.Context, slug string) (domain.Article, bool)
	ListCategories(ctx context.Context) []string
	ListByCategory(ctx context.Context, category string) []domain.Article
	DeleteArticle(ctx context.Context, slug, token string) bool
}

// Sessions is the session store as the controllers see it: read-only, and
// consulted at call time so a logout between actions is always observed.
type Sessions interface {
	Current() (domain.Session, bool)
}

// ErrMustLogIn is the message surfaced when a mutation is attempted without
// an admin session. The check happens before any network call.
const ErrMustLogIn = "must be logged in"
