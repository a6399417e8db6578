// Package preview serves one compiled article as HTML on a local port, so a
// draft or a fetched post can be checked in a browser instead of the
// terminal.
package preview

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/quenby/blogctl/internal/compile"
	"github.com/quenby/blogctl/internal/domain"
)

type Server struct {
	article domain.Article
	doc     *compile.Document
	rules   compile.Rules
}

func New(article domain.Article, doc *compile.Document, rules compile.Rules) *Server {
	return &Server{
		article: article,
		doc:     doc,
		rules:   rules,
	}
}

func (s *Server) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", s.renderArticle)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return router
}

// Serve blocks until the context is canceled, then shuts the server down.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()
	log.Info().Str("addr", addr).Str("slug", s.article.Slug).Msg("preview server started")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) renderArticle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageHeader,
		html.EscapeString(s.article.DisplayTitle()),
		html.EscapeString(s.article.DisplayTitle()),
		html.EscapeString(s.article.DisplayPublished()),
		html.EscapeString(s.article.DisplayCategory()),
		html.EscapeString(s.article.DisplayDescription()),
	)
	fmt.Fprint(w, compile.RenderHTML(s.doc, s.rules))
	fmt.Fprint(w, pageFooter)
}

const pageHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 48rem; margin: 2rem auto; font-family: sans-serif; line-height: 1.6; }
.meta { color: #666; font-size: 0.9rem; }
pre.code { background: #1a1a2e; color: #eee; padding: 1rem; border-radius: 6px; overflow-x: auto; }
code.inline-code { color: #2a7a2a; font-family: monospace; }
blockquote.quote { border-left: 4px solid #8ab; padding-left: 1rem; font-style: italic; color: #555; }
a.link { color: #26c; }
pre.code .k { color: #c792ea; } pre.code .s { color: #a5d6a7; }
pre.code .c { color: #777; } pre.code .m { color: #f9a825; } pre.code .n { color: #82aaff; }
</style>
</head>
<body>
<h1>%s</h1>
<p class="meta">Published on: %s · Category: %s</p>
<p class="meta">%s</p>
<hr>
`

const pageFooter = `</body>
</html>
`
