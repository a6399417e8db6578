package preview

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quenby/blogctl/internal/compile"
	"github.com/quenby/blogctl/internal/domain"
)

func testServer(t *testing.T, article domain.Article, source string) *httptest.Server {
	t.Helper()
	doc, err := compile.Compile(context.Background(), []byte(source), compile.Options{Highlight: true})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(article, doc, compile.DefaultRules()).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func fetch(t *testing.T, url string) string {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestRenderArticlePage(t *testing.T) {
	srv := testServer(t, domain.Article{
		Slug:        "hello",
		Title:       "Tags & Things",
		Description: "a post about tags",
		Category:    "Tech",
	}, "## Section\n\nSome `code` here.\n")

	page := fetch(t, srv.URL)
	for _, want := range []string{
		"<title>Tags &amp; Things</title>",
		"Category: Tech",
		"a post about tags",
		"<h2 class=\"subtitle\">Section</h2>",
		"<code class=\"inline-code\">code</code>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderArticleDefaults(t *testing.T) {
	srv := testServer(t, domain.Article{Slug: "bare"}, "hi\n")

	page := fetch(t, srv.URL)
	for _, want := range []string{
		domain.NoTitle,
		domain.NoDescription,
		domain.NoCategory,
		domain.NoDate,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing placeholder %q", want)
		}
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, domain.Article{Slug: "x"}, "hi\n")
	if got := fetch(t, srv.URL+"/healthz"); got != "ok" {
		t.Errorf("healthz returned %q", got)
	}
}
