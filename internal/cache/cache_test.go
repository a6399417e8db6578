package cache

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/quenby/blogctl/internal/domain"
)

var ctx = context.Background()

func testCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"), "../../migrations")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGetRoundtrip(t *testing.T) {
	c := testCache(t)
	published := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	article := domain.Article{
		ID:          "srv-1",
		Slug:        "hello",
		Title:       "Hello",
		Description: "greetings",
		Category:    "Tech",
		Published:   &published,
		Content:     "# Hi\n",
	}

	if err := c.Put(ctx, article); err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(ctx, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(article, got); diff != "" {
		t.Error(diff)
	}
}

func TestGetMissing(t *testing.T) {
	c := testCache(t)
	if _, err := c.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPutReplaces(t *testing.T) {
	c := testCache(t)
	if err := c.Put(ctx, domain.Article{Slug: "a", Title: "Old"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, domain.Article{Slug: "a", Title: "New"}); err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "New" {
		t.Errorf("expected the replacement, got %q", got.Title)
	}

	list, err := c.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("expected one cached article, got %d", len(list))
	}
}

func TestDelete(t *testing.T) {
	c := testCache(t)
	if err := c.Put(ctx, domain.Article{Slug: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a slug that was never cached is fine.
	if err := c.Delete(ctx, "ghost"); err != nil {
		t.Error(err)
	}
}

func TestChangesSince(t *testing.T) {
	c := testCache(t)
	if err := c.Put(ctx, domain.Article{Slug: "a", Content: "old body\n"}); err != nil {
		t.Fatal(err)
	}

	patch, err := c.ChangesSince(ctx, "a", "new body\n")
	if err != nil {
		t.Fatal(err)
	}
	if patch == "" {
		t.Fatal("expected a patch for a changed body")
	}
	if !strings.Contains(patch, "@@") {
		t.Errorf("not a patch text: %q", patch)
	}

	unchanged, err := c.ChangesSince(ctx, "a", "old body\n")
	if err != nil {
		t.Fatal(err)
	}
	if unchanged != "" {
		t.Errorf("expected no patch for identical bodies, got %q", unchanged)
	}

	if _, err := c.ChangesSince(ctx, "ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for an uncached slug, got %v", err)
	}
}
