// Package api is the client for the blog platform's REST API.
//
// The read operations degrade gracefully: any transport error or non-2xx
// response collapses to an empty or absent result at the exported call site,
// after logging a diagnostic, so that list and detail screens can render
// their "no data" states uniformly. Login is the exception and returns a
// real error, because its caller has to tell wrong credentials apart from an
// unreachable server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/quenby/blogctl/internal/domain"
	"github.com/rs/zerolog"
)

type Client struct {
	base   *url.URL
	client *http.Client
	log    zerolog.Logger
}

func New(base *url.URL, client *http.Client, log zerolog.Logger) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		base:   base,
		client: client,
		log:    log,
	}
}

// ListArticles fetches every article on the platform, in server order. On
// any failure it returns an empty slice.
func (c *Client) ListArticles(ctx context.Context) []domain.Article {
	var articles []domain.Article
	if err := c.getJSON(ctx, c.base.JoinPath("blogs"), &articles); err != nil {
		c.log.Error().Err(err).Msg("failed to fetch articles")
		return []domain.Article{}
	}
	return articles
}

// GetArticleBySlug fetches a single article. The second return is false when
// the article does not exist or the request failed.
func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (domain.Article, bool) {
	var article domain.Article
	if err := c.getJSON(ctx, c.base.JoinPath("blogs", "slug", slug), &article); err != nil {
		c.log.Error().Err(err).Str("slug", slug).Msg("failed to fetch article")
		return domain.Article{}, false
	}
	return article, true
}

// ListCategories fetches the distinct article categories. Empty on failure.
func (c *Client) ListCategories(ctx context.Context) []string {
	var categories []string
	if err := c.getJSON(ctx, c.base.JoinPath("blogs", "categories"), &categories); err != nil {
		c.log.Error().Err(err).Msg("failed to fetch categories")
		return []string{}
	}
	return categories
}

// ListByCategory fetches the articles in one category. Empty on failure.
func (c *Client) ListByCategory(ctx context.Context, category string) []domain.Article {
	var articles []domain.Article
	if err := c.getJSON(ctx, c.base.JoinPath("blogs", "category", category), &articles); err != nil {
		c.log.Error().Err(err).Str("category", category).Msg("failed to fetch articles by category")
		return []domain.Article{}
	}
	return articles
}

// CreateArticle posts a new article with the given bearer token. The second
// return is false on any failure; the server's error body is logged so the
// caller only has to surface "it failed".
func (c *Client) CreateArticle(ctx context.Context, article domain.Article, token string) (domain.Article, bool) {
	if token == "" {
		c.log.Error().Msg("create article called without a token")
		return domain.Article{}, false
	}

	body, err := json.Marshal(article)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to encode article")
		return domain.Article{}, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath("blogs").String(), bytes.NewReader(body))
	if err != nil {
		c.log.Error().Err(err).Msg("failed to build create request")
		return domain.Article{}, false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("create request failed")
		return domain.Article{}, false
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		content, _ := io.ReadAll(res.Body)
		c.log.Error().Str("status", res.Status).Bytes("response", content).Msg("create rejected")
		return domain.Article{}, false
	}

	var created domain.Article
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		c.log.Error().Err(err).Msg("failed to decode created article")
		return domain.Article{}, false
	}
	return created, true
}

// DeleteArticle deletes the article with the given slug. It returns true
// only on a confirmed 2xx response. Deleting an already deleted slug fails
// the same way an unauthorized delete does; the caller cannot tell them
// apart and is not meant to.
func (c *Client) DeleteArticle(ctx context.Context, slug, token string) bool {
	if token == "" {
		c.log.Error().Str("slug", slug).Msg("delete called without a token")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base.JoinPath("blogs", "slug", slug).String(), nil)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to build delete request")
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("slug", slug).Msg("delete request failed")
		return false
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		content, _ := io.ReadAll(res.Body)
		c.log.Error().Str("status", res.Status).Str("slug", slug).Bytes("response", content).Msg("delete rejected")
		return false
	}
	return true
}

// Login authenticates against the platform. Unlike the read operations it
// propagates failure: the returned error message carries the HTTP status
// and, when the error body parses, the server's message.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return domain.Session{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath("auth", "login").String(), bytes.NewReader(body))
	if err != nil {
		return domain.Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.Session{}, loginError(res)
	}

	var session domain.Session
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return domain.Session{}, fmt.Errorf("login failed: decoding session: %w", err)
	}
	return session, nil
}

// loginError composes a human-readable message from the response status and
// the server's error body, falling back when the body is not the expected
// {"message": ...} shape.
func loginError(res *http.Response) error {
	detail := "no details provided"
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil && payload.Message != "" {
		detail = payload.Message
	}
	return fmt.Errorf("login failed: %d - %s", res.StatusCode, detail)
}

// getJSON performs a GET and decodes the 2xx response body into out. The
// exported reads collapse the returned error into their empty result; this
// is where the real failure reason still exists.
func (c *Client) getJSON(ctx context.Context, u *url.URL, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		content, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%d %s: %s", res.StatusCode, res.Status, content)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
