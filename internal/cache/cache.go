// Package cache keeps copies of fetched articles in a local sqlite file so
// they can be reread offline and compared against fresh fetches. It never
// stands in for the network on the live path: a cache hit is only served
// when the caller explicitly asks for the cached copy.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-migrate/migrate"
	migratesqlite "github.com/golang-migrate/migrate/database/sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/quenby/blogctl/internal/domain"

	_ "github.com/golang-migrate/migrate/source/file"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("not found")
)

type Cache struct {
	db  *sql.DB
	dmp *diffmatchpatch.DiffMatchPatch
}

// Open opens the cache database and applies any pending schema migrations
// from the given folder.
func Open(path, migrationsDir string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to open cache database")
		return nil, err
	}

	if err := setup(db, migrationsDir); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db:  db,
		dmp: diffmatchpatch.New(),
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// setup applies the cache schema migrations, tolerating an already
// up-to-date database.
func setup(db *sql.DB, folder string) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		log.Error().Err(err).Msg("failed to create sqlite3 migration driver")
		return err
	}

	mig, err := migrate.NewWithDatabaseInstance("file://"+folder, "sqlite3", driver)
	if err != nil {
		log.Error().Err(err).Msg("failed to create Migrate object")
		return err
	}

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error().Err(err).Msg("failed to run cache migrations")
		return err
	}
	return nil
}

// handleError hides the sql layer from callers so they only branch on the
// package's sentinel errors.
func (c *Cache) handleError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	default:
		log.Error().Err(err).Msg("cache error")
		return err
	}
}

// Put stores or replaces the cached copy of an article, keyed by slug.
func (c *Cache) Put(ctx context.Context, article domain.Article) error {
	var published sql.NullString
	if article.Published != nil {
		published = sql.NullString{String: article.Published.Format(time.RFC3339Nano), Valid: true}
	}

	_, err := c.db.ExecContext(ctx, `INSERT INTO articles(
			slug,
			server_id,
			title,
			description,
			category,
			published,
			content,
			fetched_at
		) VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(slug) DO UPDATE SET
			server_id = excluded.server_id,
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			published = excluded.published,
			content = excluded.content,
			fetched_at = excluded.fetched_at`,
		article.Slug, article.ID, article.Title, article.Description,
		article.Category, published, article.Content,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return c.handleError(err)
	}
	return nil
}

// Get returns the cached copy of the article with the given slug, or
// ErrNotFound.
func (c *Cache) Get(ctx context.Context, slug string) (domain.Article, error) {
	row := c.db.QueryRowContext(ctx, `SELECT
			slug, server_id, title, description, category, published, content
		FROM articles WHERE slug = ?`, slug)
	return c.scanArticle(row)
}

// List returns every cached article, most recently fetched first.
func (c *Cache) List(ctx context.Context) ([]domain.Article, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT
			slug, server_id, title, description, category, published, content
		FROM articles ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, c.handleError(err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := c.scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, c.handleError(err)
	}
	return articles, nil
}

// Delete drops the cached copy. Deleting a slug that was never cached is
// not an error.
func (c *Cache) Delete(ctx context.Context, slug string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM articles WHERE slug = ?`, slug)
	if err != nil {
		return c.handleError(err)
	}
	return nil
}

// ChangesSince returns a patch describing how freshContent differs from the
// cached body of the article, in diffmatchpatch patch text. An empty string
// means the body is unchanged. ErrNotFound when the slug was never cached.
func (c *Cache) ChangesSince(ctx context.Context, slug, freshContent string) (string, error) {
	cached, err := c.Get(ctx, slug)
	if err != nil {
		return "", err
	}
	if cached.Content == freshContent {
		return "", nil
	}
	diffs := c.dmp.DiffMain(cached.Content, freshContent, false)
	return c.dmp.PatchToText(c.dmp.PatchMake(cached.Content, diffs)), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (c *Cache) scanArticle(row scanner) (domain.Article, error) {
	var a domain.Article
	var published sql.NullString
	err := row.Scan(&a.Slug, &a.ID, &a.Title, &a.Description, &a.Category, &published, &a.Content)
	if err != nil {
		return domain.Article{}, c.handleError(err)
	}
	if published.Valid {
		if t, err := time.Parse(time.RFC3339Nano, published.String); err == nil {
			a.Published = &t
		}
	}
	return a, nil
}
