package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	zero "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quenby/blogctl/internal/api"
	"github.com/quenby/blogctl/internal/cache"
	"github.com/quenby/blogctl/internal/compile"
	"github.com/quenby/blogctl/internal/config"
	"github.com/quenby/blogctl/internal/domain"
	"github.com/quenby/blogctl/internal/preview"
	"github.com/quenby/blogctl/internal/session"
	"github.com/quenby/blogctl/internal/view"
)

func main() {
	zero.Logger = zero.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		zero.Fatal().Err(err).Msg("configuration error")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	client := api.New(cfg.URL(), &http.Client{Timeout: cfg.Timeout}, zero.Logger)
	sessions := session.NewStore()
	if s, ok := loadSession(); ok {
		sessions.Set(s)
	}

	rules := compile.DefaultRules()
	opts := compile.Options{MediaBase: cfg.URL(), Highlight: true}

	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Terminal client for the blog platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var listAll bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := view.NewList(client, sessions, zero.Logger)
			defer ctrl.Close()
			ctrl.LoadArticles(cmd.Context())

			articles := ctrl.LandingArticles()
			if listAll {
				articles = ctrl.Articles().Data
			}
			if len(articles) == 0 {
				fmt.Println("No blogs available.")
				return nil
			}
			printArticles(articles)
			return nil
		},
	}
	list.Flags().BoolVar(&listAll, "all", false, "show every article, not just the landing list")

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List article categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := view.NewList(client, sessions, zero.Logger)
			defer ctrl.Close()
			ctrl.LoadCategories(cmd.Context())

			state := ctrl.Categories()
			if len(state.Data) == 0 {
				fmt.Println("No categories available.")
				return nil
			}
			for _, c := range state.Data {
				fmt.Println(c)
			}
			return nil
		},
	}

	category := &cobra.Command{
		Use:   "category <name>",
		Short: "List articles in one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := view.NewList(client, sessions, zero.Logger)
			defer ctrl.Close()
			ctrl.LoadCategory(cmd.Context(), args[0])

			state := ctrl.Articles()
			if len(state.Data) == 0 {
				fmt.Println("No blogs available.")
				return nil
			}
			printArticles(state.Data)
			return nil
		},
	}

	var readCached, readServe, readChanges bool
	read := &cobra.Command{
		Use:   "read <slug>",
		Short: "Display one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			ctx := cmd.Context()

			if readCached {
				return readFromCache(ctx, cfg, slug, rules, opts)
			}

			ctrl := view.NewDetail(client, sessions, opts, zero.Logger)
			defer ctrl.Close()
			ctrl.Load(ctx, slug)

			state := ctrl.Article()
			if state.Status == view.StatusFailed {
				return errors.New(state.Message)
			}
			article := state.Data

			if readChanges {
				reportChanges(ctx, cfg, article)
			}
			cacheArticle(ctx, cfg, article)

			body := ctrl.Body()
			if readServe {
				if body.Status != view.BodyReady {
					return errors.New("cannot serve: " + body.Message)
				}
				return servePreview(ctx, cfg, article, body.Doc, rules)
			}

			printMetadata(article)
			switch body.Status {
			case view.BodyReady:
				fmt.Println(compile.RenderText(body.Doc, rules))
			case view.BodyFailed:
				fmt.Println(body.Message)
			default:
				fmt.Println("Loading content...")
			}
			return nil
		},
	}
	read.Flags().BoolVar(&readCached, "cached", false, "read the locally cached copy instead of fetching")
	read.Flags().BoolVar(&readServe, "serve", false, "serve the rendered article on the preview address")
	read.Flags().BoolVar(&readChanges, "changes", false, "report how the article changed since it was last cached")

	login := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate against the platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("Password: ")
			password, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}

			s, err := client.Login(cmd.Context(), args[0], strings.TrimRight(password, "\r\n"))
			if err != nil {
				return err
			}
			sessions.Set(s)
			if err := saveSession(s); err != nil {
				zero.Warn().Err(err).Msg("session not persisted; it lasts until this command exits")
			}
			fmt.Printf("Logged in as %s (%s).\n", args[0], s.Role)
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions.Clear()
			return clearSession()
		},
	}

	create := newCreateCommand(client, sessions)

	var deleteYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			ctx := cmd.Context()

			ctrl := view.NewDetail(client, sessions, opts, zero.Logger)
			defer ctrl.Close()
			ctrl.Load(ctx, slug)
			if state := ctrl.Article(); state.Status == view.StatusFailed {
				return errors.New(state.Message)
			}

			confirm := func() bool { return deleteYes || confirmPrompt(slug) }
			if !ctrl.Delete(ctx, confirm) {
				if msg := ctrl.DeleteError(); msg != "" {
					return errors.New(msg)
				}
				return errors.New("canceled")
			}

			dropFromCache(ctx, cfg, slug)
			fmt.Printf("Deleted %s.\n", slug)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	root.AddCommand(list, categories, category, read, login, logout, create, deleteCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		zero.Error().Err(err).Send()
		os.Exit(1)
	}
}

func newCreateCommand(client *api.Client, sessions *session.Store) *cobra.Command {
	var title, description, category, slug string
	cmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Create an article from a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, ok := sessions.Current()
			if !ok || !sess.IsAdmin() {
				return errors.New(view.ErrMustLogIn)
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			article := domain.Article{
				Slug:        slug,
				Title:       title,
				Description: description,
				Category:    category,
				Content:     string(content),
			}
			created, ok := client.CreateArticle(cmd.Context(), article, sess.Token)
			if !ok {
				return errors.New("failed to create article")
			}
			fmt.Printf("Created %s.\n", created.Slug)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "article title")
	cmd.Flags().StringVar(&description, "description", "", "article description")
	cmd.Flags().StringVar(&category, "category", "", "article category")
	cmd.Flags().StringVar(&slug, "slug", "", "article slug (server generates one if empty)")
	cobra.CheckErr(cmd.MarkFlagRequired("title"))
	return cmd
}

func printArticles(articles []domain.Article) {
	for _, a := range articles {
		fmt.Printf("%-24s  %-40s  %-16s  %s\n",
			a.Slug, a.DisplayTitle(), a.DisplayCategory(), a.DisplayPublished())
	}
}

func printMetadata(a domain.Article) {
	fmt.Println(a.DisplayTitle())
	fmt.Println("Published on:", a.DisplayPublished())
	fmt.Println("Category:", a.DisplayCategory())
	fmt.Println("Description:", a.DisplayDescription())
	fmt.Println()
}

func confirmPrompt(slug string) bool {
	fmt.Printf("Delete %s? [y/N] ", slug)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func readFromCache(ctx context.Context, cfg config.Configuration, slug string, rules compile.Rules, opts compile.Options) error {
	if cfg.CachePath == "" {
		return errors.New("cache disabled; set cache_path")
	}
	c, err := cache.Open(cfg.CachePath, cfg.MigrationsDir)
	if err != nil {
		return err
	}
	defer c.Close()

	article, err := c.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return fmt.Errorf("%s is not cached", slug)
		}
		return err
	}

	printMetadata(article)
	doc, err := compile.Compile(ctx, []byte(article.Content), opts)
	if err != nil {
		fmt.Println("failed to load content")
		return nil
	}
	fmt.Println(compile.RenderText(doc, rules))
	return nil
}

// cacheArticle stores a freshly fetched article for offline reads. Cache
// trouble never fails the command that triggered it.
func cacheArticle(ctx context.Context, cfg config.Configuration, article domain.Article) {
	if cfg.CachePath == "" {
		return
	}
	c, err := cache.Open(cfg.CachePath, cfg.MigrationsDir)
	if err != nil {
		zero.Warn().Err(err).Msg("cache unavailable")
		return
	}
	defer c.Close()
	if err := c.Put(ctx, article); err != nil {
		zero.Warn().Err(err).Str("slug", article.Slug).Msg("failed to cache article")
	}
}

func dropFromCache(ctx context.Context, cfg config.Configuration, slug string) {
	if cfg.CachePath == "" {
		return
	}
	c, err := cache.Open(cfg.CachePath, cfg.MigrationsDir)
	if err != nil {
		return
	}
	defer c.Close()
	c.Delete(ctx, slug)
}

func reportChanges(ctx context.Context, cfg config.Configuration, article domain.Article) {
	if cfg.CachePath == "" {
		return
	}
	c, err := cache.Open(cfg.CachePath, cfg.MigrationsDir)
	if err != nil {
		return
	}
	defer c.Close()

	patch, err := c.ChangesSince(ctx, article.Slug, article.Content)
	switch {
	case errors.Is(err, cache.ErrNotFound):
		fmt.Println("No cached copy to compare against.")
	case err != nil:
		zero.Warn().Err(err).Msg("change report failed")
	case patch == "":
		fmt.Println("Unchanged since last read.")
	default:
		fmt.Println("Changed since last read:")
		fmt.Println(patch)
	}
}

func servePreview(ctx context.Context, cfg config.Configuration, article domain.Article, doc *compile.Document, rules compile.Rules) error {
	server := preview.New(article, doc, rules)
	err := server.Serve(ctx, cfg.PreviewAddr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// The session is stored next to the config so separate blogctl invocations
// share a login, the CLI's stand-in for a browser session.
func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "blogctl", "session.json"), nil
}

func loadSession() (domain.Session, bool) {
	path, err := sessionPath()
	if err != nil {
		return domain.Session{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Session{}, false
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil || s.Token == "" {
		return domain.Session{}, false
	}
	return s, true
}

func saveSession(s domain.Session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func clearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
