package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/cache"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/config"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/controller"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/repositories/metadata"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/services"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/session"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/storage"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	tokens *session.TokenStore
	auth   services.AuthService
	feed   services.FeedService
	social services.SocialService
	files  services.FileService
	ctrl   *controller.FeedController

	reader *bufio.Reader
	out    io.Writer
	user   string
}

// NewApp opens the local database, restores the session and the feed cache,
// and wires the services. httpClient may be nil.
func NewApp(ctx context.Context, c *config.Config, httpClient *http.Client, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	tokens := session.NewTokenStore(db)
	if err := tokens.Load(ctx); err != nil {
		log.Warn(ctx, "stored session unreadable, starting logged out", "error", err)
	}

	repo := metadata.NewSQLiteRepository(db)
	feedCache := cache.NewFeedCache(repo, nil, log)
	if err := feedCache.Load(ctx); err != nil {
		log.Warn(ctx, "feed cache unreadable, starting empty", "error", err)
	}

	api := client.NewHTTPClient(c.BaseURL, httpClient, tokens, log)
	feed := services.NewFeedService(api, feedCache, tokens, log)

	a := &App{
		config: c,
		log:    log,
		db:     db,
		tokens: tokens,
		auth:   services.NewAuthService(api, tokens, feedCache, repo, log),
		feed:   feed,
		social: services.NewSocialService(api, repo, log),
		files:  services.NewFileService(api),
		ctrl:   controller.NewFeedController(feed, tokens, repo, log),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.ctrl.Subscribe(func(s controller.State) {
		a.log.Debug(context.Background(), "feed state", "tab", s.Tab, "posts", len(s.Posts), "loading", s.IsLoading, "refreshing", s.IsRefreshing)
	})
	return a, nil
}

// Run restores the feed screen, starts background revalidation and blocks in
// the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Nomad feed CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		if err := a.ctrl.Mount(ctx); err != nil {
			a.log.Warn(ctx, "initial feed load failed", "error", err)
		}
	}

	scheduler, err := a.StartRevalidation(ctx, a.config.RevalidateInterval)
	if err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			a.log.Warn(ctx, "scheduler shutdown", "error", err)
		}
	}()

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.tokens.Authenticated()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "(guest)"
	}
	tab := a.ctrl.State().Tab
	if a.user != "" {
		return fmt.Sprintf("(%s %s)", a.user, tab)
	}
	return fmt.Sprintf("(%s)", tab)
}
