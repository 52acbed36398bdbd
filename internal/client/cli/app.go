package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/studybuddy/internal/client/client"
	"github.com/dmitrijs2005/studybuddy/internal/client/config"
	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/client/repositories/conversations"
	"github.com/dmitrijs2005/studybuddy/internal/client/services"
	"github.com/dmitrijs2005/studybuddy/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// App is the terminal client. It owns the session and every service built
// on top of it.
type App struct {
	config *config.Config
	log    logging.Logger

	db       *sql.DB
	client   client.Client
	registry *prometheus.Registry

	session  *services.SessionManager
	feed     *services.CandidateFeed
	engine   *services.SwipeEngine
	store    *services.ConversationStore
	resolver *services.ResourceResolver

	profile *models.Profile

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, builds the HTTP client and wires the
// services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, log, db, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB, apiClient client.Client, in io.Reader, out io.Writer) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := services.NewMetrics(reg)

	a := &App{
		config:   c,
		log:      log,
		db:       db,
		client:   apiClient,
		registry: reg,
		profile:  models.NewProfile(),
		reader:   bufio.NewReader(in),
		out:      out,
	}

	a.resolver = services.NewResourceResolver(apiClient, log.With("component", "resolver"), m)
	a.session = services.NewSessionManager(apiClient, db, a.resolver, log.With("component", "session"), m)
	a.feed = services.NewCandidateFeed(apiClient, log.With("component", "feed"), m)
	a.store = services.NewConversationStore(conversations.NewSQLiteRepository(db), a.session, log.With("component", "conversations"))
	a.engine = services.NewSwipeEngine(apiClient, a.session, a.store, log.With("component", "swipe"), m,
		services.WithListener(a.onSwipeEvent),
		services.WithMatchDisplayDelay(c.MatchDisplayDelay),
	)
	return a
}

// Run restores the previous session and blocks in the REPL until the user
// exits or ctx is cancelled. The metrics endpoint, if configured, runs
// alongside and is shut down when the REPL returns.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.RestoreOnLaunch(ctx); err != nil {
		a.log.Warn(ctx, "session not restored", "error", err)
	}
	if err := a.store.Load(ctx); err != nil {
		a.log.Warn(ctx, "conversations not loaded", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	ctx, stop := context.WithCancel(ctx)

	if a.config.MetricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, a.config.MetricsAddr, newMetricsHandler(a.registry), a.log)
		})
	}

	g.Go(func() error {
		defer stop()
		fmt.Fprintln(a.out, "Welcome to StudyBuddy CLI (type 'help' for commands)")
		runREPL(ctx, a, a.getStatus, a.reader)
		a.engine.Wait()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the backend client and the database.
func (a *App) Close() {
	_ = a.client.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.UserID()
	return ok
}

func (a *App) getStatus() string {
	if id, ok := a.session.UserID(); ok {
		return fmt.Sprintf("(user %d)", id)
	}
	return "(guest)"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
