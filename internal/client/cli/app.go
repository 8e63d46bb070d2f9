package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/nishant0207/online-filesharing/internal/client/api"
	"github.com/nishant0207/online-filesharing/internal/client/catalog"
	"github.com/nishant0207/online-filesharing/internal/client/config"
	"github.com/nishant0207/online-filesharing/internal/client/credstore"
	"github.com/nishant0207/online-filesharing/internal/client/models"
	"github.com/nishant0207/online-filesharing/internal/client/session"
	"github.com/nishant0207/online-filesharing/internal/logging"
)

// App ties the session manager and the catalog store to an interactive
// terminal loop. View state (active search query and local sort order) lives
// here, not in the store, and is recomputed from the store's base collections
// on every listing.
type App struct {
	config  *config.Config
	log     logging.Logger
	creds   *credstore.Store
	session *session.Manager
	store   *catalog.Store
	reader  *bufio.Reader

	// mu guards the view state below; the session-end hook runs on the
	// watchdog goroutine and resets it concurrently with the REPL.
	mu          sync.Mutex
	searchQuery string
	sortKey     models.SortKey
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewText(os.Stderr, slog.LevelWarn)

	creds, err := credstore.Open(ctx, c.CredentialStorePath)
	if err != nil {
		logger.Error(ctx, "opening credential store", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerEndpointAddr, logger)
	sm := session.NewManager(apiClient, creds, c.InactivityTimeout, logger)
	store := catalog.NewStore(apiClient, sm, logger)

	app := &App{
		config:  c,
		log:     logger,
		creds:   creds,
		session: sm,
		store:   store,
		reader:  bufio.NewReader(os.Stdin),
	}

	// A session ending for any reason wipes the catalog and the view state
	// before the user sees the notice.
	sm.OnEnd(func(r session.Reason) {
		store.Reset()
		app.resetView()
		printlnFn(r.Notice())
	})

	return app, nil
}

// Run restores a persisted session if one is still valid, starts the
// revocation watcher, and blocks in the command loop until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.creds.Close()

	if a.session.Restore(ctx) {
		printlnFn("Welcome back,", a.session.Session().Identity)
		a.refreshAll(ctx)
	}

	go a.session.StartRevocationWatcher(ctx, a.config.RevocationCheckInterval)

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

// activity is called once per entered command so that typing anything keeps
// the inactivity watchdog from firing.
func (a *App) activity() {
	a.session.Activity()
}

func (a *App) viewState() (string, models.SortKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.searchQuery, a.sortKey
}

func (a *App) setSearch(query string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.searchQuery = query
}

func (a *App) setSort(key models.SortKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sortKey = key
}

func (a *App) resetView() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.searchQuery = ""
	a.sortKey = ""
}
