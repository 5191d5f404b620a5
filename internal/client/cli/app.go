// Package cli implements the interactive Wintakam client: application
// wiring, a small REPL, and one file per command group.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wintakam/wintakam/internal/client/catalog"
	"github.com/wintakam/wintakam/internal/client/config"
	"github.com/wintakam/wintakam/internal/client/credstore"
	"github.com/wintakam/wintakam/internal/client/gateway"
	"github.com/wintakam/wintakam/internal/client/session"
	"github.com/wintakam/wintakam/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client services together and owns their lifecycles.
type App struct {
	config     *config.Config
	sessions   session.Manager
	properties catalog.PropertyService
	gw         gateway.Gateway
	logger     logging.Logger
	db         *sql.DB
	reader     *bufio.Reader
}

// NewApp builds the full client stack: the credential store database under
// the data directory, the HTTP gateway with its private session cache, and
// the session and catalog services on top.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(c.DataDir, "credentials.db"))
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	if err := credstore.InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	store, err := credstore.NewSQLiteStore(ctx, db, []byte(c.APIKey))
	if err != nil {
		db.Close()
		return nil, err
	}

	gw := gateway.NewHTTPGateway(c.BackendURL, c.APIKey, filepath.Join(c.DataDir, "session.json"), c.RequestTimeout, logger)
	if err := gw.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	var properties catalog.PropertyService = catalog.NewService(gw, logger)
	if c.UseMockData {
		properties = catalog.NewMockService()
	}

	return &App{
		config:     c,
		sessions:   session.NewManager(gw, store, logger),
		properties: properties,
		gw:         gw,
		logger:     logger,
		db:         db,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a previous session when one exists and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.sessions.RestoreSession(ctx) {
		if u := a.sessions.CurrentUser(); u != nil {
			fmt.Printf("Bon retour, %s !\n", u.DisplayName())
		}
	}

	a.Root(ctx)
}

// Close releases the gateway and the credential store database.
func (a *App) Close() {
	if err := a.gw.Close(); err != nil {
		a.logger.Warn(context.Background(), "gateway close failed", "error", err.Error())
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "database close failed", "error", err.Error())
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}
