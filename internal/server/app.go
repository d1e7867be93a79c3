// Package server initializes and runs the document host.
// It validates configuration, builds the storage backend, wires the WOPI,
// callback and token components into the HTTP server and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/dochost/internal/logging"
	"github.com/dmitrijs2005/dochost/internal/server/api"
	"github.com/dmitrijs2005/dochost/internal/server/auth"
	"github.com/dmitrijs2005/dochost/internal/server/callback"
	"github.com/dmitrijs2005/dochost/internal/server/config"
	"github.com/dmitrijs2005/dochost/internal/server/storage"
	"github.com/dmitrijs2005/dochost/internal/server/wopi"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *api.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	logger, err := logging.NewJSONLogger(logOut, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	generated, err := c.Validate()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if generated {
		logger.Warn(ctx, "no JWT secret configured, generated a per-process secret; tokens will not survive a restart and the editor cannot verify them")
	}
	if !c.RequireToken {
		logger.Warn(ctx, "anonymous callbacks and WOPI requests are accepted")
	}

	store, err := storage.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	verifier := auth.NewVerifier([]byte(c.JWTSecret), c.TokenTTL)

	ws := wopi.NewService(store, wopi.Options{
		UserFriendlyName:  c.UserFriendlyName,
		PostMessageOrigin: c.PostMessageOrigin,
	}, logger)

	ing := callback.NewIngestor(store, &http.Client{Timeout: c.FetchTimeout}, callback.Options{
		FetchTimeout:     c.FetchTimeout,
		MaxDownloadBytes: c.MaxDownloadBytes,
	}, logger)

	hs, err := api.NewHTTPServer(c, logger, ws, ing, verifier)
	if err != nil {
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: c, logger: logger, httpServer: hs}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or the
// listener fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend, "production", app.config.Production)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
