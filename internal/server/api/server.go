// Package api exposes the document host over HTTP: WOPI file operations,
// the editor save callback, token issuing and the editor proxy.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/dmitrijs2005/dochost/internal/logging"
	"github.com/dmitrijs2005/dochost/internal/server/auth"
	"github.com/dmitrijs2005/dochost/internal/server/callback"
	"github.com/dmitrijs2005/dochost/internal/server/config"
	"github.com/dmitrijs2005/dochost/internal/server/wopi"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address   string
	cfg       *config.Config
	logger    logging.Logger
	wopi      *wopi.Service
	ingestor  *callback.Ingestor
	verifier  *auth.Verifier
	policy    auth.Policy
	discovery []byte
	proxy     *httputil.ReverseProxy
	router    chi.Router
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, ws *wopi.Service, ing *callback.Ingestor, v *auth.Verifier) (*HTTPServer, error) {
	discovery, err := wopi.NewDiscovery(cfg.EditorURL).Marshal()
	if err != nil {
		return nil, fmt.Errorf("build discovery: %w", err)
	}

	s := &HTTPServer{
		address:   cfg.HTTPAddr,
		cfg:       cfg,
		logger:    l.With("module", "http_server"),
		wopi:      ws,
		ingestor:  ing,
		verifier:  v,
		policy:    auth.PolicyFor(cfg.RequireToken),
		discovery: discovery,
	}

	proxy, err := s.newEditorProxy(cfg.EditorURL)
	if err != nil {
		return nil, err
	}
	s.proxy = proxy

	s.router = s.routes()
	return s, nil
}

// Handler returns the fully wired router.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "graceful shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
