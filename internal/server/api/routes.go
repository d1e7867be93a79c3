package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *HTTPServer) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.cfg.IsolationHeaders {
		r.Use(isolationHeaders)
	}

	r.Get("/health", s.handleHealth)

	r.Post("/callback", s.handleCallback)

	r.Post("/jwt", s.handleIssueToken)
	r.Options("/jwt", s.handleTokenPreflight)

	r.Route("/wopi", func(r chi.Router) {
		r.Get("/discovery", s.handleDiscovery)

		r.Route("/files/{fileId}", func(r chi.Router) {
			r.Use(s.wopiToken)
			r.Get("/", s.handleCheckFileInfo)
			r.Get("/contents", s.handleGetFile)
			r.Post("/contents", s.handlePutFile)
			r.Get("/{action}", s.handleWOPIGet)
			r.Post("/{action}", s.handleWOPIPost)
		})
	})

	r.Handle("/collabora", http.StripPrefix("/collabora", s.proxy))
	r.Handle("/collabora/*", http.StripPrefix("/collabora", s.proxy))

	return r
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
