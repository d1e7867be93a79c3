package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/dmitrijs2005/dochost/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// ClaimsFromContext returns the verified token claims attached by the WOPI
// token middleware. It is nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *auth.DocumentClaims {
	c, _ := ctx.Value(claimsKey).(*auth.DocumentClaims)
	return c
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// isolationHeaders lets the editor page use SharedArrayBuffer while still
// embedding resources served from this host.
func isolationHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for name, value := range isolationPolicy {
			h.Set(name, value)
		}
		next.ServeHTTP(w, r)
	})
}

var isolationPolicy = map[string]string{
	"Cross-Origin-Embedder-Policy": "require-corp",
	"Cross-Origin-Opener-Policy":   "same-origin",
	"Cross-Origin-Resource-Policy": "cross-origin",
}

// wopiToken checks the access_token query parameter, falling back to an
// Authorization: Bearer header.
func (s *HTTPServer) wopiToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get(common.AccessTokenParam)
		if token == "" {
			token = auth.BearerToken(r.Header.Get(common.AuthorizationHeader))
		}

		claims, err := s.verifier.Check(token, s.policy)
		if err != nil {
			s.logger.Warn(r.Context(), "wopi token rejected", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims == nil {
			s.logger.Debug(r.Context(), "anonymous wopi request", "path", r.URL.Path)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}
