package api

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// newEditorProxy forwards /collabora/* to the editor with the prefix
// already stripped by the router.
func (s *HTTPServer) newEditorProxy(editorURL string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(editorURL)
	if err != nil {
		return nil, fmt.Errorf("parse editor url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("editor url %q must be absolute", editorURL)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			// ReverseProxy adds upstream headers on top of ours; keep one copy.
			if s.cfg.IsolationHeaders {
				for name := range isolationPolicy {
					resp.Header.Del(name)
				}
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			s.logger.Error(r.Context(), "editor proxy failed", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to connect to editor")
		},
	}, nil
}
