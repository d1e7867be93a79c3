package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/dmitrijs2005/dochost/internal/server/auth"
)

type tokenRequest struct {
	DocKey   string `json:"docKey"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	FileType string `json:"fileType"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *HTTPServer) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tokenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DocKey == "" {
		writeError(w, http.StatusBadRequest, "Missing document key")
		return
	}

	claims := auth.DocumentClaims{
		Document: auth.Document{
			Key:      req.DocKey,
			URL:      req.URL,
			FileType: req.FileType,
			Title:    req.Title,
		},
		EditorConfig: auth.EditorConfig{
			Mode:        "edit",
			CallbackURL: s.callbackURL(req.DocKey),
		},
	}
	if claims.Document.FileType == "" {
		claims.Document.FileType = common.DefaultFileType
	}
	if claims.Document.Title == "" {
		claims.Document.Title = common.DefaultTitle
	}

	token, err := s.verifier.Sign(claims)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "key", req.DocKey, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate JWT")
		return
	}

	s.logger.Info(ctx, "editor token issued", "key", req.DocKey)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) handleTokenPreflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) callbackURL(docKey string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/callback?key=" + url.QueryEscape(docKey)
}
