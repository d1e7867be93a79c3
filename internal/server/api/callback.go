package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/dmitrijs2005/dochost/internal/server/auth"
	"github.com/dmitrijs2005/dochost/internal/server/callback"
)

type callbackRequest struct {
	Status   *int   `json:"status"`
	URL      string `json:"url"`
	FileType string `json:"filetype"`
	Error    string `json:"error"`
	Token    string `json:"token"`
}

type callbackResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *HTTPServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := r.URL.Query().Get("key")
	if key == "" {
		s.logger.Warn(ctx, "callback without document key")
		writeJSON(w, http.StatusBadRequest, callbackResponse{Error: 1, Message: "Missing document key"})
		return
	}

	var req callbackRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.logger.Warn(ctx, "malformed callback body", "key", key, "error", err)
		writeJSON(w, http.StatusBadRequest, callbackResponse{Error: 1, Message: "Invalid request body"})
		return
	}
	if req.Status == nil {
		writeJSON(w, http.StatusBadRequest, callbackResponse{Error: 1, Message: "Missing status"})
		return
	}

	token := auth.BearerToken(r.Header.Get(common.AuthorizationHeader))
	if token == "" {
		token = req.Token
	}
	claims, err := s.verifier.Check(token, s.policy)
	if err != nil {
		s.logger.Warn(ctx, "callback token rejected", "key", key, "error", err)
		writeJSON(w, http.StatusUnauthorized, callbackResponse{Error: 1, Message: "Invalid token"})
		return
	}
	if claims == nil {
		s.logger.Warn(ctx, "accepting anonymous callback", "key", key)
	}

	s.logger.Debug(ctx, "callback received", "key", key, "status", *req.Status, "url", req.URL, "filetype", req.FileType)

	res, err := s.ingestor.Process(ctx, callback.Event{
		Key:      key,
		Status:   *req.Status,
		URL:      req.URL,
		FileType: req.FileType,
		Error:    req.Error,
		Token:    token,
	})
	if err != nil {
		writeJSON(w, statusFor(err), callbackResponse{Error: 1, Message: callbackMessage(err, req.Error)})
		return
	}

	writeJSON(w, http.StatusOK, callbackResponse{Error: 0, Message: res.Message})
}

func callbackMessage(err error, editorErr string) string {
	switch {
	case errors.Is(err, common.ErrEditorReported):
		if editorErr == "" {
			editorErr = "Unknown error"
		}
		return "Document server error: " + editorErr
	case errors.Is(err, common.ErrMissingURL):
		return "Missing document URL in callback"
	case common.IsValidationError(err):
		return err.Error()
	default:
		return "Failed to save document: " + err.Error()
	}
}
