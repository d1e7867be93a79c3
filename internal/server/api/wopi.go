package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/go-chi/chi/v5"
)

const (
	actionCheckFileInfo = "CheckFileInfo"
	actionGetFile       = "GetFile"
	actionPutFile       = "PutFile"
)

func (s *HTTPServer) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.discovery)
}

// fileIDParam returns the decoded fileId. chi matches on URL.RawPath when
// the client used a non-canonical escaping, so "a%20b(1).docx" and
// "a%20b%281%29.docx" must both resolve to "a b(1).docx". Without RawPath
// the param is already decoded and must not be unescaped twice.
func fileIDParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "fileId")
	if r.URL.RawPath == "" {
		return raw, nil
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", common.ErrInvalidFileID, raw, err)
	}
	return id, nil
}

func (s *HTTPServer) handleWOPIGet(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case actionCheckFileInfo:
		s.handleCheckFileInfo(w, r)
	case actionGetFile:
		s.handleGetFile(w, r)
	default:
		writeError(w, http.StatusBadRequest, "Action not supported")
	}
}

func (s *HTTPServer) handleWOPIPost(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case actionPutFile:
		s.handlePutFile(w, r)
	default:
		writeError(w, http.StatusBadRequest, "Action not supported")
	}
}

func (s *HTTPServer) handleCheckFileInfo(w http.ResponseWriter, r *http.Request) {
	fileID, err := fileIDParam(r)
	if err != nil {
		s.writeWOPIError(w, r, err)
		return
	}

	info, err := s.wopi.CheckFileInfo(r.Context(), fileID)
	if err != nil {
		s.writeWOPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *HTTPServer) handleGetFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := fileIDParam(r)
	if err != nil {
		s.writeWOPIError(w, r, err)
		return
	}

	data, err := s.wopi.GetFile(r.Context(), fileID)
	if err != nil {
		s.writeWOPIError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *HTTPServer) handlePutFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := fileIDParam(r)
	if err != nil {
		s.writeWOPIError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.writeWOPIError(w, r, err)
		return
	}

	if err := s.wopi.PutFile(r.Context(), fileID, body); err != nil {
		s.writeWOPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *HTTPServer) writeWOPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	var msg string
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		msg = "request body too large"
	case errors.Is(err, common.ErrNotFound):
		msg = "File not found"
	case status == http.StatusBadRequest:
		msg = err.Error()
	default:
		msg = "File operation failed"
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "wopi request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Info(r.Context(), "wopi request rejected", "path", r.URL.Path, "status", status, "error", err)
	}

	writeError(w, status, msg)
}
