package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dochost/internal/server/auth"
	"github.com/dmitrijs2005/dochost/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEditor(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &gotAuth
}

func TestCallback_SavesDocument(t *testing.T) {
	env := newTestEnv(t, nil)
	editor, _ := fakeEditor(t, http.StatusOK, "ABC")

	resp, body := env.do(t, http.MethodPost, "/callback?key=doc1",
		jsonBody(t, map[string]any{"status": 2, "url": editor.URL + "/cache/doc1"}), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	out := decode(t, body)
	assert.EqualValues(t, 0, out["error"])
	assert.Equal(t, "Document saved successfully", out["message"])

	got, err := os.ReadFile(filepath.Join(env.dir, "doc1.docx"))
	require.NoError(t, err)
	assert.Equal(t, "ABC", string(got))

	// the saved document is served back over WOPI
	resp, body = env.do(t, http.MethodGet, "/wopi/files/doc1.docx/GetFile", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ABC", string(body))

	resp, body = env.do(t, http.MethodGet, "/wopi/files/doc1.docx/CheckFileInfo", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, decode(t, body)["Size"])

	// a later save replaces the content and the reported size
	longer, _ := fakeEditor(t, http.StatusOK, "ABCDEFG")
	resp, _ = env.do(t, http.MethodPost, "/callback?key=doc1",
		jsonBody(t, map[string]any{"status": 6, "url": longer.URL}), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.do(t, http.MethodGet, "/wopi/files/doc1.docx/CheckFileInfo", nil, nil)
	assert.EqualValues(t, 7, decode(t, body)["Size"])
}

func TestCallback_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	editor, _ := fakeEditor(t, http.StatusServiceUnavailable, "busy")

	resp, body := env.do(t, http.MethodPost, "/callback?key=doc1",
		jsonBody(t, map[string]any{"status": 2, "url": editor.URL}), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	out := decode(t, body)
	assert.EqualValues(t, 1, out["error"])
	assert.Contains(t, out["message"], "Failed to save document")
	assert.Contains(t, out["message"], "503")

	_, err := os.Stat(filepath.Join(env.dir, "doc1.docx"))
	assert.True(t, os.IsNotExist(err))
}

func TestCallback_StatusHandling(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name    string
		body    map[string]any
		status  int
		errCode float64
		message string
	}{
		{"editing", map[string]any{"status": 1}, http.StatusOK, 0, ""},
		{"closed without changes", map[string]any{"status": 4}, http.StatusOK, 0, ""},
		{"ready without url", map[string]any{"status": 2}, http.StatusBadRequest, 1, "Missing document URL in callback"},
		{"editor error", map[string]any{"status": 3, "error": "boom"}, http.StatusInternalServerError, 1, "Document server error: boom"},
		{"force save error", map[string]any{"status": 7}, http.StatusInternalServerError, 1, "Document server error: Unknown error"},
		{"unknown status", map[string]any{"status": 5}, http.StatusBadRequest, 1, ""},
		{"missing status", map[string]any{"url": "http://x"}, http.StatusBadRequest, 1, "Missing status"},
		{"bad file type", map[string]any{"status": 2, "url": "http://x", "filetype": "a/b"}, http.StatusBadRequest, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, http.MethodPost, "/callback?key=doc1", jsonBody(t, tt.body), nil)
			assert.Equal(t, tt.status, resp.StatusCode, string(body))

			out := decode(t, body)
			assert.Equal(t, tt.errCode, out["error"])
			if tt.message != "" {
				assert.Equal(t, tt.message, out["message"])
			}
		})
	}

	entries, err := os.ReadDir(env.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCallback_BadRequests(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodPost, "/callback", strings.NewReader(`{"status":1}`), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing document key", decode(t, body)["message"])

	resp, _ = env.do(t, http.MethodPost, "/callback?key=doc1", strings.NewReader(`{"status":`), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCallback_Tokens(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) { c.RequireToken = true })
	editor, gotAuth := fakeEditor(t, http.StatusOK, "signed")

	token, err := env.verifier.Sign(auth.DocumentClaims{Document: auth.Document{Key: "doc1"}})
	require.NoError(t, err)

	// no token at all
	resp, body := env.do(t, http.MethodPost, "/callback?key=doc1", jsonBody(t, map[string]any{"status": 1}), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", decode(t, body)["message"])

	// forged token
	resp, _ = env.do(t, http.MethodPost, "/callback?key=doc1", jsonBody(t, map[string]any{"status": 1}),
		http.Header{"Authorization": {"Bearer " + token + "x"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// token in the body is accepted when the header is absent
	resp, _ = env.do(t, http.MethodPost, "/callback?key=doc1", jsonBody(t, map[string]any{"status": 1, "token": token}), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// header token is forwarded to the download
	resp, body = env.do(t, http.MethodPost, "/callback?key=doc1",
		jsonBody(t, map[string]any{"status": 2, "url": editor.URL}),
		http.Header{"Authorization": {"Bearer " + token}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Bearer "+token, *gotAuth)

	got, err := os.ReadFile(filepath.Join(env.dir, "doc1.docx"))
	require.NoError(t, err)
	assert.Equal(t, "signed", string(got))
}

func TestCallback_AnonymousWhenOptional(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.do(t, http.MethodPost, "/callback?key=doc1", jsonBody(t, map[string]any{"status": 1}), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// a present but invalid token is still rejected
	resp, _ = env.do(t, http.MethodPost, "/callback?key=doc1", jsonBody(t, map[string]any{"status": 1, "token": "nope"}), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
