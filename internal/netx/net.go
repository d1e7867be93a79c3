// Package netx wraps the outbound HTTP calls the server makes to the
// external editing server.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/dochost/internal/common"
)

// FetchOptions controls a single download.
type FetchOptions struct {
	// BearerToken, when set, is forwarded as "Authorization: Bearer <token>".
	BearerToken string
	// MaxBytes caps the body size; zero means unlimited.
	MaxBytes int64
}

// Fetch downloads url with GET and returns the body. Any transport error,
// non-2xx status or oversized body is reported as *common.UpstreamFetchError.
// The deadline comes from ctx or the client's own Timeout.
func Fetch(ctx context.Context, client *http.Client, url string, opts FetchOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &common.UpstreamFetchError{URL: url, Err: err}
	}
	if opts.BearerToken != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+opts.BearerToken)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &common.UpstreamFetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &common.UpstreamFetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body io.Reader = resp.Body
	if opts.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, opts.MaxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &common.UpstreamFetchError{URL: url, Err: err}
	}
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return nil, &common.UpstreamFetchError{URL: url, Err: fmt.Errorf("body exceeds %d bytes", opts.MaxBytes)}
	}

	return data, nil
}
