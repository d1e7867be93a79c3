// Package models defines the document host's data records.
package models

import (
	"strconv"
	"strings"
	"time"
)

// FileInfo describes a stored document blob. The blob content itself lives
// in the storage backend.
type FileInfo struct {
	// ID is the sanitized file identifier, also the storage name.
	ID string
	// Size is the content length in bytes.
	Size int64
	// ModTime comes from the backend's own metadata (mtime or LastModified).
	ModTime time.Time
	// ETag is the object store's content tag; empty on the filesystem.
	ETag string
}

// Version is an opaque token that changes on every write: the ETag when the
// backend has one, otherwise the modification time in nanoseconds.
func (f FileInfo) Version() string {
	if etag := strings.Trim(f.ETag, `"`); etag != "" {
		return etag
	}
	return strconv.FormatInt(f.ModTime.UnixNano(), 10)
}

// CheckFileInfo is the WOPI CheckFileInfo response body.
type CheckFileInfo struct {
	BaseFileName            string `json:"BaseFileName"`
	Size                    int64  `json:"Size"`
	Version                 string `json:"Version"`
	UserCanWrite            bool   `json:"UserCanWrite"`
	UserCanNotWriteRelative bool   `json:"UserCanNotWriteRelative"`
	UserFriendlyName        string `json:"UserFriendlyName"`
	PostMessageOrigin       string `json:"PostMessageOrigin,omitempty"`
}
