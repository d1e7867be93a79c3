package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileInfo_Version(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 123_000_000, time.UTC)

	f := FileInfo{ID: "a.docx", Size: 3, ModTime: ts}
	assert.Equal(t, "1709294400123000000", f.Version())

	// writes inside the same millisecond still get distinct versions
	later := FileInfo{ModTime: ts.Add(time.Microsecond)}
	assert.NotEqual(t, f.Version(), later.Version())
}

func TestFileInfo_VersionPrefersETag(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := FileInfo{ModTime: ts, ETag: `"9a0364b9e99bb480dd25e1f0284c8555"`}
	b := FileInfo{ModTime: ts, ETag: `"d41d8cd98f00b204e9800998ecf8427e"`}

	assert.Equal(t, "9a0364b9e99bb480dd25e1f0284c8555", a.Version())
	assert.NotEqual(t, a.Version(), b.Version())
}
