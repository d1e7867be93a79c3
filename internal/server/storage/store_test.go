package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/dochost/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	fsCfg := &config.Config{StorageBackend: config.StorageFS, StorageDir: filepath.Join(t.TempDir(), "docs")}
	st, err := New(ctx, fsCfg)
	require.NoError(t, err)
	assert.IsType(t, &FSStore{}, st)

	_, err = New(ctx, &config.Config{StorageBackend: "tape"})
	assert.Error(t, err)
}
