package wopi

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/dmitrijs2005/dochost/internal/logging"
	"github.com/dmitrijs2005/dochost/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := storage.NewFSStore(filepath.Join(t.TempDir(), "documents"))
	require.NoError(t, err)
	return NewService(st, Options{UserFriendlyName: "Reviewer", PostMessageOrigin: "http://localhost:3000"}, logging.Nop())
}

func TestPutFileThenGetFile_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff}

	require.NoError(t, svc.PutFile(ctx, "contract.docx", payload))

	got, err := svc.GetFile(ctx, "contract.docx")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCheckFileInfo_ReflectsLastWrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.PutFile(ctx, "sheet.xlsx", []byte("0123456789")))
	info, err := svc.CheckFileInfo(ctx, "sheet.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "sheet.xlsx", info.BaseFileName)
	assert.Equal(t, int64(10), info.Size)
	assert.NotEmpty(t, info.Version)
	assert.True(t, info.UserCanWrite)
	assert.False(t, info.UserCanNotWriteRelative)
	assert.Equal(t, "Reviewer", info.UserFriendlyName)
	assert.Equal(t, "http://localhost:3000", info.PostMessageOrigin)

	require.NoError(t, svc.PutFile(ctx, "sheet.xlsx", []byte("abc")))
	info, err = svc.CheckFileInfo(ctx, "sheet.xlsx")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
}

func TestMissingFile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckFileInfo(ctx, "ghost.docx")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.GetFile(ctx, "ghost.docx")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInvalidFileID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckFileInfo(ctx, "..")
	assert.ErrorIs(t, err, common.ErrInvalidFileID)

	err = svc.PutFile(ctx, "a/../../b", []byte("x"))
	assert.ErrorIs(t, err, common.ErrInvalidFileID)
}

func TestPutFile_SameBytesTwice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.PutFile(ctx, "x.docx", []byte("same")))
	first, err := svc.GetFile(ctx, "x.docx")
	require.NoError(t, err)

	require.NoError(t, svc.PutFile(ctx, "x.docx", []byte("same")))
	second, err := svc.GetFile(ctx, "x.docx")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
