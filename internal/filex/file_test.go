package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeResolvesAgainstCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("documents")
	require.NoError(t, err)

	want := filepath.Join(tmp, "documents")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_AbsoluteAndIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)

	require.Equal(t, dir, first)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsWhenPathIsFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := EnsureDir(file)
	require.Error(t, err)
}

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	require.NoError(t, WriteFileAtomic(dir, "doc1.docx", []byte("first version"), 0o640))
	got, err := os.ReadFile(filepath.Join(dir, "doc1.docx"))
	require.NoError(t, err)
	require.Equal(t, "first version", string(got))

	require.NoError(t, WriteFileAtomic(dir, "doc1.docx", []byte("v2"), 0o640))
	got, err = os.ReadFile(filepath.Join(dir, "doc1.docx"))
	require.NoError(t, err)
	require.Equal(t, "v2", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFileAtomic_EmptyContent(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteFileAtomic(dir, "empty", nil, 0o640))

	fi, err := os.Stat(filepath.Join(dir, "empty"))
	require.NoError(t, err)
	require.Zero(t, fi.Size())
}

func TestTempName_HiddenAndUnique(t *testing.T) {
	a := TempName("doc1.docx")
	b := TempName("doc1.docx")

	require.True(t, strings.HasPrefix(a, ".doc1.docx."))
	require.True(t, strings.HasSuffix(a, ".tmp"))
	require.NotEqual(t, a, b)
}
