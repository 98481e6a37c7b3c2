package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, tempGlob))
	require.NoError(t, err)
	return matches
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New(" ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWrite_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write(context.Background(), "검수결과_광고.docx", []byte("content"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "검수결과_광고.docx"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	assert.Empty(t, tempFiles(t, dir))
}

func TestWrite_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), "a.docx", []byte("old"))
	require.NoError(t, err)
	path, err := w.Write(context.Background(), "a.docx", []byte("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWrite_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write(context.Background(), "../../escape.docx", []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.docx"), path)
}

func TestWrite_InvalidName(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", " ", ".", ".."} {
		_, err := w.Write(context.Background(), name, []byte("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "name %q", name)
	}
}

func TestWrite_FailureLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "taken.docx"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.docx", "child"), []byte("x"), 0o644))

	w, err := New(dir)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), "taken.docx", []byte("content"))

	assert.Error(t, err)
	assert.Empty(t, tempFiles(t, dir))
}

func TestWrite_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Write(ctx, "a.docx", []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(dir, "a.docx"))
	assert.True(t, os.IsNotExist(statErr))
}
