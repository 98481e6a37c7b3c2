package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/adapters/driven/output/filesystem"
	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func newTestWatcher(t *testing.T, outDir string) (*inboxWatcher, *stubReview, *bytes.Buffer) {
	t.Helper()
	review := &stubReview{settings: domain.DefaultSettings()}
	writer, err := filesystem.New(outDir)
	require.NoError(t, err)
	out := new(bytes.Buffer)
	return newInboxWatcher(review, writer, domain.DefaultSettings(), 50*time.Millisecond, out), review, out
}

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch <dir>", watchCmd.Use)

	flag := watchCmd.Flags().Lookup("settle")
	require.NotNil(t, flag)
	assert.Equal(t, "1s", flag.DefValue)
}

func TestWatchCmd_RejectsNonDirectory(t *testing.T) {
	newTestEnv(t)
	path := writeFile(t, t.TempDir(), "a.txt", "")

	_, err := execute(t, "watch", path)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWatchCmd_KeywordFailure(t *testing.T) {
	env := newTestEnv(t)
	env.keywordErr = domain.ErrKeywordSource

	_, err := execute(t, "watch", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrKeywordSource)
}

func TestInboxWatcher_Eligible(t *testing.T) {
	w, _, _ := newTestWatcher(t, t.TempDir())

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"plain text", "/in/광고.txt", true},
		{"docx", "/in/상세.docx", true},
		{"unsupported by service", "/in/page.html", false},
		{"unknown extension", "/in/image.png", false},
		{"no extension", "/in/README", false},
		{"own output", "/in/검수결과_광고.docx", false},
		{"hidden", "/in/.draft.txt", false},
		{"writer temp file", "/in/.adcheck-123.tmp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.eligible(tt.path))
		})
	}
}

func TestInboxWatcher_HandleEvent(t *testing.T) {
	dir := t.TempDir()
	w, _, _ := newTestWatcher(t, t.TempDir())
	path := writeFile(t, dir, "a.txt", "무료")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))
	now := time.Now()

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create}, now)
	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "sub.txt"), Op: fsnotify.Create}, now)
	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "gone.txt"), Op: fsnotify.Write}, now)
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Chmod}, now.Add(time.Second))

	assert.Equal(t, map[string]time.Time{path: now}, w.pending)

	// a later write pushes the deadline back
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}, now.Add(40*time.Millisecond))
	assert.Empty(t, w.settled(now.Add(60*time.Millisecond)))
	assert.Equal(t, []string{path}, w.settled(now.Add(100*time.Millisecond)))
	assert.Empty(t, w.pending)

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create}, now)
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Remove}, now)
	assert.Empty(t, w.pending)
}

func TestInboxWatcher_SettledIsSorted(t *testing.T) {
	w, _, _ := newTestWatcher(t, t.TempDir())
	now := time.Now()
	w.pending["/in/c.txt"] = now
	w.pending["/in/a.txt"] = now
	w.pending["/in/b.txt"] = now

	assert.Equal(t, []string{"/in/a.txt", "/in/b.txt", "/in/c.txt"}, w.settled(now.Add(time.Second)))
}

func TestInboxWatcher_Process(t *testing.T) {
	outDir := t.TempDir()
	w, _, out := newTestWatcher(t, outDir)
	path := writeFile(t, t.TempDir(), "a.txt", "무료")

	w.process(context.Background(), path)

	assert.FileExists(t, filepath.Join(outDir, "검수결과_a.docx"))
	assert.Contains(t, out.String(), "(1 matches)")
}

func TestInboxWatcher_ProcessFailureIsReported(t *testing.T) {
	w, review, out := newTestWatcher(t, t.TempDir())
	review.err = domain.ErrDecode
	path := writeFile(t, t.TempDir(), "a.txt", "\xff")

	w.process(context.Background(), path)

	assert.Contains(t, out.String(), "DecodeError")
}

func TestInboxWatcher_Run(t *testing.T) {
	inbox := t.TempDir()
	w, review, _ := newTestWatcher(t, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx, inbox) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	writeFile(t, inbox, "광고.txt", "무료 무료")
	writeFile(t, inbox, "notes.png", "x")

	output := filepath.Join(inbox, "검수결과_광고.docx")
	assert.Eventually(t, func() bool {
		_, err := os.Stat(output)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	// the output written into the inbox is not reviewed again
	uploads := review.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "광고.txt", uploads[0].Name)
}

func TestInboxWatcher_Tick(t *testing.T) {
	tests := []struct {
		name     string
		settle   time.Duration
		expected time.Duration
	}{
		{"quarter of settle", time.Second, 250 * time.Millisecond},
		{"tiny settle is clamped", 3 * time.Nanosecond, minWatchTick},
		{"zero settle uses default", 0, 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newInboxWatcher(&stubReview{}, nil, domain.DefaultSettings(), tt.settle, new(bytes.Buffer))
			assert.Equal(t, tt.expected, w.tick())
		})
	}
}

func TestInboxWatcher_RunWithTinySettle(t *testing.T) {
	inbox := t.TempDir()
	w := newInboxWatcher(&stubReview{}, nil, domain.DefaultSettings(), time.Nanosecond, new(bytes.Buffer))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NotPanics(t, func() {
		assert.NoError(t, w.run(ctx, inbox))
	})
}
