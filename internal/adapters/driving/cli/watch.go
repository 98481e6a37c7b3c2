package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
	"github.com/custodia-labs/adcheck/internal/logger"
)

var (
	watchOutputDir string
	watchSettle    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Review files as they arrive in a directory",
	Long: `Watch an inbox directory and review each supported file once it has
stopped changing for the settle delay.

Files are processed one at a time. Hidden files and files that already carry
the output prefix are ignored, so results can be written back into the inbox.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputDir, "output", "o", "", "output directory (default: the watched directory)")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", time.Second, "how long a file must be unchanged before review")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	ctx := cmd.Context()
	rt, review, err := loadReviewService(ctx)
	if err != nil {
		return err
	}

	outDir := watchOutputDir
	if outDir == "" {
		outDir = dir
	}
	writer, err := rt.NewOutputWriter(outDir)
	if err != nil {
		return err
	}

	w := newInboxWatcher(review, writer, rt.Settings, watchSettle, cmd.OutOrStdout())
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	return w.run(ctx, dir)
}

// minWatchTick bounds how often pending files are checked.
const minWatchTick = 10 * time.Millisecond

// inboxWatcher reviews files written into a directory.
type inboxWatcher struct {
	review   driving.ReviewService
	writer   driven.OutputWriter
	settings domain.Settings
	settle   time.Duration
	out      io.Writer

	// pending maps a path to the time of its last event.
	pending map[string]time.Time
}

func newInboxWatcher(
	review driving.ReviewService,
	writer driven.OutputWriter,
	settings domain.Settings,
	settle time.Duration,
	out io.Writer,
) *inboxWatcher {
	if settle <= 0 {
		settle = time.Second
	}
	return &inboxWatcher{
		review:   review,
		writer:   writer,
		settings: settings,
		settle:   settle,
		out:      out,
		pending:  make(map[string]time.Time),
	}
}

// tick is the interval between settle checks.
func (w *inboxWatcher) tick() time.Duration {
	return max(w.settle/4, minWatchTick)
}

// eligible reports whether a file should be reviewed.
func (w *inboxWatcher) eligible(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || w.settings.IsOutputName(name) {
		return false
	}
	format, err := domain.FormatFromFilename(name)
	if err != nil {
		return false
	}
	return slices.Contains(w.review.SupportedFormats(), format)
}

// handleEvent records or forgets a path based on a filesystem event.
func (w *inboxWatcher) handleEvent(event fsnotify.Event, now time.Time) {
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if !w.eligible(event.Name) {
			return
		}
		if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
			return
		}
		w.pending[event.Name] = now
	}
}

// settled removes and returns the paths unchanged since before now-settle.
func (w *inboxWatcher) settled(now time.Time) []string {
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

// process reviews one file. Failures are reported and do not stop the watch.
func (w *inboxWatcher) process(ctx context.Context, path string) {
	out, result, err := reviewAndWrite(ctx, w.review, w.writer, path, domain.FormatUnknown)
	if err != nil {
		logger.Error("%s: %v", path, err)
		fmt.Fprintf(w.out, "%s: %s: %v\n", path, domain.ErrorKind(err), err)
		return
	}
	fmt.Fprintf(w.out, "%s -> %s (%d matches)\n", path, out, result.Stats.Matches)
}

// run blocks until ctx is cancelled.
func (w *inboxWatcher) run(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Debug("watching %s, settle %s", dir, w.settle)

	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, time.Now())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		case now := <-ticker.C:
			for _, path := range w.settled(now) {
				if ctx.Err() != nil {
					return nil
				}
				w.process(ctx, path)
			}
		}
	}
}
