// Package filesystem writes review outputs to a local directory.
//
// Writes are atomic: content goes to a temporary file in the destination
// directory which is then renamed into place. The temporary file is removed
// on every error path, so a failed write leaves nothing behind.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.OutputWriter = (*Writer)(nil)

const (
	filePerm = 0o644
	dirPerm  = 0o755
	tempGlob = ".adcheck-*.tmp"
)

// Writer writes files into one directory.
type Writer struct {
	dir string
}

// New creates a writer for dir. The directory is created on first write.
func New(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: output directory is required", domain.ErrInvalidInput)
	}
	return &Writer{dir: dir}, nil
}

// Write stores content under the base name of name and returns the final
// path. An existing file is replaced.
func (w *Writer) Write(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == ".." || base == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: invalid output name %q", domain.ErrInvalidInput, name)
	}

	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	dest := filepath.Join(w.dir, base)
	if err := writeAtomic(dest, content); err != nil {
		return "", err
	}
	return dest, nil
}

func writeAtomic(dest string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), tempGlob)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(step string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s %s: %w", step, dest, err)
	}

	if _, err := tmp.Write(content); err != nil {
		return fail("write", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename into %s: %w", dest, err)
	}
	return nil
}
