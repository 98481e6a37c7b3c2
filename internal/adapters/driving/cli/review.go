package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
	"github.com/custodia-labs/adcheck/internal/logger"
)

var (
	reviewOutputDir string
	reviewFormat    string
	reviewStdout    bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <file>...",
	Short: "Highlight keywords in files",
	Long: `Highlight regulated keywords in each file and write an annotated DOCX
to the output directory, named with the configured prefix.

Supported inputs are plain text (UTF-8, CP949 or EUC-KR), DOCX, Markdown and
HTML. The format is taken from the file extension unless --format is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewOutputDir, "output", "o", "", "output directory (default from config)")
	reviewCmd.Flags().StringVar(&reviewFormat, "format", "", "input format: text, docx, markdown or html")
	reviewCmd.Flags().BoolVar(&reviewStdout, "stdout", false, "write the single result to stdout")
	rootCmd.AddCommand(reviewCmd)
}

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runReview(cmd *cobra.Command, args []string) error {
	if reviewStdout {
		if len(args) != 1 {
			return fmt.Errorf("%w: --stdout takes exactly one file", domain.ErrInvalidInput)
		}
		if isTerminal(cmd.OutOrStdout()) {
			return fmt.Errorf("%w: refusing to write DOCX to a terminal", domain.ErrInvalidInput)
		}
	}

	var format domain.Format
	if reviewFormat != "" {
		f, err := domain.ParseFormat(reviewFormat)
		if err != nil {
			return err
		}
		format = f
	}

	ctx := cmd.Context()
	rt, review, err := loadReviewService(ctx)
	if err != nil {
		return err
	}

	if reviewStdout {
		result, err := reviewFile(ctx, review, args[0], format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(result.Content)
		return err
	}

	dir := reviewOutputDir
	if dir == "" {
		dir = rt.Settings.OutputDir
	}
	writer, err := rt.NewOutputWriter(dir)
	if err != nil {
		return err
	}

	var firstErr error
	failed := 0
	for _, path := range args {
		out, result, err := reviewAndWrite(ctx, review, writer, path, format)
		if err != nil {
			if len(args) == 1 {
				return err
			}
			logger.Error("%s: %s: %v", path, domain.ErrorKind(err), err)
			if firstErr == nil {
				firstErr = err
			}
			failed++
			continue
		}
		cmd.Printf("%s -> %s (%d matches)\n", path, out, result.Stats.Matches)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed: %w", failed, len(args), firstErr)
	}
	return nil
}

// reviewFile reads and reviews one file.
func reviewFile(
	ctx context.Context,
	review driving.ReviewService,
	path string,
	format domain.Format,
) (*domain.ReviewResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	return review.Review(ctx, domain.Upload{
		Name:    filepath.Base(path),
		Format:  format,
		Content: content,
	})
}

// reviewAndWrite reviews one file and stores the result.
func reviewAndWrite(
	ctx context.Context,
	review driving.ReviewService,
	writer driven.OutputWriter,
	path string,
	format domain.Format,
) (string, *domain.ReviewResult, error) {
	if writer == nil {
		return "", nil, errors.New("output writer not configured")
	}

	result, err := reviewFile(ctx, review, path, format)
	if err != nil {
		return "", nil, err
	}

	out, err := writer.Write(ctx, result.FileName, result.Content)
	if err != nil {
		return "", nil, fmt.Errorf("writing %s: %w", result.FileName, err)
	}
	logger.Info("%s: %d matches, %d overlaps skipped", result.ID, result.Stats.Matches, result.Stats.SkippedOverlaps)
	return out, result, nil
}
