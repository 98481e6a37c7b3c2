// Package cli provides the cobra command tree for adcheck.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// Runtime holds what commands need from the composition root.
type Runtime struct {
	// Config is the loaded configuration store.
	Config driven.ConfigStore

	// Settings are the validated settings read from Config.
	Settings domain.Settings

	// NewReviewService fetches the keyword table and builds the pipeline.
	NewReviewService func(ctx context.Context) (driving.ReviewService, error)

	// NewOutputWriter opens an output directory.
	NewOutputWriter func(dir string) (driven.OutputWriter, error)
}

// RuntimeFactory builds a Runtime for a config directory ("" for the default).
type RuntimeFactory func(configDir string) (*Runtime, error)

var (
	version = "dev"

	configDir string
	verbose   bool

	runtimeFactory RuntimeFactory
)

var rootCmd = &cobra.Command{
	Use:   "adcheck",
	Short: "Highlight regulated advertising keywords in documents",
	Long: `adcheck reviews advertising copy against a table of regulated keywords.

Each keyword found in an uploaded document is marked in bold red and followed
by its advisory note in green. The result is written as a DOCX file.

Keywords are read from a Google Sheets worksheet or a local TOML file,
configured in ~/.adcheck/config.toml.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.adcheck)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetRuntimeFactory sets how commands obtain their runtime.
func SetRuntimeFactory(f RuntimeFactory) {
	runtimeFactory = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func loadRuntime() (*Runtime, error) {
	if runtimeFactory == nil {
		return nil, errors.New("runtime not configured")
	}
	return runtimeFactory(configDir)
}

// loadReviewService fetches keywords before any input file is touched.
func loadReviewService(ctx context.Context) (*Runtime, driving.ReviewService, error) {
	rt, err := loadRuntime()
	if err != nil {
		return nil, nil, err
	}
	if rt.NewReviewService == nil {
		return nil, nil, errors.New("review service not configured")
	}
	review, err := rt.NewReviewService(ctx)
	if err != nil {
		return nil, nil, err
	}
	return rt, review, nil
}

// Execute runs the root command and returns the process exit code.
// Errors are printed as "<Kind>: <message>".
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(rootCmd, err)
		return 1
	}
	return 0
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", domain.ErrorKind(err), err)
}
