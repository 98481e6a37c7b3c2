package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/adcheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/adcheck/internal/adapters/driven/output/filesystem"
	"github.com/custodia-labs/adcheck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/cli"
	"github.com/custodia-labs/adcheck/internal/connectors/github"
	"github.com/custodia-labs/adcheck/internal/connectors/keywordfile"
	"github.com/custodia-labs/adcheck/internal/connectors/sheets"
	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
	"github.com/custodia-labs/adcheck/internal/core/services"
	docxemitter "github.com/custodia-labs/adcheck/internal/emitters/docx"
	"github.com/custodia-labs/adcheck/internal/logger"
	"github.com/custodia-labs/adcheck/internal/normalisers"
	docxnormaliser "github.com/custodia-labs/adcheck/internal/normalisers/docx"
	"github.com/custodia-labs/adcheck/internal/normalisers/html"
	"github.com/custodia-labs/adcheck/internal/normalisers/markdown"
	"github.com/custodia-labs/adcheck/internal/normalisers/plaintext"
)

// newRuntime loads configuration only. The keyword table is fetched later,
// by commands that review documents.
func newRuntime(configDir string) (*cli.Runtime, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settings, err := services.LoadSettings(store)
	if err != nil {
		return nil, err
	}

	return &cli.Runtime{
		Config:   store,
		Settings: settings,
		NewReviewService: func(ctx context.Context) (driving.ReviewService, error) {
			return newReviewService(ctx, settings, filepath.Dir(store.Path()))
		},
		NewOutputWriter: func(dir string) (driven.OutputWriter, error) {
			return filesystem.New(dir)
		},
	}, nil
}

// githubTokenEnv names the variable holding an optional GitHub token.
const githubTokenEnv = "GITHUB_TOKEN"

func newKeywordSource(ctx context.Context, settings domain.Settings) (driven.KeywordSource, error) {
	switch settings.KeywordSource {
	case domain.KeywordSourceFile:
		return keywordfile.New(settings.KeywordFile), nil
	case domain.KeywordSourceGitHub:
		client := github.NewClient(ctx, os.Getenv(githubTokenEnv))
		return github.New(client, settings.GitHub)
	default:
		return sheets.Open(ctx, settings.Sheets)
	}
}

func newNormalisers(settings domain.Settings) (*normalisers.Registry, error) {
	font := settings.Style.FontName
	text, err := plaintext.New(font, settings.Encodings...)
	if err != nil {
		return nil, err
	}
	return normalisers.NewRegistry(
		text,
		docxnormaliser.New(font),
		markdown.New(font),
		html.New(font),
	), nil
}

// loadKeywords fetches the table once. With the cache enabled, a
// successful fetch is saved under dataDir and a failed one falls back to it.
func loadKeywords(ctx context.Context, settings domain.Settings, dataDir string) (*domain.KeywordTable, error) {
	source, err := newKeywordSource(ctx, settings)
	if err != nil {
		return nil, err
	}
	if !settings.KeywordCache {
		return services.LoadKeywords(ctx, source)
	}

	cache, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("Keyword cache unavailable: %v", err)
		return services.LoadKeywords(ctx, source)
	}
	defer cache.Close()

	return services.LoadKeywords(ctx, services.NewCachedKeywordSource(source, cache))
}

func newReviewService(ctx context.Context, settings domain.Settings, dataDir string) (*services.ReviewService, error) {
	table, err := loadKeywords(ctx, settings, dataDir)
	if err != nil {
		return nil, err
	}
	registry, err := newNormalisers(settings)
	if err != nil {
		return nil, err
	}
	return services.NewReviewService(table, registry, docxemitter.New(settings.Style.FontName), settings)
}
