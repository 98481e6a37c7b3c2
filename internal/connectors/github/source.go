package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/adcheck/internal/connectors/keywordfile"
	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.KeywordSource = (*Source)(nil)

// Source reads a keyword file from one repository path.
type Source struct {
	client *Client
	owner  string
	repo   string
	path   string
	ref    string
}

// New creates a source. cfg.Repository must be "owner/name".
func New(client *Client, cfg domain.GitHubSettings) (*Source, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(cfg.Repository), "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: github repository must be owner/name, got %q",
			domain.ErrInvalidInput, cfg.Repository)
	}
	path := strings.TrimPrefix(strings.TrimSpace(cfg.Path), "/")
	if path == "" {
		path = domain.DefaultGitHubPath
	}

	return &Source{client: client, owner: owner, repo: repo, path: path, ref: cfg.Ref}, nil
}

// Name identifies the repository file, including the ref when set.
func (s *Source) Name() string {
	name := fmt.Sprintf("github:%s/%s/%s", s.owner, s.repo, s.path)
	if s.ref != "" {
		name += "@" + s.ref
	}
	return name
}

// FetchKeywordNotes downloads and parses the keyword file. Errors wrap
// domain.ErrKeywordSource.
func (s *Source) FetchKeywordNotes(ctx context.Context) (*domain.KeywordTable, error) {
	data, err := s.client.FileContent(ctx, s.owner, s.repo, s.path, s.ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrKeywordSource, s.Name(), err)
	}

	table, err := keywordfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	logger.Debug("Read %d keywords from %s", table.Len(), s.Name())
	return table, nil
}
