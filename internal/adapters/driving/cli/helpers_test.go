package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/adcheck/internal/adapters/driven/output/filesystem"
	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
)

// stubReview counts "무료" as the only keyword and echoes the input.
type stubReview struct {
	mu       sync.Mutex
	settings domain.Settings
	err      error
	uploads  []domain.Upload
}

var _ driving.ReviewService = (*stubReview)(nil)

func (s *stubReview) Review(_ context.Context, upload domain.Upload) (*domain.ReviewResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads = append(s.uploads, upload)
	if s.err != nil {
		return nil, s.err
	}
	if upload.Format == domain.FormatUnknown {
		if _, err := domain.FormatFromFilename(upload.Name); err != nil {
			return nil, err
		}
	}
	return &domain.ReviewResult{
		ID:       "test",
		FileName: s.settings.OutputName(upload.Name),
		MIMEType: domain.MIMEDocx,
		Content:  append([]byte("DOCX:"), upload.Content...),
		Stats:    domain.HighlightStats{Matches: strings.Count(string(upload.Content), "무료")},
	}, nil
}

func (s *stubReview) Keywords() *domain.KeywordTable {
	table := domain.NewKeywordTable()
	table.Add("무료", "과장 광고 표현")
	table.Add("최고", "")
	return table
}

func (s *stubReview) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatPlainText, domain.FormatRichDocument}
}

func (s *stubReview) FindKeywords(string) []domain.Match { return nil }

func (s *stubReview) OutputName(name string) string {
	return s.settings.OutputName(name)
}

func (s *stubReview) Uploads() []domain.Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Upload(nil), s.uploads...)
}

type testEnv struct {
	runtime   *Runtime
	review    *stubReview
	store     *file.ConfigStore
	outDir    string
	configDir string

	// keywordErr makes NewReviewService fail like a keyword fetch failure.
	keywordErr error
}

// newTestEnv installs a runtime backed by a temp config dir and output dir.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{configDir: t.TempDir(), outDir: t.TempDir()}

	store, err := file.NewConfigStore(env.configDir)
	require.NoError(t, err)
	env.store = store

	settings := domain.DefaultSettings()
	settings.OutputDir = env.outDir
	env.review = &stubReview{settings: settings}

	env.runtime = &Runtime{
		Config:   store,
		Settings: settings,
		NewReviewService: func(context.Context) (driving.ReviewService, error) {
			if env.keywordErr != nil {
				return nil, env.keywordErr
			}
			return env.review, nil
		},
		NewOutputWriter: func(dir string) (driven.OutputWriter, error) {
			return filesystem.New(dir)
		},
	}

	old := runtimeFactory
	runtimeFactory = func(string) (*Runtime, error) { return env.runtime, nil }
	t.Cleanup(func() { runtimeFactory = old })

	return env
}

func resetFlags() {
	configDir = ""
	verbose = false
	reviewOutputDir = ""
	reviewFormat = ""
	reviewStdout = false
	keywordsJSON = false
	keywordsExport = ""
	watchOutputDir = ""
	watchSettle = time.Second
	mcpHTTPAddr = ""
	versionShort = false
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
