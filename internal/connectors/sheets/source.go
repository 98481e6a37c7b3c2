package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/adcheck/internal/connectors/google"
	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.KeywordSource = (*Source)(nil)

var (
	urlIDPattern = regexp.MustCompile(`/spreadsheets/d/([A-Za-z0-9_-]+)`)
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Source fetches keyword/note rows from one worksheet.
type Source struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	keywordCol    int
	noteCol       int
	firstCol      int
	lastCol       int
	startRow      int
	limiter       *google.Limiter
}

// Open authenticates with the configured credentials and creates a source.
func Open(ctx context.Context, cfg domain.SheetsSettings) (*Source, error) {
	ts, err := google.TokenSource(ctx, cfg.CredentialsFile, google.ScopeSheetsReadonly)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeywordSource, err)
	}
	svc, err := google.NewSheetsService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets service: %w", domain.ErrKeywordSource, err)
	}
	return New(svc, cfg)
}

// New creates a source using an existing Sheets service.
func New(svc *sheets.Service, cfg domain.SheetsSettings) (*Source, error) {
	id, err := ParseSpreadsheetID(cfg.Spreadsheet)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Worksheet) == "" {
		return nil, fmt.Errorf("%w: worksheet name is required", domain.ErrInvalidInput)
	}

	keywordCol, err := ColumnIndex(cfg.KeywordColumn)
	if err != nil {
		return nil, err
	}
	noteCol, err := ColumnIndex(cfg.NoteColumn)
	if err != nil {
		return nil, err
	}
	startRow := cfg.StartRow
	if startRow < 1 {
		startRow = 1
	}

	return &Source{
		svc:           svc,
		spreadsheetID: id,
		worksheet:     cfg.Worksheet,
		keywordCol:    keywordCol,
		noteCol:       noteCol,
		firstCol:      min(keywordCol, noteCol),
		lastCol:       max(keywordCol, noteCol),
		startRow:      startRow,
		limiter:       google.NewLimiter(google.SheetsReadsPerMinute),
	}, nil
}

// Name identifies the spreadsheet and worksheet.
func (s *Source) Name() string {
	return fmt.Sprintf("sheets:%s/%s", s.spreadsheetID, s.worksheet)
}

// Range returns the A1 range read by FetchKeywordNotes, open-ended downwards.
func (s *Source) Range() string {
	sheet := "'" + strings.ReplaceAll(s.worksheet, "'", "''") + "'"
	return fmt.Sprintf("%s!%s%d:%s", sheet, ColumnName(s.firstCol), s.startRow, ColumnName(s.lastCol))
}

// FetchKeywordNotes reads the worksheet once. Errors wrap
// domain.ErrKeywordSource and one of the google package sentinels.
func (s *Source) FetchKeywordNotes(ctx context.Context) (*domain.KeywordTable, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeywordSource, err)
	}

	rng := s.Range()
	logger.Debug("Reading %s from spreadsheet %s", rng, s.spreadsheetID)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		MajorDimension("ROWS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		if google.IsRateLimited(err) {
			s.limiter.Backoff(time.Duration(google.RetryAfter(err)) * time.Second)
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrKeywordSource, s.Name(), google.WrapError(err))
	}

	table := domain.NewKeywordTable()
	skipped := 0
	for _, row := range resp.Values {
		keyword := cell(row, s.keywordCol-s.firstCol)
		note := cell(row, s.noteCol-s.firstCol)
		if !table.Add(keyword, note) {
			skipped++
		}
	}
	logger.Debug("Read %d rows, %d keywords, %d blank rows skipped", len(resp.Values), table.Len(), skipped)

	return table, nil
}

func cell(row []interface{}, i int) string {
	if i < 0 || i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}

// ParseSpreadsheetID accepts a bare spreadsheet ID or a full sheet URL.
func ParseSpreadsheetID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := urlIDPattern.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if idPattern.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q is not a spreadsheet ID or URL", domain.ErrInvalidInput, s)
}

// ColumnIndex converts a column letter such as "B" or "AA" to a 0-based index.
func ColumnIndex(col string) (int, error) {
	col = strings.ToUpper(strings.TrimSpace(col))
	if col == "" {
		return 0, fmt.Errorf("%w: empty column", domain.ErrInvalidInput)
	}
	n := 0
	for _, r := range col {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: %q is not a column letter", domain.ErrInvalidInput, col)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}

// ColumnName converts a 0-based index back to its column letters.
func ColumnName(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}
