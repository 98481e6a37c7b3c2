package google

import (
	"context"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ScopeSheetsReadonly grants read access to spreadsheets.
const ScopeSheetsReadonly = sheets.SpreadsheetsReadonlyScope

// NewSheetsService creates a Google Sheets API service. Callers pass
// option.WithTokenSource for production use; tests pass an endpoint and
// option.WithoutAuthentication.
func NewSheetsService(ctx context.Context, opts ...option.ClientOption) (*sheets.Service, error) {
	return sheets.NewService(ctx, opts...)
}
