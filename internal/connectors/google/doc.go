// Package google provides shared infrastructure for Google API keyword
// sources.
//
// It contains:
//   - Credential loading that yields an oauth2.TokenSource from a
//     service-account key file or Application Default Credentials
//   - Service factories for creating Google API clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	ts, err := google.TokenSource(ctx, credentialsFile, google.ScopeSheetsReadonly)
//	svc, err := google.NewSheetsService(ctx, option.WithTokenSource(ts))
//
// # OAuth2 Scopes
//
// Only https://www.googleapis.com/auth/spreadsheets.readonly is requested.
// The keyword sheet must be shared with the service account's email.
package google
