package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// TokenSource loads credentials for the given scopes. A non-empty
// credentialsFile must hold a service-account JSON key; otherwise
// Application Default Credentials are used.
func TokenSource(ctx context.Context, credentialsFile string, scopes ...string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		creds, err := googleoauth.FindDefaultCredentials(ctx, scopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: no credentials file and no default credentials: %v", ErrUnauthorized, err)
		}
		return creds.TokenSource, nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return TokenSourceFromJSON(ctx, data, scopes...)
}

// TokenSourceFromJSON parses a service-account or authorized-user JSON key.
func TokenSourceFromJSON(ctx context.Context, data []byte, scopes ...string) (oauth2.TokenSource, error) {
	creds, err := googleoauth.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse credentials: %v", ErrUnauthorized, err)
	}
	return creds.TokenSource, nil
}
