package auth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2 adapts any oauth2.TokenSource. The source handles caching and
// refresh; this wrapper only extracts the access token.
type OAuth2 struct {
	Source oauth2.TokenSource
}

func (o *OAuth2) Token(_ context.Context) (string, error) {
	tok, err := o.Source.Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// ClientCredentials builds a provider for the OAuth2 client-credentials
// grant with a shared secret. Tokens are fetched lazily and reused until
// they expire.
func ClientCredentials(tokenURL, clientID, clientSecret string, scopes ...string) *OAuth2 {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}
	return &OAuth2{Source: cfg.TokenSource(context.Background())}
}
