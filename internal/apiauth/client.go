package apiauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/bttk/canvas-mcp/pkg/config"
)

// TokenSource returns a token source that obtains access tokens for the
// resource API with the OAuth2 client-credentials grant. Tokens are cached
// until they expire.
//
// httpClient is used to reach the token endpoint; nil means http.DefaultClient.
func TokenSource(ctx context.Context, cfg config.OAuth, httpClient *http.Client) oauth2.TokenSource {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	return cc.TokenSource(ctx)
}
