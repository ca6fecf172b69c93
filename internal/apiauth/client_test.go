package apiauth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bttk/canvas-mcp/pkg/config"
)

func TestTokenSource(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "canvas:write", r.PostForm.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "abc", "token_type": "bearer", "expires_in": 3600}`)
	}))
	defer ts.Close()

	src := TokenSource(context.Background(), config.OAuth{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     ts.URL,
		Scopes:       []string{"canvas:write"},
	}, ts.Client())

	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)

	// Cached until expiry.
	_, err = src.Token()
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}
