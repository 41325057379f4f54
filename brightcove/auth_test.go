package brightcove

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationHeaders(t *testing.T) {
	// base64("alice:s3cret")
	assert.Equal(t, "Basic YWxpY2U6czNjcmV0", BasicAuthorization("alice", "s3cret"))
	assert.Equal(t, "Bearer tok-1", BearerAuthorization("tok-1"))
	assert.Equal(t, "BCOV-Policy pk-1", PolicyAuthorization("pk-1"))
}

func TestAccessTokenShortCircuit(t *testing.T) {
	client := New(&Config{OAuthBase: "http://unreachable.invalid"})
	defer client.Close()

	token, err := client.AccessToken(context.Background(), &TokenOptions{AccessToken: "preissued"})
	require.NoError(t, err)
	assert.Equal(t, "preissued", token.AccessToken)
}

func TestAccessTokenMissingCredentials(t *testing.T) {
	client := New(&Config{})
	defer client.Close()

	var confErr *ConfigurationError

	_, err := client.AccessToken(context.Background(), nil)
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "client id", confErr.Field)

	_, err = client.AccessToken(context.Background(), &TokenOptions{ClientID: "id-only"})
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "client secret", confErr.Field)
}

func TestAccessTokenRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/access_token", r.URL.Path)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
		assert.Equal(t, BasicAuthorization("alice", "s3cret"), r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-42","token_type":"Bearer","expires_in":300}`))
	}))
	defer server.Close()

	client := New(&Config{
		ClientID:     "alice",
		ClientSecret: "s3cret",
		OAuthBase:    server.URL,
	})
	defer client.Close()

	token, err := client.AccessToken(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "tok-42", token.AccessToken)
	assert.Equal(t, 300, token.ExpiresIn)
}

func TestAccessTokenCallOverridesClientCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, BasicAuthorization("override", "override-secret"), r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer server.Close()

	client := New(&Config{
		ClientID:     "default",
		ClientSecret: "default-secret",
		OAuthBase:    server.URL,
	})
	defer client.Close()

	_, err := client.AccessToken(context.Background(), &TokenOptions{
		ClientID:     "override",
		ClientSecret: "override-secret",
	})
	require.NoError(t, err)
}

func TestAccessTokenPropagatesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"access_denied"}`))
	}))
	defer server.Close()

	client := New(&Config{
		ClientID:     "alice",
		ClientSecret: "wrong",
		OAuthBase:    server.URL,
	})
	defer client.Close()

	_, err := client.AccessToken(context.Background(), nil)
	require.Error(t, err)
}
