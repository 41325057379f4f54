package brightcove

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"

	bchttp "bcsync/http"
)

// BasicAuthorization builds a Basic authorization header value from a client
// id and secret.
func BasicAuthorization(id, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(id+":"+secret))
}

// BearerAuthorization builds a Bearer authorization header value from an
// OAuth access token.
func BearerAuthorization(token string) string {
	return "Bearer " + token
}

// PolicyAuthorization builds a BCOV-Policy authorization header value from a
// Playback API policy key.
func PolicyAuthorization(key string) string {
	return "BCOV-Policy " + key
}

// TokenOptions carries per-call credential overrides for token acquisition.
type TokenOptions struct {
	// ClientID overrides the client-level OAuth client id.
	ClientID string
	// ClientSecret overrides the client-level OAuth client secret.
	ClientSecret string
	// AccessToken, when set, is returned as-is without a token request.
	AccessToken string
}

// AccessToken acquires an OAuth access token via the client-credentials
// grant. An explicitly supplied token short-circuits the network call.
// Credentials fall back to the client-level defaults; a missing id or secret
// fails with *ConfigurationError. Tokens are never cached across calls.
func (c *Client) AccessToken(ctx context.Context, opts *TokenOptions) (*AccessToken, error) {
	if opts == nil {
		opts = &TokenOptions{}
	}
	if opts.AccessToken != "" {
		return &AccessToken{AccessToken: opts.AccessToken}, nil
	}

	id := fallback(opts.ClientID, c.config.ClientID)
	if id == "" {
		return nil, &ConfigurationError{Field: "client id"}
	}
	secret := fallback(opts.ClientSecret, c.config.ClientSecret)
	if secret == "" {
		return nil, &ConfigurationError{Field: "client secret"}
	}

	var token AccessToken
	res, err := c.exec.Do(ctx, bchttp.Request{
		Method: http.MethodPost,
		URL:    c.config.OAuthBase + "/access_token",
		Query:  url.Values{"grant_type": []string{"client_credentials"}},
		Headers: map[string]string{
			"Authorization": BasicAuthorization(id, secret),
		},
	}, &token)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, &bchttp.UpstreamError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	}
	return &token, nil
}

// fallback returns the override when defined, else the default.
func fallback(override, def string) string {
	if override != "" {
		return override
	}
	return def
}
