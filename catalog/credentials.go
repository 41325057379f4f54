package catalog

import (
	"bcsync/brightcove"
)

// Credentials are the Brightcove credentials attached to a channel or
// configured client-wide. Values are immutable per call; overrides copy,
// never mutate.
type Credentials struct {
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	AccountID    string `json:"accountId,omitempty"`
	PolicyKey    string `json:"policyKey,omitempty"`
}

// MergeCredentials merges an override onto a base with defined-field-wins
// semantics: every non-empty override field replaces the base value, every
// empty field keeps it. Pure; neither argument is mutated.
func MergeCredentials(base, override Credentials) Credentials {
	merged := base
	if override.ClientID != "" {
		merged.ClientID = override.ClientID
	}
	if override.ClientSecret != "" {
		merged.ClientSecret = override.ClientSecret
	}
	if override.AccountID != "" {
		merged.AccountID = override.AccountID
	}
	if override.PolicyKey != "" {
		merged.PolicyKey = override.PolicyKey
	}
	return merged
}

// requestOptions lowers merged credentials and the effective schedule flag
// into per-call client options.
func requestOptions(creds Credentials, skipScheduleCheck bool) *brightcove.RequestOptions {
	return &brightcove.RequestOptions{
		AccountID:         creds.AccountID,
		ClientID:          creds.ClientID,
		ClientSecret:      creds.ClientSecret,
		PolicyKey:         creds.PolicyKey,
		SkipScheduleCheck: skipScheduleCheck,
	}
}
