package brightcove

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	bchttp "bcsync/http"
)

// Production API base URLs. Override in Config for tests.
const (
	DefaultOAuthBase    = "https://oauth.brightcove.com/v4"
	DefaultCMSBase      = "https://cms.api.brightcove.com/v1"
	DefaultPlaybackBase = "https://edge.api.brightcove.com/playback/v1"
	DefaultPolicyBase   = "https://policy.api.brightcove.com/v1"
)

// Config holds client-level credentials, endpoints and executor settings.
type Config struct {
	// ClientID is the OAuth client id used for token acquisition.
	ClientID string
	// ClientSecret is the OAuth client secret.
	ClientSecret string
	// AccountID scopes every request. Overridable per call.
	AccountID string
	// PolicyKey, when set, routes playlist and video reads through the
	// Playback API with BCOV-Policy authorization instead of OAuth.
	PolicyKey string

	// OAuthBase is the token issuance endpoint base.
	OAuthBase string
	// CMSBase is the content-metadata API base.
	CMSBase string
	// PlaybackBase is the playback-policy API base.
	PlaybackBase string
	// PolicyBase is the policy-key issuance API base.
	PolicyBase string

	// ConcurrentRequestLimit caps simultaneously in-flight upstream requests
	// (default 20).
	ConcurrentRequestLimit int
	// RequestsPerSecond optionally rate-shapes requests (0 = off).
	RequestsPerSecond float64
	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// SkipScheduleCheck disables visibility filtering by default.
	// Overridable per call.
	SkipScheduleCheck bool

	// Clock supplies the visibility evaluation instant. Defaults to time.Now.
	Clock func() time.Time
}

// Client is the Brightcove remote API client. All requests issued by one
// Client share a single bounded executor, so the aggregate in-flight request
// count never exceeds the configured ceiling.
type Client struct {
	config *Config
	exec   *bchttp.Client
}

// New creates a Brightcove client. A nil config yields a client that must be
// configured per call.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.OAuthBase == "" {
		cfg.OAuthBase = DefaultOAuthBase
	}
	if cfg.CMSBase == "" {
		cfg.CMSBase = DefaultCMSBase
	}
	if cfg.PlaybackBase == "" {
		cfg.PlaybackBase = DefaultPlaybackBase
	}
	if cfg.PolicyBase == "" {
		cfg.PolicyBase = DefaultPolicyBase
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	execCfg := bchttp.DefaultConfig()
	execCfg.ConcurrentRequestLimit = cfg.ConcurrentRequestLimit
	execCfg.RequestsPerSecond = cfg.RequestsPerSecond
	if cfg.Timeout > 0 {
		execCfg.Timeout = cfg.Timeout
	}

	return &Client{
		config: cfg,
		exec:   bchttp.New(execCfg),
	}
}

// Close releases the executor's idle connections.
func (c *Client) Close() error { return c.exec.Close() }

// RequestOptions carries per-call credential and behavior overrides.
// Call-level values take precedence over client-level defaults; the zero
// value of a field means "not overridden".
type RequestOptions struct {
	// AccountID overrides the client-level account id.
	AccountID string
	// ClientID overrides the OAuth client id.
	ClientID string
	// ClientSecret overrides the OAuth client secret.
	ClientSecret string
	// AccessToken bypasses token acquisition entirely.
	AccessToken string
	// PolicyKey overrides the client-level policy key.
	PolicyKey string

	// SkipScheduleCheck bypasses visibility filtering for this call.
	SkipScheduleCheck bool
	// SortByReleaseDate sorts playlist videos descending by effective
	// release time (schedule start when parsable, else published_at).
	SortByReleaseDate bool
}

// GetPlaylist fetches a playlist by id. Upstream absence is returned as
// (nil, nil), never as an error; converting absence into a domain error is
// the caller's job.
func (c *Client) GetPlaylist(ctx context.Context, id string, opts *RequestOptions) (*Playlist, error) {
	if id == "" {
		return nil, &ConfigurationError{Field: "playlist id"}
	}
	account, err := c.accountID(opts)
	if err != nil {
		return nil, err
	}
	auth, base, err := c.readAuthorization(ctx, opts)
	if err != nil {
		return nil, err
	}

	var playlist Playlist
	res, err := c.exec.Do(ctx, bchttp.Request{
		URL:     fmt.Sprintf("%s/accounts/%s/playlists/%s", base, account, id),
		Headers: map[string]string{"Authorization": auth},
	}, &playlist)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}
	return &playlist, nil
}

// GetVideosByPlaylist fetches the member videos of a playlist. Videos outside
// their visibility window are excluded unless the schedule check is skipped.
func (c *Client) GetVideosByPlaylist(ctx context.Context, id string, opts *RequestOptions) ([]Video, error) {
	if id == "" {
		return nil, &ConfigurationError{Field: "playlist id"}
	}
	account, err := c.accountID(opts)
	if err != nil {
		return nil, err
	}
	auth, base, err := c.readAuthorization(ctx, opts)
	if err != nil {
		return nil, err
	}

	var videos []Video
	res, err := c.exec.Do(ctx, bchttp.Request{
		URL:     fmt.Sprintf("%s/accounts/%s/playlists/%s/videos", base, account, id),
		Headers: map[string]string{"Authorization": auth},
	}, &videos)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}

	videos = c.filterVisible(videos, opts)
	if opts != nil && opts.SortByReleaseDate {
		sortByReleaseDate(videos)
	}
	return videos, nil
}

// GetVideo fetches a single video by id. Both upstream absence and a video
// outside its visibility window resolve to (nil, nil).
func (c *Client) GetVideo(ctx context.Context, id string, opts *RequestOptions) (*Video, error) {
	if id == "" {
		return nil, &ConfigurationError{Field: "video id"}
	}
	account, err := c.accountID(opts)
	if err != nil {
		return nil, err
	}
	auth, base, err := c.readAuthorization(ctx, opts)
	if err != nil {
		return nil, err
	}

	var video Video
	res, err := c.exec.Do(ctx, bchttp.Request{
		URL:     fmt.Sprintf("%s/accounts/%s/videos/%s", base, account, id),
		Headers: map[string]string{"Authorization": auth},
	}, &video)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}
	if !c.skipScheduleCheck(opts) && !Visible(video.Schedule, c.now()) {
		return nil, nil
	}
	return &video, nil
}

// GetVideos lists the account's videos via the CMS API, with visibility
// filtering as in GetVideo.
func (c *Client) GetVideos(ctx context.Context, opts *RequestOptions) ([]Video, error) {
	account, err := c.accountID(opts)
	if err != nil {
		return nil, err
	}
	auth, err := c.bearerAuthorization(ctx, opts)
	if err != nil {
		return nil, err
	}

	var videos []Video
	if _, err := c.exec.Do(ctx, bchttp.Request{
		URL:     fmt.Sprintf("%s/accounts/%s/videos", c.config.CMSBase, account),
		Headers: map[string]string{"Authorization": auth},
	}, &videos); err != nil {
		return nil, err
	}
	return c.filterVisible(videos, opts), nil
}

// GetVideoSources fetches the media renditions of a video via the CMS API.
// Absence resolves to (nil, nil).
func (c *Client) GetVideoSources(ctx context.Context, id string, opts *RequestOptions) ([]Source, error) {
	if id == "" {
		return nil, &ConfigurationError{Field: "video id"}
	}
	account, err := c.accountID(opts)
	if err != nil {
		return nil, err
	}
	auth, err := c.bearerAuthorization(ctx, opts)
	if err != nil {
		return nil, err
	}

	var sources []Source
	res, err := c.exec.Do(ctx, bchttp.Request{
		URL:     fmt.Sprintf("%s/accounts/%s/videos/%s/sources", c.config.CMSBase, account, id),
		Headers: map[string]string{"Authorization": auth},
	}, &sources)
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}
	return sources, nil
}

// PlaylistCount returns the number of playlists in the account.
func (c *Client) PlaylistCount(ctx context.Context, opts *RequestOptions) (int, error) {
	return c.count(ctx, "counts/playlists", opts)
}

// VideoCount returns the number of videos in the account.
func (c *Client) VideoCount(ctx context.Context, opts *RequestOptions) (int, error) {
	return c.count(ctx, "counts/videos", opts)
}

// VideoCountByPlaylist returns the number of videos in a playlist.
func (c *Client) VideoCountByPlaylist(ctx context.Context, id string, opts *RequestOptions) (int, error) {
	if id == "" {
		return 0, &ConfigurationError{Field: "playlist id"}
	}
	return c.count(ctx, fmt.Sprintf("counts/playlists/%s/videos", id), opts)
}

// IssuePolicyKey mints a search-disabled Playback API policy key for the
// effective account via the policy-key issuance API.
func (c *Client) IssuePolicyKey(ctx context.Context, opts *RequestOptions) (*PolicyKey, error) {
	account, err := c.accountID(opts)
	if err != nil {
		return nil, err
	}
	auth, err := c.bearerAuthorization(ctx, opts)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]any{
		"key-data": map[string]any{"account-id": account},
	})
	if err != nil {
		return nil, err
	}

	var key PolicyKey
	if _, err := c.exec.Do(ctx, bchttp.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/accounts/%s/policy_keys", c.config.PolicyBase, account),
		Headers: map[string]string{
			"Authorization": auth,
			"Content-Type":  "application/json",
		},
		Body: bytes.NewReader(body),
	}, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// count fetches one CMS counts endpoint.
func (c *Client) count(ctx context.Context, path string, opts *RequestOptions) (int, error) {
	account, err := c.accountID(opts)
	if err != nil {
		return 0, err
	}
	auth, err := c.bearerAuthorization(ctx, opts)
	if err != nil {
		return 0, err
	}

	var count countResponse
	if _, err := c.exec.Do(ctx, bchttp.Request{
		URL:     fmt.Sprintf("%s/accounts/%s/%s", c.config.CMSBase, account, path),
		Headers: map[string]string{"Authorization": auth},
	}, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

// accountID resolves the effective account id: call-level wins over
// client-level; missing fails fast.
func (c *Client) accountID(opts *RequestOptions) (string, error) {
	if opts != nil && opts.AccountID != "" {
		return opts.AccountID, nil
	}
	if c.config.AccountID != "" {
		return c.config.AccountID, nil
	}
	return "", &ConfigurationError{Field: "account id"}
}

// policyKey resolves the effective policy key, empty when none is configured.
func (c *Client) policyKey(opts *RequestOptions) string {
	if opts != nil && opts.PolicyKey != "" {
		return opts.PolicyKey
	}
	return c.config.PolicyKey
}

// readAuthorization resolves the authorization header and API base for a
// playlist or video read: the Playback API with BCOV-Policy when a policy key
// is in effect, else the CMS API with a fresh Bearer token.
func (c *Client) readAuthorization(ctx context.Context, opts *RequestOptions) (header, base string, err error) {
	if key := c.policyKey(opts); key != "" {
		return PolicyAuthorization(key), c.config.PlaybackBase, nil
	}
	header, err = c.bearerAuthorization(ctx, opts)
	if err != nil {
		return "", "", err
	}
	return header, c.config.CMSBase, nil
}

// bearerAuthorization acquires a token and builds the Bearer header.
func (c *Client) bearerAuthorization(ctx context.Context, opts *RequestOptions) (string, error) {
	var tokenOpts *TokenOptions
	if opts != nil {
		tokenOpts = &TokenOptions{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			AccessToken:  opts.AccessToken,
		}
	}
	token, err := c.AccessToken(ctx, tokenOpts)
	if err != nil {
		return "", err
	}
	return BearerAuthorization(token.AccessToken), nil
}

// skipScheduleCheck resolves the effective schedule-check flag.
func (c *Client) skipScheduleCheck(opts *RequestOptions) bool {
	if opts != nil && opts.SkipScheduleCheck {
		return true
	}
	return c.config.SkipScheduleCheck
}

// filterVisible drops videos outside their visibility window, preserving
// input order. A nil slice stays nil.
func (c *Client) filterVisible(videos []Video, opts *RequestOptions) []Video {
	if c.skipScheduleCheck(opts) || videos == nil {
		return videos
	}
	now := c.now()
	visible := videos[:0]
	for _, v := range videos {
		if Visible(v.Schedule, now) {
			visible = append(visible, v)
		}
	}
	return visible
}

// sortByReleaseDate sorts videos descending by effective release time.
// The sort is stable: ties keep input order. Videos without any parsable
// release time sort last.
func sortByReleaseDate(videos []Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		ti, iOK := releaseTime(&videos[i])
		tj, jOK := releaseTime(&videos[j])
		if iOK != jOK {
			return iOK
		}
		return ti.After(tj)
	})
}

// now returns the visibility evaluation instant from the injected clock.
func (c *Client) now() time.Time {
	return c.config.Clock()
}
