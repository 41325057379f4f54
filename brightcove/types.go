// Package brightcove provides a client for the Brightcove CMS, Playback and
// OAuth APIs. It exposes one method per remote resource, applies
// schedule-based visibility filtering, and routes every request through a
// shared bounded executor so the upstream concurrency ceiling is never
// exceeded.
package brightcove

import (
	"fmt"
)

// Schedule is the optional visibility window attached to a video record.
// Bounds are RFC 3339 timestamps; a malformed bound is ignored.
type Schedule struct {
	// StartsAt is the instant the video becomes visible (exclusive).
	StartsAt string `json:"starts_at,omitempty"`
	// EndsAt is the instant the video stops being visible (inclusive).
	EndsAt string `json:"ends_at,omitempty"`
}

// ImageSource is one rendition of a poster or thumbnail image.
type ImageSource struct {
	Src    string `json:"src"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// Image is an upstream image record with its rendition list.
type Image struct {
	Src     string        `json:"src,omitempty"`
	Sources []ImageSource `json:"sources,omitempty"`
}

// ImageSet groups the poster and thumbnail images of a video.
type ImageSet struct {
	Poster    *Image `json:"poster,omitempty"`
	Thumbnail *Image `json:"thumbnail,omitempty"`
}

// Video is an upstream video record as returned by the CMS API.
type Video struct {
	// ID is the Brightcove video id.
	ID string `json:"id"`

	// Name is the video title.
	Name string `json:"name"`

	// Description is the short description.
	Description string `json:"description,omitempty"`

	// LongDescription is preferred over Description when present.
	LongDescription string `json:"long_description,omitempty"`

	// Duration is the video length in milliseconds.
	Duration int64 `json:"duration,omitempty"`

	// PublishedAt is the RFC 3339 publication timestamp.
	PublishedAt string `json:"published_at,omitempty"`

	// Images holds the poster and thumbnail renditions.
	Images *ImageSet `json:"images,omitempty"`

	// Schedule is the optional visibility window. Absent means always visible.
	Schedule *Schedule `json:"schedule,omitempty"`
}

// Playlist is an upstream playlist record.
type Playlist struct {
	// ID is the Brightcove playlist id.
	ID string `json:"id"`

	// Name is the playlist title.
	Name string `json:"name"`

	// Description is the playlist description.
	Description string `json:"description,omitempty"`

	// Type is the upstream playlist type (e.g. "EXPLICIT").
	Type string `json:"type,omitempty"`

	// VideoIDs lists the member video ids for explicit playlists.
	VideoIDs []string `json:"video_ids,omitempty"`
}

// Source is a raw media rendition of a video.
type Source struct {
	Src          string `json:"src,omitempty"`
	Type         string `json:"type,omitempty"`
	Container    string `json:"container,omitempty"`
	Codec        string `json:"codec,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	EncodingRate int    `json:"encoding_rate,omitempty"`
	AssetID      string `json:"asset_id,omitempty"`
}

// AccessToken is an ephemeral OAuth token. It is fetched fresh per logical
// operation; this client never caches it across calls.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// PolicyKey is a low-privilege credential for the Playback API.
type PolicyKey struct {
	KeyString string `json:"key-string"`
}

// countResponse is the body of the CMS counts endpoints.
type countResponse struct {
	Count int `json:"count"`
}

// ConfigurationError indicates a required credential or request parameter was
// missing after call-level and client-level resolution. It fails fast and is
// never retried.
type ConfigurationError struct {
	// Field names the missing credential or parameter.
	Field string
}

// Error returns a string representation of the configuration error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("brightcove: missing required %s", e.Field)
}
