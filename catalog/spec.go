// Package catalog resolves playlist- and video-sourced catalog specs against
// the Brightcove API and shapes the results into normalized catalog entities.
// It is the layer between the orchestration bus and the remote API client:
// it merges per-channel credential overrides, converts upstream absence into
// domain errors, and fans playlist members out as child video specs.
package catalog

import (
	"bcsync/brightcove"
)

// Provider is the channel secrets key for Brightcove credentials.
const Provider = "brightcove"

// Spec types and sources understood by this adapter.
const (
	TypeCollectionSpec = "collectionSpec"
	TypeVideoSpec      = "videoSpec"

	// SourceVideo is the source assigned to fanned-out child video specs.
	SourceVideo = "brightcove-video"
)

// Spec is a request-for-resource descriptor submitted to the orchestration
// bus. It identifies a channel, a resource type, and the provider-specific
// lookup parameters.
type Spec struct {
	// ID is the bus-assigned spec id, when present.
	ID string `json:"id,omitempty"`

	// Channel identifies the tenant whose secrets scope this fetch.
	Channel string `json:"channel"`

	// Type is the spec type (e.g. "collectionSpec", "videoSpec").
	Type string `json:"type"`

	// Source is the provider source string used in entity ids.
	Source string `json:"source"`

	// Playlist holds the playlist lookup parameter for collection specs.
	Playlist *ResourceRef `json:"playlist,omitempty"`

	// Video holds the video lookup parameter for video specs.
	Video *ResourceRef `json:"video,omitempty"`

	// SkipScheduleCheck bypasses schedule-based visibility filtering.
	SkipScheduleCheck bool `json:"skipScheduleCheck,omitempty"`
}

// ResourceRef identifies one upstream resource by id.
type ResourceRef struct {
	ID string `json:"id"`
}

// ChildVideoSpec is the spec submitted to the bus for each member of a
// resolved playlist. Unlike an inbound Spec it embeds the full upstream video
// record, so downstream resolution does not refetch it.
type ChildVideoSpec struct {
	ID      string            `json:"id,omitempty"`
	Channel string            `json:"channel"`
	Type    string            `json:"type"`
	Source  string            `json:"source"`
	Video   *brightcove.Video `json:"video"`
}

// Channel is a tenant scope holding provider credentials, keyed by provider
// name.
type Channel struct {
	ID      string                 `json:"id"`
	Secrets map[string]Credentials `json:"secrets,omitempty"`
}

// ImageVariant is a normalized image rendition.
type ImageVariant struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Label  string `json:"label"`
}

// SourceVariant is a normalized media rendition.
type SourceVariant struct {
	URL        string `json:"url"`
	Container  string `json:"container"`
	MimeType   string `json:"mimeType"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MaxBitrate int    `json:"maxBitrate"`
	Label      string `json:"label"`
}

// VideoEntity is the normalized catalog shape of one upstream video.
type VideoEntity struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Images      []ImageVariant  `json:"images"`
	Sources     []SourceVariant `json:"sources"`
	Duration    int64           `json:"duration"`
	ReleaseDate string          `json:"releaseDate"`
}

// CollectionEntity is the normalized catalog shape of one upstream playlist.
type CollectionEntity struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Images        []ImageVariant `json:"images"`
	Relationships *Relationships `json:"relationships,omitempty"`
}

// Relationships links a collection to its member entities.
type Relationships struct {
	Entities RelationshipData `json:"entities"`
}

// RelationshipData is the ordered member reference list of a collection.
type RelationshipData struct {
	Data []EntityRef `json:"data"`
}

// EntityRef references one bus-created entity by resource id and type.
type EntityRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}
