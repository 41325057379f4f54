package catalog

import (
	"context"

	"bcsync/brightcove"
)

// Domain error codes for upstream absence.
const (
	CodePlaylistNotFound = "PLAYLIST_NOT_FOUND"
	CodeVideoNotFound    = "VIDEO_NOT_FOUND"
)

// NotFoundError is the typed rejection for a spec whose upstream resource is
// absent. It is broadcast as an error event and returned to the caller; the
// caller never needs to inspect the broadcast to observe the failure.
type NotFoundError struct {
	// Code is the domain error code (CodePlaylistNotFound, CodeVideoNotFound).
	Code string
	// Message is the caller-facing failure message.
	Message string
}

// Error returns the caller-facing message.
func (e *NotFoundError) Error() string { return e.Message }

// MediaAPI is the remote fetch dependency of the resolvers, implemented by
// *brightcove.Client.
type MediaAPI interface {
	GetPlaylist(ctx context.Context, id string, opts *brightcove.RequestOptions) (*brightcove.Playlist, error)
	GetVideosByPlaylist(ctx context.Context, id string, opts *brightcove.RequestOptions) ([]brightcove.Video, error)
	GetVideo(ctx context.Context, id string, opts *brightcove.RequestOptions) (*brightcove.Video, error)
	GetVideoSources(ctx context.Context, id string, opts *brightcove.RequestOptions) ([]brightcove.Source, error)
}

// resolveCredentials looks up the spec's channel and merges its provider
// secrets onto the client-level defaults, channel fields winning per-field.
// A nil store or empty channel id yields the defaults unchanged.
func resolveCredentials(ctx context.Context, store ChannelStore, defaults Credentials, channelID string) (Credentials, error) {
	if store == nil || channelID == "" {
		return defaults, nil
	}
	channel, err := store.Channel(ctx, channelID)
	if err != nil {
		return Credentials{}, err
	}
	return MergeCredentials(defaults, channel.Secrets[Provider]), nil
}
