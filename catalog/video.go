package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"bcsync/brightcove"
)

// VideoResolver resolves video-sourced specs into normalized video entities.
// It performs no bus fan-out: a video spec maps to exactly one entity.
type VideoResolver struct {
	// API is the remote fetch dependency.
	API MediaAPI
	// Channels looks up per-channel credential overrides. Optional.
	Channels ChannelStore
	// Bus receives error-level broadcasts on upstream absence. Optional.
	Bus Bus
	// Defaults are the client-level credentials merged under channel secrets.
	Defaults Credentials
	// Log is the resolver's logger.
	Log zerolog.Logger
}

// VideoRequest is one inbound "resolve video-sourced video" query.
type VideoRequest struct {
	Spec *Spec
}

// Resolve fetches the spec's video and its media renditions and returns the
// transformed entity. A video that is absent upstream, or invisible under its
// schedule window, yields a *NotFoundError with code VIDEO_NOT_FOUND and one
// error-level broadcast carrying the original spec.
func (r *VideoResolver) Resolve(ctx context.Context, req *VideoRequest) (*VideoEntity, error) {
	spec := req.Spec
	if spec == nil || spec.Video == nil || spec.Video.ID == "" {
		return nil, &brightcove.ConfigurationError{Field: "video id"}
	}
	videoID := spec.Video.ID

	creds, err := resolveCredentials(ctx, r.Channels, r.Defaults, spec.Channel)
	if err != nil {
		return nil, err
	}
	opts := requestOptions(creds, spec.SkipScheduleCheck)

	video, err := r.API.GetVideo(ctx, videoID, opts)
	if err != nil {
		return nil, err
	}
	if video == nil {
		notFound := &NotFoundError{
			Code:    CodeVideoNotFound,
			Message: fmt.Sprintf("Video not found for id %q", videoID),
		}
		if r.Bus != nil {
			r.Bus.Broadcast(ctx, LevelError, EventError, &ErrorEvent{
				Spec:    spec,
				Error:   notFound.Message,
				Code:    notFound.Code,
				Message: "video not found",
			})
		}
		r.Log.Error().Str("video_id", videoID).Msg("video not found")
		return nil, notFound
	}

	sources, err := r.API.GetVideoSources(ctx, videoID, opts)
	if err != nil {
		return nil, err
	}

	entity := VideoEntityFromVideo(spec, video, sources)
	r.Log.Debug().Str("video_id", videoID).Str("entity_id", entity.ID).
		Int("sources", len(entity.Sources)).Msg("video resolved")
	return entity, nil
}
