package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"bcsync/brightcove"
)

// PlaylistResolver resolves playlist-sourced specs into normalized collection
// entities. Each member video is fanned out to the bus as a child video spec;
// the collection's relationship links reference the bus-created resources in
// submission order.
type PlaylistResolver struct {
	// API is the remote fetch dependency.
	API MediaAPI
	// Channels looks up per-channel credential overrides. Optional.
	Channels ChannelStore
	// Bus receives child spec commands and error broadcasts.
	Bus Bus
	// Defaults are the client-level credentials merged under channel secrets.
	Defaults Credentials
	// Log is the resolver's logger.
	Log zerolog.Logger
}

// PlaylistRequest is one inbound "resolve playlist-sourced collection" query.
// Collection optionally carries a partial entity supplied by the caller;
// transform output wins on conflicting fields.
type PlaylistRequest struct {
	Spec       *Spec
	Collection *CollectionEntity
}

// Resolve fetches the spec's playlist, fans its member videos out as child
// video specs, and returns the assembled collection entity. A playlist absent
// upstream yields a *NotFoundError with code PLAYLIST_NOT_FOUND and one
// error-level broadcast carrying the original spec. A failure submitting any
// child spec fails the whole resolution; there is no partial-success mode.
func (r *PlaylistResolver) Resolve(ctx context.Context, req *PlaylistRequest) (*CollectionEntity, error) {
	spec := req.Spec
	if spec == nil || spec.Playlist == nil || spec.Playlist.ID == "" {
		return nil, &brightcove.ConfigurationError{Field: "playlist id"}
	}
	playlistID := spec.Playlist.ID

	creds, err := resolveCredentials(ctx, r.Channels, r.Defaults, spec.Channel)
	if err != nil {
		return nil, err
	}
	opts := requestOptions(creds, spec.SkipScheduleCheck)

	playlist, err := r.API.GetPlaylist(ctx, playlistID, opts)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		notFound := &NotFoundError{
			Code:    CodePlaylistNotFound,
			Message: fmt.Sprintf("Playlist not found for id %q", playlistID),
		}
		if r.Bus != nil {
			r.Bus.Broadcast(ctx, LevelError, EventError, &ErrorEvent{
				Spec:    spec,
				Error:   notFound.Message,
				Code:    notFound.Code,
				Message: "playlist not found",
			})
		}
		r.Log.Error().Str("playlist_id", playlistID).Msg("playlist not found")
		return nil, notFound
	}

	collection := mergeCollection(req.Collection, CollectionEntityFromPlaylist(spec, playlist))

	videos, err := r.API.GetVideosByPlaylist(ctx, playlistID, opts)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(videos)

	refs, err := r.fanOut(ctx, spec, videos)
	if err != nil {
		return nil, err
	}
	collection.Relationships = &Relationships{Entities: RelationshipData{Data: refs}}

	r.Log.Debug().Str("playlist_id", playlistID).Str("entity_id", collection.ID).
		Int("videos", len(refs)).Msg("playlist resolved")
	return collection, nil
}

// fanOut submits one child video spec per member video. Submissions run
// concurrently but results are collected by submission index, so the returned
// references preserve the (newest-to-oldest) dispatch order regardless of
// completion order. An empty video list yields an empty, non-nil slice.
func (r *PlaylistResolver) fanOut(ctx context.Context, spec *Spec, videos []brightcove.Video) ([]EntityRef, error) {
	refs := make([]EntityRef, len(videos))
	g, ctx := errgroup.WithContext(ctx)
	for i := range videos {
		i := i
		child := childVideoSpec(spec, &videos[i])
		g.Go(func() error {
			result, err := r.Bus.SendCommand(ctx, CommandCreateSpec, child)
			if err != nil {
				return err
			}
			refs[i] = EntityRef{
				ID:   result.Resource,
				Type: strings.TrimSuffix(result.Type, "Spec"),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// childVideoSpec builds the create-spec payload for one playlist member.
func childVideoSpec(spec *Spec, video *brightcove.Video) *ChildVideoSpec {
	child := &ChildVideoSpec{
		Channel: spec.Channel,
		Type:    TypeVideoSpec,
		Source:  SourceVideo,
		Video:   video,
	}
	if video.ID != "" {
		child.ID = fmt.Sprintf("spec-%s-%s", child.Source, video.ID)
	}
	return child
}

// mergeCollection merges the transform output onto a caller-supplied partial
// collection; transform fields win on conflict. A nil partial passes the
// transform output through.
func mergeCollection(partial, transformed *CollectionEntity) *CollectionEntity {
	if partial == nil {
		return transformed
	}
	merged := *partial
	merged.ID = transformed.ID
	merged.Title = transformed.Title
	merged.Description = transformed.Description
	merged.Images = transformed.Images
	return &merged
}

// sortNewestFirst stably sorts videos descending by publication timestamp.
// Videos without a parsable timestamp sort last, keeping input order.
func sortNewestFirst(videos []brightcove.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		ti, iOK := parsePublishedAt(videos[i].PublishedAt)
		tj, jOK := parsePublishedAt(videos[j].PublishedAt)
		if iOK != jOK {
			return iOK
		}
		return ti.After(tj)
	})
}

func parsePublishedAt(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	return t, err == nil
}
