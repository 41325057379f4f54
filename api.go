package bcsync

import (
	"context"

	"bcsync/brightcove"
	"bcsync/catalog"
	"bcsync/config"
	"bcsync/internal/log"
)

// DefaultChannel is the channel id used by the convenience helpers, which
// carry their credentials in configuration rather than in channel secrets.
const DefaultChannel = "default"

// ResolvePlaylist resolves one Brightcove playlist into a collection entity.
// A nil cfg loads configuration from the environment. Child video specs are
// dispatched to an in-process bus; callers embedding bcsync in a real
// orchestration host should use the catalog package directly.
func ResolvePlaylist(ctx context.Context, cfg *config.Config, playlistID string) (*catalog.CollectionEntity, error) {
	cfg, client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	resolver := &catalog.PlaylistResolver{
		API:      client,
		Channels: defaultChannels(),
		Bus:      catalog.NewMemoryBus(log.WithComponent("bus")),
		Defaults: defaultCredentials(cfg),
		Log:      log.WithComponent("playlist"),
	}
	return resolver.Resolve(ctx, &catalog.PlaylistRequest{
		Spec: &catalog.Spec{
			Channel:           DefaultChannel,
			Type:              catalog.TypeCollectionSpec,
			Source:            catalog.Provider,
			Playlist:          &catalog.ResourceRef{ID: playlistID},
			SkipScheduleCheck: cfg.SkipScheduleCheck,
		},
	})
}

// ResolveVideo resolves one Brightcove video into a video entity. A nil cfg
// loads configuration from the environment.
func ResolveVideo(ctx context.Context, cfg *config.Config, videoID string) (*catalog.VideoEntity, error) {
	cfg, client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	resolver := &catalog.VideoResolver{
		API:      client,
		Channels: defaultChannels(),
		Bus:      catalog.NewMemoryBus(log.WithComponent("bus")),
		Defaults: defaultCredentials(cfg),
		Log:      log.WithComponent("video"),
	}
	return resolver.Resolve(ctx, &catalog.VideoRequest{
		Spec: &catalog.Spec{
			Channel:           DefaultChannel,
			Type:              catalog.TypeVideoSpec,
			Source:            catalog.Provider,
			Video:             &catalog.ResourceRef{ID: videoID},
			SkipScheduleCheck: cfg.SkipScheduleCheck,
		},
	})
}

// buildClient loads configuration when needed and constructs the API client.
func buildClient(cfg *config.Config) (*config.Config, *brightcove.Client, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	log.Configure(log.Config{Level: cfg.LogLevel})

	client := brightcove.New(&brightcove.Config{
		ClientID:               cfg.ClientID,
		ClientSecret:           cfg.ClientSecret,
		AccountID:              cfg.AccountID,
		PolicyKey:              cfg.PolicyKey,
		ConcurrentRequestLimit: cfg.ConcurrentRequestLimit,
		RequestsPerSecond:      cfg.RequestsPerSecond,
		Timeout:                cfg.RequestTimeout,
		SkipScheduleCheck:      cfg.SkipScheduleCheck,
	})
	return cfg, client, nil
}

// defaultChannels is the single-channel store backing the convenience
// helpers.
func defaultChannels() catalog.StaticChannelStore {
	return catalog.StaticChannelStore{
		DefaultChannel: &catalog.Channel{ID: DefaultChannel},
	}
}

// defaultCredentials lowers configuration into resolver default credentials.
func defaultCredentials(cfg *config.Config) catalog.Credentials {
	return catalog.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		AccountID:    cfg.AccountID,
		PolicyKey:    cfg.PolicyKey,
	}
}
