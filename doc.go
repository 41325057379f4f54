// Package bcsync bridges a content-catalog orchestration bus to the
// Brightcove video-hosting API, resolving externally hosted playlist and
// video resources into normalized catalog entities.
//
// Overview
//
// bcsync provides high-level convenience functions for one-shot resolution:
//
//   - ResolvePlaylist: Resolve a Brightcove playlist into a collection entity
//   - ResolveVideo: Resolve a Brightcove video into a video entity
//
// Quick Start
//
// Resolve a playlist:
//
//	ctx := context.Background()
//	collection, err := bcsync.ResolvePlaylist(ctx, nil, "920398573001")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(collection.Title)
//
// Resolve a video:
//
//	video, err := bcsync.ResolveVideo(ctx, nil, "5558475233001")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Title: %s\nSources: %d\n", video.Title, len(video.Sources))
//
// Configuration
//
// bcsync uses a configuration system that loads settings from multiple
// sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (bcsync.json or ~/.config/bcsync/bcsync.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - BCSYNC_CLIENT_ID: Brightcove OAuth client id
//   - BCSYNC_CLIENT_SECRET: Brightcove OAuth client secret
//   - BCSYNC_ACCOUNT_ID: Brightcove account id
//   - BCSYNC_POLICY_KEY: Playback API policy key (optional)
//   - BCSYNC_CONCURRENT_REQUEST_LIMIT: In-flight request ceiling (default 20)
//   - BCSYNC_REQUESTS_PER_SECOND: Optional request rate shaping (0 = off)
//   - BCSYNC_REQUEST_TIMEOUT: Per-request HTTP timeout
//   - BCSYNC_SKIP_SCHEDULE_CHECK: Bypass visibility filtering (true/false)
//   - BCSYNC_LOG_LEVEL: zerolog level
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
// Extracting wrapped error details:
//
//	var notFound *bcsync.NotFoundError
//	if errors.As(err, &notFound) {
//		fmt.Printf("absent upstream: %s\n", notFound.Code)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - brightcove: Remote API client, authorization, visibility rules
//   - catalog: Spec resolution, transforms, bus boundary
//   - config: Configuration management
//   - http: Bounded request executor
//
// Example using the brightcove package directly:
//
//	client := brightcove.New(&brightcove.Config{
//		ClientID:     id,
//		ClientSecret: secret,
//		AccountID:    account,
//	})
//	video, err := client.GetVideo(ctx, "5558475233001", nil)
package bcsync
