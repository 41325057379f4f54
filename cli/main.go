// Command bcsync is a one-shot resolver for Brightcove-backed catalog
// entities.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"bcsync"
	"bcsync/brightcove"
	"bcsync/config"
	"bcsync/internal/log"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "playlist":
		cmdPlaylist(args)
	case "video":
		cmdVideo(args)
	case "counts":
		cmdCounts(args)
	case "token":
		cmdToken(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `bcsync - Brightcove catalog entity resolver

Usage:
  bcsync playlist [flags] <playlist-id>  Resolve a playlist into a collection entity
  bcsync video [flags] <video-id>        Resolve a video into a video entity
  bcsync counts [flags]                  Show account playlist/video counts
  bcsync token                           Fetch an OAuth access token
  bcsync help                            Show this help message

Examples:
  bcsync playlist 920398573001                     # Resolve a playlist
  bcsync video --skip-schedule-check 5558475233001 # Ignore the visibility window
  bcsync counts --playlist 920398573001            # Include one playlist's video count

Credentials come from bcsync.json or BCSYNC_* environment variables.

For help on specific command: bcsync <command> -h
`)
}

func cmdPlaylist(args []string) {
	fs := flag.NewFlagSet("playlist", flag.ExitOnError)
	skipSchedule := fs.Bool("skip-schedule-check", false, "Bypass schedule-based visibility filtering")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bcsync playlist [flags] <playlist-id>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	id := requireArg(fs, "playlist-id")
	cfg := loadConfig()
	if *skipSchedule {
		cfg.SkipScheduleCheck = true
	}

	collection, err := bcsync.ResolvePlaylist(context.Background(), cfg, id)
	if err != nil {
		fatal(err)
	}
	printJSON(collection)
}

func cmdVideo(args []string) {
	fs := flag.NewFlagSet("video", flag.ExitOnError)
	skipSchedule := fs.Bool("skip-schedule-check", false, "Bypass schedule-based visibility filtering")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bcsync video [flags] <video-id>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	id := requireArg(fs, "video-id")
	cfg := loadConfig()
	if *skipSchedule {
		cfg.SkipScheduleCheck = true
	}

	video, err := bcsync.ResolveVideo(context.Background(), cfg, id)
	if err != nil {
		fatal(err)
	}
	printJSON(video)
}

func cmdCounts(args []string) {
	fs := flag.NewFlagSet("counts", flag.ExitOnError)
	playlistID := fs.String("playlist", "", "Also show the video count of this playlist")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bcsync counts [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	client := newClient(loadConfig())
	defer client.Close()
	ctx := context.Background()

	playlists, err := client.PlaylistCount(ctx, nil)
	if err != nil {
		fatal(err)
	}
	videos, err := client.VideoCount(ctx, nil)
	if err != nil {
		fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "playlists\t%d\n", playlists)
	fmt.Fprintf(w, "videos\t%d\n", videos)
	if *playlistID != "" {
		count, err := client.VideoCountByPlaylist(ctx, *playlistID, nil)
		if err != nil {
			fatal(err)
		}
		fmt.Fprintf(w, "playlist %s videos\t%d\n", *playlistID, count)
	}
	w.Flush()
}

func cmdToken(args []string) {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bcsync token\n")
	}
	fs.Parse(args)

	client := newClient(loadConfig())
	defer client.Close()

	token, err := client.AccessToken(context.Background(), nil)
	if err != nil {
		fatal(err)
	}
	printJSON(token)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	log.Configure(log.Config{Level: cfg.LogLevel})
	return cfg
}

func newClient(cfg *config.Config) *brightcove.Client {
	return brightcove.New(&brightcove.Config{
		ClientID:               cfg.ClientID,
		ClientSecret:           cfg.ClientSecret,
		AccountID:              cfg.AccountID,
		PolicyKey:              cfg.PolicyKey,
		ConcurrentRequestLimit: cfg.ConcurrentRequestLimit,
		RequestsPerSecond:      cfg.RequestsPerSecond,
		Timeout:                cfg.RequestTimeout,
		SkipScheduleCheck:      cfg.SkipScheduleCheck,
	})
}

func requireArg(fs *flag.FlagSet, name string) string {
	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing %s\n", name)
		fs.Usage()
		os.Exit(1)
	}
	return argv[0]
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(data))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
