package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"bcsync/brightcove"
)

// HLSMimeType is the MIME type identifying HLS manifest sources.
const HLSMimeType = "application/x-mpegURL"

// CollectionEntityFromPlaylist maps one upstream playlist record into a
// normalized collection entity. Upstream playlists carry no image set, so the
// images list is always empty.
func CollectionEntityFromPlaylist(spec *Spec, playlist *brightcove.Playlist) *CollectionEntity {
	return &CollectionEntity{
		ID:          fmt.Sprintf("res-%s-playlist-%s", spec.Source, playlist.ID),
		Title:       playlist.Name,
		Description: playlist.Description,
		Images:      []ImageVariant{},
	}
}

// VideoEntityFromVideo maps one upstream video record and its media
// renditions into a normalized video entity. The long description is
// preferred over the short one when present.
func VideoEntityFromVideo(spec *Spec, video *brightcove.Video, sources []brightcove.Source) *VideoEntity {
	description := video.LongDescription
	if description == "" {
		description = video.Description
	}
	return &VideoEntity{
		ID:          fmt.Sprintf("res-%s-video-%s", spec.Source, video.ID),
		Title:       video.Name,
		Description: description,
		Images:      imageVariants(video.Images),
		Sources:     sourceVariants(sources),
		Duration:    video.Duration,
		ReleaseDate: video.PublishedAt,
	}
}

// imageVariants flattens the poster and thumbnail rendition arrays into
// labeled variants, keeping secure-transport URLs only.
func imageVariants(set *brightcove.ImageSet) []ImageVariant {
	variants := []ImageVariant{}
	if set == nil {
		return variants
	}
	variants = appendImageVariants(variants, "poster", set.Poster)
	variants = appendImageVariants(variants, "thumbnail", set.Thumbnail)
	return variants
}

func appendImageVariants(dst []ImageVariant, kind string, image *brightcove.Image) []ImageVariant {
	if image == nil {
		return dst
	}
	for _, src := range image.Sources {
		if !secureURL(src.Src) {
			continue
		}
		dst = append(dst, ImageVariant{
			URL:    src.Src,
			Height: src.Height,
			Width:  src.Width,
			Label:  fmt.Sprintf("%s-%dx%d", kind, src.Width, src.Height),
		})
	}
	return dst
}

// sourceVariants maps raw media renditions into labeled variants. Sources
// without a src or on non-secure transport are dropped; order is otherwise
// preserved. Missing numeric fields stay 0.
func sourceVariants(sources []brightcove.Source) []SourceVariant {
	variants := []SourceVariant{}
	for i, src := range sources {
		if src.Src == "" || !secureURL(src.Src) {
			continue
		}

		isMP4 := strings.EqualFold(src.Container, "mp4")
		mimeType := src.Type
		if mimeType == "" && isMP4 {
			mimeType = "video/mp4"
		}

		var label string
		switch {
		case isMP4:
			label = fmt.Sprintf("mp4-%dx%d", src.Width, src.Height)
		case strings.EqualFold(mimeType, HLSMimeType):
			label = "hls"
		case src.AssetID != "":
			label = src.AssetID
		default:
			label = strconv.Itoa(i)
		}

		variants = append(variants, SourceVariant{
			URL:        src.Src,
			Container:  src.Container,
			MimeType:   mimeType,
			Width:      src.Width,
			Height:     src.Height,
			MaxBitrate: src.EncodingRate,
			Label:      label,
		})
	}
	return variants
}

// secureURL reports whether a URL uses secure transport.
func secureURL(url string) bool {
	return strings.HasPrefix(url, "https://")
}
