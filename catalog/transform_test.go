package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcsync/brightcove"
)

func TestCollectionEntityFromPlaylist(t *testing.T) {
	spec := &Spec{Source: "brightcove"}
	playlist := &brightcove.Playlist{ID: "P1", Name: "N", Description: "D"}

	entity := CollectionEntityFromPlaylist(spec, playlist)

	assert.Equal(t, "res-brightcove-playlist-P1", entity.ID)
	assert.Equal(t, "N", entity.Title)
	assert.Equal(t, "D", entity.Description)
	require.NotNil(t, entity.Images)
	assert.Empty(t, entity.Images)

	data, err := json.Marshal(entity)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"res-brightcove-playlist-P1","title":"N","description":"D","images":[]}`,
		string(data))
}

func TestVideoEntityFromVideo(t *testing.T) {
	spec := &Spec{Source: "brightcove"}
	video := &brightcove.Video{
		ID:              "V1",
		Name:            "Title",
		Description:     "short",
		LongDescription: "long",
		Duration:        123456,
		PublishedAt:     "2024-01-01T00:00:00Z",
	}

	entity := VideoEntityFromVideo(spec, video, nil)

	assert.Equal(t, "res-brightcove-video-V1", entity.ID)
	assert.Equal(t, "Title", entity.Title)
	assert.Equal(t, "long", entity.Description)
	assert.Equal(t, int64(123456), entity.Duration)
	assert.Equal(t, "2024-01-01T00:00:00Z", entity.ReleaseDate)
	require.NotNil(t, entity.Images)
	require.NotNil(t, entity.Sources)

	t.Run("falls back to short description", func(t *testing.T) {
		video := &brightcove.Video{ID: "V1", Description: "short"}
		entity := VideoEntityFromVideo(spec, video, nil)
		assert.Equal(t, "short", entity.Description)
	})
}

func TestImageVariants(t *testing.T) {
	set := &brightcove.ImageSet{
		Poster: &brightcove.Image{Sources: []brightcove.ImageSource{
			{Src: "https://img.example.com/poster-big.jpg", Width: 1920, Height: 1080},
			{Src: "http://img.example.com/poster-insecure.jpg", Width: 1280, Height: 720},
		}},
		Thumbnail: &brightcove.Image{Sources: []brightcove.ImageSource{
			{Src: "https://img.example.com/thumb.jpg", Width: 160, Height: 90},
		}},
	}

	variants := imageVariants(set)

	// The insecure rendition is dropped; the rest keep poster-then-thumbnail
	// order with dimension-bearing labels.
	require.Len(t, variants, 2)
	assert.Equal(t, ImageVariant{
		URL:    "https://img.example.com/poster-big.jpg",
		Width:  1920,
		Height: 1080,
		Label:  "poster-1920x1080",
	}, variants[0])
	assert.Equal(t, "thumbnail-160x90", variants[1].Label)

	t.Run("nil set yields empty slice", func(t *testing.T) {
		variants := imageVariants(nil)
		require.NotNil(t, variants)
		assert.Empty(t, variants)
	})
}

func TestSourceVariants(t *testing.T) {
	sources := []brightcove.Source{
		{Src: "https://cdn.example.com/v.mp4", Container: "MP4", Width: 1920, Height: 1080, EncodingRate: 4000000},
		{Src: "https://cdn.example.com/v.m3u8", Type: "application/x-mpegURL"},
		{Src: "http://cdn.example.com/insecure.mp4", Container: "MP4"},
		{Src: "", Container: "MP4"},
		{Src: "https://cdn.example.com/other", AssetID: "asset-9"},
		{Src: "https://cdn.example.com/bare"},
	}

	variants := sourceVariants(sources)
	require.Len(t, variants, 4)

	// MP4: container match is case-insensitive, mime type is synthesized,
	// label carries dimensions.
	assert.Equal(t, SourceVariant{
		URL:        "https://cdn.example.com/v.mp4",
		Container:  "MP4",
		MimeType:   "video/mp4",
		Width:      1920,
		Height:     1080,
		MaxBitrate: 4000000,
		Label:      "mp4-1920x1080",
	}, variants[0])

	// HLS: labeled by manifest type, zero dimensions stay zero.
	assert.Equal(t, "hls", variants[1].Label)
	assert.Equal(t, "application/x-mpegURL", variants[1].MimeType)
	assert.Zero(t, variants[1].Width)
	assert.Zero(t, variants[1].Height)

	// Neither MP4 nor HLS: asset id wins, then the original index.
	assert.Equal(t, "asset-9", variants[2].Label)
	assert.Equal(t, "5", variants[3].Label)
	assert.Empty(t, variants[3].MimeType)
}

func TestSourceVariantsMP4CaseInsensitive(t *testing.T) {
	variants := sourceVariants([]brightcove.Source{
		{Src: "https://cdn.example.com/v.mp4", Container: "mp4", Width: 640, Height: 360},
	})
	require.Len(t, variants, 1)
	assert.Equal(t, "mp4-640x360", variants[0].Label)
	assert.Equal(t, "video/mp4", variants[0].MimeType)
}

func TestSourceVariantsExplicitTypeWins(t *testing.T) {
	variants := sourceVariants([]brightcove.Source{
		{Src: "https://cdn.example.com/v.mp4", Container: "MP4", Type: "video/custom"},
	})
	require.Len(t, variants, 1)
	assert.Equal(t, "video/custom", variants[0].MimeType)
}

func TestSourceVariantsEmptyInput(t *testing.T) {
	variants := sourceVariants(nil)
	require.NotNil(t, variants)
	assert.Empty(t, variants)
}
