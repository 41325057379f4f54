package bcsync

import (
	"bcsync/brightcove"
	"bcsync/catalog"
	bchttp "bcsync/http"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, bcsync.ErrEmptyResponse) {
//		fmt.Println("upstream sent an empty success body")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var upstreamErr *bcsync.UpstreamError
//	if errors.As(err, &upstreamErr) {
//		fmt.Printf("upstream status %d\n", upstreamErr.StatusCode)
//	}

// Type aliases for convenient error handling.
type (
	// UpstreamError indicates a non-success upstream HTTP status.
	UpstreamError = bchttp.UpstreamError
	// TransportError indicates a network-level failure.
	TransportError = bchttp.TransportError
	// ParseError indicates a malformed JSON success response.
	ParseError = bchttp.ParseError
	// ContentTypeError indicates a non-JSON success response.
	ContentTypeError = bchttp.ContentTypeError
	// ConfigurationError indicates a missing credential or parameter.
	ConfigurationError = brightcove.ConfigurationError
	// NotFoundError indicates the spec's upstream resource is absent.
	NotFoundError = catalog.NotFoundError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrEmptyResponse indicates a JSON success response with no body.
	ErrEmptyResponse = bchttp.ErrEmptyResponse
)

// Domain error codes carried by NotFoundError.
const (
	// CodePlaylistNotFound marks an absent upstream playlist.
	CodePlaylistNotFound = catalog.CodePlaylistNotFound
	// CodeVideoNotFound marks an absent or invisible upstream video.
	CodeVideoNotFound = catalog.CodeVideoNotFound
)
