package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrAuthFailed indicates the catalog credential was rejected (HTTP 401).
	// Fatal: surfaced verbatim, never retried, never degraded to a snapshot.
	ErrAuthFailed = errors.New("catalog API key is invalid or unauthorized")

	// ErrCatalogUnavailable indicates a transient network or server failure
	ErrCatalogUnavailable = errors.New("catalog service is unreachable")

	// ErrMovieNotFound indicates the requested movie does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrNoSnapshot indicates offline fallback was attempted but no
	// previously saved default-feed snapshot exists
	ErrNoSnapshot = errors.New("no cached snapshot available")
)
