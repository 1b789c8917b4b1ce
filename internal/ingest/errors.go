package ingest

import "errors"

var (
	// ErrFileNotFound is returned when the source document path does not resolve.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned for file extensions the extractor does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrExtraction is returned when the underlying decoder fails (e.g. a corrupt PDF).
	ErrExtraction = errors.New("extraction failed")
	// ErrInvalidChunkParams is returned for chunk size/overlap combinations that
	// would never advance the window or are otherwise non-positive.
	ErrInvalidChunkParams = errors.New("invalid chunk parameters")
)
