package annotate

import "errors"

var (
	// ErrCacheRequired is returned when a cache store is not provided.
	ErrCacheRequired = errors.New("cache store required")

	// ErrServiceRequired is returned when an AI service is not provided.
	ErrServiceRequired = errors.New("AI service required")
)
