package pipeline

import "errors"

var (
	// ErrSourceRequired is returned when a row source is not provided.
	ErrSourceRequired = errors.New("row source required")

	// ErrClassifierRequired is returned when a content classifier is not provided.
	ErrClassifierRequired = errors.New("content classifier required")

	// ErrAnnotatorRequired is returned when a metadata annotator is not provided.
	ErrAnnotatorRequired = errors.New("metadata annotator required")
)
