package ai

import "context"

// ClassifyRequest carries the inputs for a content-type classification call.
type ClassifyRequest struct {
	// Name is the document's display name.
	Name string

	// SourceLabel identifies where the document came from.
	SourceLabel string

	// Excerpt is a bounded prefix of the document body.
	Excerpt string
}

// Classifier assigns a content-type label to a document.
// Implementations must be thread-safe for concurrent use.
//
// The service is treated as unreliable: it may error, stall, or return a
// label outside the closed set. Callers own the fallback path and must not
// treat a Classifier as the sole route to a label.
type Classifier interface {
	// ClassifyContent returns a single label for the document. The label is
	// normalized (trimmed, case-folded, unquoted) but not validated against
	// the closed set; validation is the caller's responsibility.
	ClassifyContent(ctx context.Context, req ClassifyRequest) (string, error)
}

// GeneratedMetadata is the loosely-typed structured object returned by a
// metadata generation call, before invariants are enforced.
type GeneratedMetadata struct {
	Summary             string
	Location            string
	Timeframe           string
	Demographic         string
	Scale               string
	Tags                []string
	KeyOutcomes         []string
	ImplementationSteps []string
}

// MetadataGenerator produces structured case-study metadata from a title
// and a bounded text prefix.
// Implementations must be thread-safe for concurrent use.
type MetadataGenerator interface {
	// GenerateMetadata requests a schema-constrained structured object from
	// the generation service. List entries are coerced to plain text; field
	// values are otherwise returned as the service produced them.
	GenerateMetadata(ctx context.Context, title, text string) (*GeneratedMetadata, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. It is constructed once at orchestrator start and
// passed into the components that need it, so the dependency is explicit
// and a test double can stand in for the real services.
type Provider interface {
	// Classifier returns the content-type classification service.
	Classifier() Classifier

	// MetadataGenerator returns the metadata generation service.
	MetadataGenerator() MetadataGenerator

	// Close releases resources held by the provider and its services.
	Close() error
}
