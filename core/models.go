package core

// Chunk is one retrieval-sized unit of normalized text derived from a
// Document. Chunks are produced once per pipeline run and are immutable
// thereafter; they become the property sets written to the vector store.
type Chunk struct {
	Content     string `json:"content"`
	DocumentID  string `json:"document_id"`
	DocName     string `json:"doc_name"`
	SourceLabel string `json:"source_label"`
	SourceURL   string `json:"source_url"`
	DocType     string `json:"doc_type"`
	ContentType string `json:"content_type"`
	SectionName string `json:"section_name"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	DocDate     string `json:"doc_date"`
}

// Scale categorizes a case study by scope or participant count.
type Scale string

const (
	ScaleSmall  Scale = "small"
	ScaleMedium Scale = "medium"
	ScaleLarge  Scale = "large"
)

// Valid reports whether the scale is one of the three allowed values.
func (s Scale) Valid() bool {
	return s == ScaleSmall || s == ScaleMedium || s == ScaleLarge
}

// Metadata is the LLM-derived subset of a case-study record. It is also the
// value persisted in the metadata cache.
type Metadata struct {
	Summary             string   `json:"summary"`
	Location            string   `json:"location"`
	Timeframe           string   `json:"timeframe"`
	Demographic         string   `json:"demographic"`
	Scale               Scale    `json:"scale"`
	Tags                []string `json:"tags"`
	KeyOutcomes         []string `json:"key_outcomes"`
	ImplementationSteps []string `json:"implementation_steps"`
}

// CaseStudyRecord is the fully annotated, unchunked representation of a
// Document classified as a case study.
type CaseStudyRecord struct {
	DocumentID  string `json:"document_id"`
	Title       string `json:"title"`
	SourceLabel string `json:"source_label"`
	SourceURL   string `json:"source_url"`
	DocDate     string `json:"doc_date"`
	FullContent string `json:"full_content"`
	Metadata
}
