// Package pipeline orchestrates corpus ingestion: it reads the two input
// tables, splits every document into retrieval chunks, classifies
// reference material, and annotates case studies into library records.
//
// External service calls run on a bounded worker pool sized for upstream
// rate limits. The pipeline itself never writes to a sink; it returns a
// Result and leaves delivery to the caller, so a dry run is simply a run
// whose result goes nowhere.
package pipeline
