// Package chunk implements the text splitting heuristics of the ingestion
// pipeline: normalization, heading-vocabulary and markdown section parsing,
// size-bounded sub-splitting with boundary snapping, and the sliding-window
// fallback used when no structural markers exist.
//
// All functions are pure and deterministic; the package performs no I/O.
package chunk
