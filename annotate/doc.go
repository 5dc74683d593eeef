// Package annotate resolves per-document annotations: the semantic
// content-type label and the structured case-study metadata.
//
// Both components follow the same resilience contract: check the durable
// cache first, then call the external service, and on any failure fall
// back to a deterministic local result (keyword rules for classification,
// a degraded record for metadata). The external service is never the sole
// path to an answer.
package annotate
