// Copyright 2026 Civicloom
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package annotate

import (
	"context"
	"log/slog"

	"github.com/civicloom/corpit/ai"
	"github.com/civicloom/corpit/cache"
	"github.com/civicloom/corpit/core"
)

// Bounds enforced on generated metadata regardless of what the service
// returns.
const (
	DefaultMetadataMaxChars = 12000

	maxTags     = 4
	maxOutcomes = 5
	maxSteps    = 5
)

const notSpecified = "Not specified"

// Annotator produces validated case-study metadata. Cache-checked by
// document ID; on a miss it calls the generation service and enforces the
// schema invariants on whatever comes back. On any failure it produces a
// minimal degraded record instead of propagating the error, so ingestion
// never halts because annotation failed for one document.
type Annotator struct {
	store    *cache.Store
	svc      ai.MetadataGenerator
	maxChars int
	logger   *slog.Logger
}

// AnnotatorOption configures an Annotator.
type AnnotatorOption func(*Annotator)

// WithMetadataMaxChars sets the text prefix bound for generation calls.
func WithMetadataMaxChars(n int) AnnotatorOption {
	return func(a *Annotator) {
		if n > 0 {
			a.maxChars = n
		}
	}
}

// WithAnnotatorLogger sets a custom logger.
func WithAnnotatorLogger(logger *slog.Logger) AnnotatorOption {
	return func(a *Annotator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnnotator creates an annotator backed by the given cache store and
// generation service.
func NewAnnotator(store *cache.Store, svc ai.MetadataGenerator, opts ...AnnotatorOption) (*Annotator, error) {
	if store == nil {
		return nil, ErrCacheRequired
	}
	if svc == nil {
		return nil, ErrServiceRequired
	}
	a := &Annotator{
		store:    store,
		svc:      svc,
		maxChars: DefaultMetadataMaxChars,
		logger:   slog.Default().With("component", "annotator"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Annotate returns metadata for the document identified by docID. It never
// fails; the degraded record is the floor. The result is cached before
// returning, making repeated runs service-call free.
func (a *Annotator) Annotate(ctx context.Context, docID, title, fullText string) core.Metadata {
	var meta core.Metadata
	if ok, err := a.store.Get(docID, &meta); err == nil && ok {
		return meta
	}

	text := fullText
	if len(text) > a.maxChars {
		text = text[:a.maxChars]
	}

	generated, err := a.svc.GenerateMetadata(ctx, title, text)
	if err != nil {
		a.logger.Warn("metadata generation failed, using degraded record",
			"doc", displayName(title), "err", err)
		meta = degradedMetadata(title)
	} else {
		meta = enforceMetadata(generated)
	}

	if err := a.store.Put(docID, meta); err != nil {
		a.logger.Warn("failed to cache metadata", "doc", displayName(title), "err", err)
	}
	return meta
}

// Flush persists the metadata cache to disk.
func (a *Annotator) Flush() error {
	return a.store.Flush()
}

// enforceMetadata applies the schema invariants: scale coerced into the
// enum, list fields truncated to their bounds, empty descriptive fields
// mapped to "Not specified".
func enforceMetadata(g *ai.GeneratedMetadata) core.Metadata {
	scale := core.Scale(g.Scale)
	if !scale.Valid() {
		scale = core.ScaleMedium
	}
	return core.Metadata{
		Summary:             g.Summary,
		Location:            orNotSpecified(g.Location),
		Timeframe:           orNotSpecified(g.Timeframe),
		Demographic:         orNotSpecified(g.Demographic),
		Scale:               scale,
		Tags:                truncateList(g.Tags, maxTags),
		KeyOutcomes:         truncateList(g.KeyOutcomes, maxOutcomes),
		ImplementationSteps: truncateList(g.ImplementationSteps, maxSteps),
	}
}

// degradedMetadata is the minimal record produced when generation fails.
func degradedMetadata(title string) core.Metadata {
	return core.Metadata{
		Summary:             "Case study: " + title,
		Location:            notSpecified,
		Timeframe:           notSpecified,
		Demographic:         notSpecified,
		Scale:               core.ScaleMedium,
		Tags:                []string{},
		KeyOutcomes:         []string{},
		ImplementationSteps: []string{},
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func truncateList(items []string, limit int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
