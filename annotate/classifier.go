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
)

// DefaultExcerptChars bounds the body excerpt sent to the classification
// service.
const DefaultExcerptChars = 1500

// Classifier resolves a content-type label for a document. Resolution
// order: durable cache, then the classification service, then the ordered
// keyword rules. The resolved label is always cached before returning, so
// a second run over unchanged input issues no service calls.
type Classifier struct {
	store        *cache.Store
	svc          ai.Classifier
	excerptChars int
	logger       *slog.Logger
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithExcerptChars sets the excerpt bound for service calls.
func WithExcerptChars(n int) ClassifierOption {
	return func(c *Classifier) {
		if n > 0 {
			c.excerptChars = n
		}
	}
}

// WithClassifierLogger sets a custom logger.
func WithClassifierLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier creates a classifier backed by the given cache store and
// classification service.
func NewClassifier(store *cache.Store, svc ai.Classifier, opts ...ClassifierOption) (*Classifier, error) {
	if store == nil {
		return nil, ErrCacheRequired
	}
	if svc == nil {
		return nil, ErrServiceRequired
	}
	c := &Classifier{
		store:        store,
		svc:          svc,
		excerptChars: DefaultExcerptChars,
		logger:       slog.Default().With("component", "classifier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify returns the content-type label for the document identified by
// docID. It never fails: any service error or off-set label falls back to
// the keyword rules, and the result is persisted before returning.
func (c *Classifier) Classify(ctx context.Context, docID, sourceLabel, name, body string) string {
	var label string
	if ok, err := c.store.Get(docID, &label); err == nil && ok {
		return label
	}

	excerpt := body
	if len(excerpt) > c.excerptChars {
		excerpt = excerpt[:c.excerptChars]
	}

	label, err := c.svc.ClassifyContent(ctx, ai.ClassifyRequest{
		Name:        name,
		SourceLabel: sourceLabel,
		Excerpt:     excerpt,
	})
	if err != nil {
		c.logger.Warn("classification failed, using rule fallback",
			"doc", displayName(name), "err", err)
		label = FallbackContentType(sourceLabel, name)
	} else if !ai.IsContentType(label) {
		c.logger.Warn("unrecognized label, using rule fallback",
			"doc", displayName(name), "label", label)
		label = FallbackContentType(sourceLabel, name)
	}

	if err := c.store.Put(docID, label); err != nil {
		c.logger.Warn("failed to cache label", "doc", displayName(name), "err", err)
	}
	return label
}

// Flush persists the label cache to disk.
func (c *Classifier) Flush() error {
	return c.store.Flush()
}

// displayName truncates a document name for log readability.
func displayName(name string) string {
	const maxLen = 50
	if len(name) > maxLen {
		return name[:maxLen]
	}
	return name
}
