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

// Package weaviate writes ingestion output to a Weaviate instance: one
// collection of retrieval chunks and one library of annotated case-study
// records.
package weaviate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/schema"
	lcweaviate "github.com/tmc/langchaingo/vectorstores/weaviate"
	wvclient "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"

	"github.com/civicloom/corpit/core"
	"github.com/civicloom/corpit/sink"
)

// Config holds the connection and collection settings for the writer.
type Config struct {
	Scheme string
	Host   string
	APIKey string

	ChunkCollection   string
	LibraryCollection string

	ChunkBatchSize   int
	LibraryBatchSize int
}

// Writer implements sink.Writer against Weaviate. Chunks and records are
// vectorized on insert through the configured embedder.
type Writer struct {
	cfg        Config
	chunkStore lcweaviate.Store
	caseStore  lcweaviate.Store
	client     *wvclient.Client
	logger     *slog.Logger
}

var _ sink.Writer = (*Writer)(nil)

// NewWriter connects to Weaviate and prepares stores for both
// collections.
func NewWriter(cfg Config, embedder embeddings.Embedder) (*Writer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("weaviate host required")
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.ChunkBatchSize <= 0 {
		cfg.ChunkBatchSize = 100
	}
	if cfg.LibraryBatchSize <= 0 {
		cfg.LibraryBatchSize = 50
	}

	chunkStore, err := lcweaviate.New(
		lcweaviate.WithEmbedder(embedder),
		lcweaviate.WithScheme(cfg.Scheme),
		lcweaviate.WithHost(cfg.Host),
		lcweaviate.WithAPIKey(cfg.APIKey),
		lcweaviate.WithIndexName(cfg.ChunkCollection),
		lcweaviate.WithTextKey("content"),
	)
	if err != nil {
		return nil, fmt.Errorf("chunk store: %w", err)
	}

	caseStore, err := lcweaviate.New(
		lcweaviate.WithEmbedder(embedder),
		lcweaviate.WithScheme(cfg.Scheme),
		lcweaviate.WithHost(cfg.Host),
		lcweaviate.WithAPIKey(cfg.APIKey),
		lcweaviate.WithIndexName(cfg.LibraryCollection),
		lcweaviate.WithTextKey("full_content"),
	)
	if err != nil {
		return nil, fmt.Errorf("case store: %w", err)
	}

	client, err := wvclient.NewClient(wvclient.Config{
		Scheme:     cfg.Scheme,
		Host:       cfg.Host,
		AuthConfig: auth.ApiKey{Value: cfg.APIKey},
	})
	if err != nil {
		return nil, fmt.Errorf("weaviate client: %w", err)
	}

	return &Writer{
		cfg:        cfg,
		chunkStore: chunkStore,
		caseStore:  caseStore,
		client:     client,
		logger:     slog.Default().With("component", "weaviate"),
	}, nil
}

// WriteChunks uploads chunks in batches.
func (w *Writer) WriteChunks(ctx context.Context, chunks []core.Chunk) error {
	docs := make([]schema.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = schema.Document{
			PageContent: c.Content,
			Metadata: map[string]any{
				"document_id":  c.DocumentID,
				"doc_name":     c.DocName,
				"source_label": c.SourceLabel,
				"source_url":   c.SourceURL,
				"doc_type":     c.DocType,
				"content_type": c.ContentType,
				"section_name": c.SectionName,
				"chunk_index":  c.ChunkIndex,
				"total_chunks": c.TotalChunks,
				"doc_date":     c.DocDate,
			},
		}
	}
	return w.addBatched(ctx, &w.chunkStore, w.cfg.ChunkCollection, docs, w.cfg.ChunkBatchSize)
}

// WriteCaseStudies uploads annotated records in batches.
func (w *Writer) WriteCaseStudies(ctx context.Context, records []core.CaseStudyRecord) error {
	docs := make([]schema.Document, len(records))
	for i, r := range records {
		docs[i] = schema.Document{
			PageContent: r.FullContent,
			Metadata: map[string]any{
				"document_id":          r.DocumentID,
				"title":                r.Title,
				"source_label":         r.SourceLabel,
				"source_url":           r.SourceURL,
				"doc_date":             r.DocDate,
				"summary":              r.Summary,
				"location":             r.Location,
				"timeframe":            r.Timeframe,
				"demographic":          r.Demographic,
				"scale":                string(r.Scale),
				"tags":                 r.Tags,
				"key_outcomes":         r.KeyOutcomes,
				"implementation_steps": r.ImplementationSteps,
			},
		}
	}
	return w.addBatched(ctx, &w.caseStore, w.cfg.LibraryCollection, docs, w.cfg.LibraryBatchSize)
}

func (w *Writer) addBatched(ctx context.Context, store *lcweaviate.Store, collection string, docs []schema.Document, batchSize int) error {
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if _, err := store.AddDocuments(ctx, docs[start:end]); err != nil {
			return fmt.Errorf("write %s batch at %d: %w", collection, start, err)
		}
		w.logger.Info("batch written", "collection", collection, "done", end, "total", len(docs))
	}
	return nil
}

// Clear deletes both collections. A collection that does not exist yet is
// already clear; Weaviate recreates deleted collections with auto-schema
// on the next insert.
func (w *Writer) Clear(ctx context.Context) error {
	for _, name := range []string{w.cfg.ChunkCollection, w.cfg.LibraryCollection} {
		err := w.client.Schema().ClassDeleter().WithClassName(name).Do(ctx)
		if err != nil {
			if isMissingCollection(err) {
				w.logger.Debug("collection absent, nothing to delete", "collection", name)
				continue
			}
			return fmt.Errorf("delete collection %s: %w", name, err)
		}
		w.logger.Info("collection deleted", "collection", name)
	}
	return nil
}

// isMissingCollection reports whether a schema-delete error means the
// collection was never created. Weaviate answers 404 on newer versions and
// 400 with a "could not find class" message on older ones.
func isMissingCollection(err error) bool {
	var clientErr *fault.WeaviateClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	if clientErr.StatusCode == http.StatusNotFound {
		return true
	}
	return strings.Contains(strings.ToLower(clientErr.Msg), "could not find class")
}

// Close is a no-op; the HTTP client holds no persistent resources.
func (w *Writer) Close() error {
	return nil
}
