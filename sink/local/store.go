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

// Package local provides a badger-backed run archive. It stores the same
// JSON property sets the remote writer sends, keyed by document, so a dry
// run can be inspected and successive runs diffed without touching the
// vector index.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/civicloom/corpit/core"
	"github.com/civicloom/corpit/sink"
)

// Store archives ingestion output in a local BadgerDB.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ sink.Writer = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens an archive at path, creating the directory if needed.
// Pass inMemory for tests.
func Open(path string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, err
			}
		} else if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	logger := slog.Default().With("component", "archive")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

// Chunk keys sort by document then position, so a prefix scan over one
// document returns its chunks in order.
func chunkKey(docID string, index int) []byte {
	return []byte(fmt.Sprintf("chunk:%s:%04d", docID, index))
}

func caseKey(docID string) []byte {
	return []byte("case:" + docID)
}

// WriteChunks archives chunks as JSON values.
func (s *Store) WriteChunks(ctx context.Context, chunks []core.Chunk) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal chunk %s/%d: %w", c.DocumentID, c.ChunkIndex, err)
		}
		if err := wb.Set(chunkKey(c.DocumentID, c.ChunkIndex), data); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}
	s.logger.Debug("archived chunks", "count", len(chunks))
	return nil
}

// WriteCaseStudies archives case-study records as JSON values.
func (s *Store) WriteCaseStudies(ctx context.Context, records []core.CaseStudyRecord) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", r.DocumentID, err)
		}
		if err := wb.Set(caseKey(r.DocumentID), data); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}
	s.logger.Debug("archived case studies", "count", len(records))
	return nil
}

// Clear drops everything in the archive.
func (s *Store) Clear(ctx context.Context) error {
	return s.db.DropAll()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ChunksFor returns the archived chunks of one document in position order.
func (s *Store) ChunksFor(docID string) ([]core.Chunk, error) {
	var chunks []core.Chunk
	prefix := []byte("chunk:" + docID + ":")

	err := s.db.View(func(tx *badger.Txn) error {
		it := tx.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var c core.Chunk
				if err := json.Unmarshal(val, &c); err != nil {
					return err
				}
				chunks = append(chunks, c)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return chunks, err
}

// CaseStudy returns the archived record for docID, or false when absent.
func (s *Store) CaseStudy(docID string) (core.CaseStudyRecord, bool, error) {
	var record core.CaseStudyRecord
	found := false

	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(caseKey(docID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	return record, found, err
}
