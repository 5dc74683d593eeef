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

// Package cache provides a durable, thread-safe key-value store used to
// memoize classification labels and generated metadata across pipeline runs.
//
// Each Store owns one JSON file on disk: a flat mapping from document ID to
// a JSON value, human-diffable and written atomically (temp file, then
// rename). A corrupt file is treated as empty with a warning, never as a
// fatal error. Writes flush to disk periodically and unconditionally on
// Flush, so a later read never observes a torn file.
package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
)

// defaultFlushEvery is how many distinct entries accumulate between
// automatic persistence passes.
const defaultFlushEvery = 25

// Store is a durable mapping from string keys to JSON values, safe for
// concurrent use. All public operations serialize on one mutex, including
// the flush decision, so concurrent writers never race on the in-memory
// mapping or interleave file writes.
type Store struct {
	path       string
	flushEvery int
	logger     *slog.Logger

	mu      sync.Mutex
	entries map[string]json.RawMessage
	loaded  bool
}

// Option configures a Store.
type Option func(*Store)

// WithFlushEvery sets the persistence cadence in distinct entries.
func WithFlushEvery(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.flushEvery = n
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store backed by the JSON file at path. The file is
// not read until the first access, and is created on first flush.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:       path,
		flushEvery: defaultFlushEvery,
		logger:     slog.Default().With("component", "cache"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get looks up key and unmarshals the stored value into v.
// Returns false when the key is absent.
func (s *Store) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateLocked()

	raw, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// Put stores the value under key. Once written, an entry is authoritative:
// callers are expected to check Get before recomputing. Every flushEvery-th
// distinct entry triggers a persistence pass to disk.
func (s *Store) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateLocked()

	s.entries[key] = raw
	if len(s.entries)%s.flushEvery == 0 {
		return s.persistLocked()
	}
	return nil
}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateLocked()
	return len(s.entries)
}

// Flush persists the in-memory mapping to disk unconditionally.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		// Nothing read, nothing written.
		return nil
	}
	return s.persistLocked()
}

// hydrateLocked loads the backing file into memory on first access.
// Caller must hold s.mu.
func (s *Store) hydrateLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.entries = make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache unreadable, starting fresh", "path", s.path, "err", err)
		}
		return
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.logger.Warn("cache corrupt, starting fresh", "path", s.path, "err", err)
		s.entries = make(map[string]json.RawMessage)
	}
}

// persistLocked writes the mapping to a temp file and renames it into
// place. Rename is atomic on POSIX, so readers observe either the old or
// the new content, never a partial file. Caller must hold s.mu.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
