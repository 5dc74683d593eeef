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

// Package sink defines where ingestion output goes: the vector index in
// production, a local archive for dry runs and inspection.
package sink

import (
	"context"

	"github.com/civicloom/corpit/core"
)

// Writer receives the pipeline's output. Implementations batch
// internally; callers hand over complete slices and call Close once.
type Writer interface {
	// WriteChunks stores retrieval chunks.
	WriteChunks(ctx context.Context, chunks []core.Chunk) error

	// WriteCaseStudies stores annotated case-study records.
	WriteCaseStudies(ctx context.Context, records []core.CaseStudyRecord) error

	// Clear removes all previously written data. A target that was never
	// written to clears successfully.
	Clear(ctx context.Context) error

	// Close flushes and releases the writer.
	Close() error
}
