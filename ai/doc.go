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

// Package ai defines the external AI service contracts used by the
// ingestion pipeline: content-type classification and structured metadata
// generation.
//
// Both services are treated as unreliable collaborators. The interfaces
// here deliberately exclude caching and fallback behavior; those live in
// package annotate, which owns the deterministic local path for every
// call site. Production implementations live in ai/openai, test doubles
// in ai/mock.
package ai
