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

// Package source loads the tabular corpus inputs: one table of case
// studies and one table of mixed reference material.
package source

import "context"

// Column names shared by the two input tables. Case studies carry
// Name/Link/Date/Body; reference rows carry Name/Source/Link/Content.
const (
	ColName    = "Name"
	ColSource  = "Source"
	ColLink    = "Link"
	ColDate    = "Date"
	ColBody    = "Body"
	ColContent = "Content"
)

// Row is one record from an input table. Absent columns read as empty
// strings, so callers never distinguish missing from blank.
type Row map[string]string

// Get returns the value for col, or "" when the column is absent.
func (r Row) Get(col string) string {
	return r[col]
}

// RowSource provides the two input tables.
type RowSource interface {
	// CaseStudyRows returns the structured case-study records.
	CaseStudyRows(ctx context.Context) ([]Row, error)

	// ReferenceRows returns the mixed reference-material records.
	ReferenceRows(ctx context.Context) ([]Row, error)
}
