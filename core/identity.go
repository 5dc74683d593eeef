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

package core

import (
	"strings"

	"github.com/google/uuid"
)

// idNamespace is the fixed namespace for document identifiers. Name-based
// UUIDs derived within it are stable across runs, machines, and processes,
// so re-ingesting unchanged input always yields the same IDs.
var idNamespace = uuid.NameSpaceDNS

// Source kind tags embedded in composite keys. Changing either would change
// every derived document ID, so they are frozen.
const (
	sourceKindCaseStudy = "participedia"
	sourceKindReference = "dane"
)

// DocumentID derives a deterministic identifier from a composite key.
// The result is the 32-character hex form of a UUIDv5 in idNamespace.
// Empty key components are valid hash inputs.
func DocumentID(compositeKey string) string {
	id := uuid.NewSHA1(idNamespace, []byte(compositeKey))
	return strings.ReplaceAll(id.String(), "-", "")
}

// CaseStudyKey builds the composite identity key for a structured
// case-study document.
func CaseStudyKey(name, url string) string {
	return sourceKindCaseStudy + "|" + name + "|" + url
}

// ReferenceKey builds the composite identity key for a reference-material
// document. The source label participates in identity because reference
// rows from different sources may share a name.
func ReferenceKey(sourceLabel, name, url string) string {
	return sourceKindReference + "|" + sourceLabel + "|" + name + "|" + url
}
