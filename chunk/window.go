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

package chunk

import "strings"

// SlidingWindow splits text into overlapping fixed-size windows. The scan
// advances with a fixed step of size-overlap regardless of snapping:
// snapping only trims a window's right edge at the last sentence boundary
// in its back half, never the advance rate, so the raw window count is
// deterministic for a given length. Windows below the minimum floor are
// dropped. Text that fits in one window is returned whole.
func SlidingWindow(text string, size, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= size {
		return []string{strings.TrimSpace(text)}
	}

	step := size - overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for start := 0; start < len(text); start += step {
		end := min(start+size, len(text))
		window := text[start:end]

		if end < len(text) {
			if p := strings.LastIndex(window, ". "); p > size/2 {
				window = window[:p+2]
			}
		}

		window = strings.TrimSpace(window)
		if len(window) >= MinChunkChars {
			chunks = append(chunks, window)
		}
	}
	return chunks
}
