package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/civicloom/corpit/core"
)

// Stats summarizes one run's chunk output.
type Stats struct {
	Total        int
	DocTypes     map[string]int
	ContentTypes map[string]int

	MinLen    int
	MaxLen    int
	AvgLen    int
	MedianLen int
}

// ComputeStats tallies chunk counts by category and content-length shape.
func ComputeStats(chunks []core.Chunk) Stats {
	s := Stats{
		Total:        len(chunks),
		DocTypes:     make(map[string]int),
		ContentTypes: make(map[string]int),
	}
	if len(chunks) == 0 {
		return s
	}

	lengths := make([]int, len(chunks))
	total := 0
	for i, c := range chunks {
		s.DocTypes[c.DocType]++
		s.ContentTypes[c.ContentType]++
		lengths[i] = len(c.Content)
		total += lengths[i]
	}
	sort.Ints(lengths)

	s.MinLen = lengths[0]
	s.MaxLen = lengths[len(lengths)-1]
	s.AvgLen = total / len(lengths)
	s.MedianLen = lengths[len(lengths)/2]
	return s
}

// String renders the summary table printed after chunking.
func (s Stats) String() string {
	var b strings.Builder
	b.WriteString("chunk statistics\n")

	for _, kv := range sortByCount(s.DocTypes) {
		fmt.Fprintf(&b, "  doc_type %-22s %6d\n", kv.key, kv.count)
	}
	fmt.Fprintf(&b, "  %-31s %6d\n", "TOTAL", s.Total)

	b.WriteString("\n  content_type:\n")
	for _, kv := range sortByCount(s.ContentTypes) {
		fmt.Fprintf(&b, "    %-22s %6d\n", kv.key, kv.count)
	}

	fmt.Fprintf(&b, "\n  content length (chars): min=%d max=%d avg=%d median=%d\n",
		s.MinLen, s.MaxLen, s.AvgLen, s.MedianLen)
	return b.String()
}

type keyCount struct {
	key   string
	count int
}

// sortByCount orders descending by count, then by key for stable output.
func sortByCount(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, v := range m {
		out = append(out, keyCount{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}
