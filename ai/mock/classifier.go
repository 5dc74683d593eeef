package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/civicloom/corpit/ai"
)

// Classifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type Classifier struct {
	// ClassifyFunc is called by ClassifyContent if set.
	// If nil, a crude keyword guess over the request fields is returned.
	ClassifyFunc func(ctx context.Context, req ai.ClassifyRequest) (string, error)

	mu        sync.Mutex
	callCount int
}

// NewClassifier creates a mock classifier with default behavior.
// Note: returns the concrete type so tests can assert on call counts.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// ClassifyContent returns a deterministic label derived from the request.
func (m *Classifier) ClassifyContent(ctx context.Context, req ai.ClassifyRequest) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, req)
	}

	haystack := strings.ToLower(req.Name + " " + req.SourceLabel + " " + req.Excerpt)
	for _, label := range ai.ContentTypes {
		if strings.Contains(haystack, strings.ReplaceAll(label, "_", " ")) {
			return label, nil
		}
	}
	return ai.ContentTypeOther, nil
}

// CallCount returns the number of times ClassifyContent was called.
func (m *Classifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *Classifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ClassifyFunc = nil
}
