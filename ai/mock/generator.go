package mock

import (
	"context"
	"sync"

	"github.com/civicloom/corpit/ai"
)

// Generator is a test double for ai.MetadataGenerator.
// It allows custom behavior injection via function fields.
type Generator struct {
	// GenerateFunc is called by GenerateMetadata if set.
	// If nil, a fixed well-formed metadata object is returned.
	GenerateFunc func(ctx context.Context, title, text string) (*ai.GeneratedMetadata, error)

	mu        sync.Mutex
	callCount int
}

// NewGenerator creates a mock generator with default behavior.
// Note: returns the concrete type so tests can assert on call counts.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateMetadata returns a fixed metadata object mentioning the title.
func (m *Generator) GenerateMetadata(ctx context.Context, title, text string) (*ai.GeneratedMetadata, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, title, text)
	}

	return &ai.GeneratedMetadata{
		Summary:             "Summary of " + title,
		Location:            "Testville",
		Timeframe:           "2024",
		Demographic:         "General public",
		Scale:               "medium",
		Tags:                []string{"engagement"},
		KeyOutcomes:         []string{"outcome one"},
		ImplementationSteps: []string{"step one"},
	}, nil
}

// CallCount returns the number of times GenerateMetadata was called.
func (m *Generator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *Generator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.GenerateFunc = nil
}
