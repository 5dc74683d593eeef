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

package mock

import "github.com/civicloom/corpit/ai"

// Provider is a test double for ai.Provider. It aggregates mock
// classifier and generator instances.
type Provider struct {
	classifier *Classifier
	generator  *Generator
}

// NewProvider creates a mock provider with default mock services.
//
// Returns ai.Provider for consistency with production constructors.
// Use GetClassifier()/GetGenerator() to reach the concrete types for
// test assertions.
func NewProvider() ai.Provider {
	return &Provider{
		classifier: NewClassifier(),
		generator:  NewGenerator(),
	}
}

// NewProviderWithServices creates a mock provider with custom mock
// services, giving full control over each service's behavior.
func NewProviderWithServices(classifier *Classifier, generator *Generator) ai.Provider {
	return &Provider{
		classifier: classifier,
		generator:  generator,
	}
}

// Classifier returns the mock classifier.
func (p *Provider) Classifier() ai.Classifier {
	return p.classifier
}

// MetadataGenerator returns the mock generator.
func (p *Provider) MetadataGenerator() ai.MetadataGenerator {
	return p.generator
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}

// GetClassifier returns the underlying mock classifier for assertions.
func (p *Provider) GetClassifier() *Classifier {
	return p.classifier
}

// GetGenerator returns the underlying mock generator for assertions.
func (p *Provider) GetGenerator() *Generator {
	return p.generator
}
