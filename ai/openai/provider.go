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

package openai

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/civicloom/corpit/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// Both services share one rate limiter so the configured request budget
// covers all outbound calls, regardless of which worker issues them.
type Provider struct {
	config     *ai.Config
	classifier *Classifier
	generator  *MetadataGenerator
	logger     *slog.Logger
}

// NewProvider creates a provider with OpenAI-compatible classification and
// generation services. The config is validated and normalized before use.
//
// Returns the ai.Provider interface (not *Provider) to enforce abstraction
// and keep callers decoupled from OpenAI-specific details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	limiter := newLimiter(config.RequestsPerSecond)

	classifier, err := newClassifier(config, limiter)
	if err != nil {
		return nil, err
	}

	generator, err := newMetadataGenerator(config, limiter)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:     config,
		classifier: classifier,
		generator:  generator,
		logger:     slog.Default().With("component", "openai-provider"),
	}, nil
}

// newLimiter builds the shared request limiter; nil means unthrottled.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// Classifier returns the content-type classification service.
func (p *Provider) Classifier() ai.Classifier {
	return p.classifier
}

// MetadataGenerator returns the metadata generation service.
func (p *Provider) MetadataGenerator() ai.MetadataGenerator {
	return p.generator
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
