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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"

	"github.com/civicloom/corpit/ai"
)

// parseAttempts bounds how often a malformed JSON response is retried.
const parseAttempts = 3

// MetadataGenerator implements ai.MetadataGenerator using OpenAI-compatible
// chat APIs with JSON-constrained output.
type MetadataGenerator struct {
	client  llms.Model
	limiter *rate.Limiter
	logger  *slog.Logger
}

// metadataPayload mirrors the schema requested from the model. List fields
// are deliberately loose: the model occasionally emits numbers or nested
// objects, and those entries are coerced to plain text.
type metadataPayload struct {
	Summary             string `json:"summary"`
	Location            string `json:"location"`
	Timeframe           string `json:"timeframe"`
	Demographic         string `json:"demographic"`
	Scale               string `json:"scale"`
	Tags                []any  `json:"tags"`
	KeyOutcomes         []any  `json:"key_outcomes"`
	ImplementationSteps []any  `json:"implementation_steps"`
}

// newMetadataGenerator is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newMetadataGenerator(config *ai.Config, limiter *rate.Limiter) (*MetadataGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &MetadataGenerator{
		client:  client,
		limiter: limiter,
		logger:  slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewMetadataGenerator creates a generator using the provided configuration.
//
// Returns ai.MetadataGenerator interface to enforce abstraction.
func NewMetadataGenerator(config *ai.Config) (ai.MetadataGenerator, error) {
	return newMetadataGenerator(config, newLimiter(config.RequestsPerSecond))
}

// GenerateMetadata requests the structured metadata object with a
// low-temperature, JSON-constrained call. Malformed JSON is re-requested
// up to parseAttempts times before the error is surfaced to the caller.
func (g *MetadataGenerator) GenerateMetadata(ctx context.Context, title, text string) (*ai.GeneratedMetadata, error) {
	prompt := fmt.Sprintf("Case study title: %s\n\nFull text:\n%s", title, text)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(generatorSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	var payload metadataPayload
	var lastErr error
	for attempt := 0; attempt < parseAttempts; attempt++ {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		response, err := g.client.GenerateContent(ctx, content,
			llms.WithTemperature(0.2),
			llms.WithMaxTokens(1500),
			llms.WithJSONMode(),
		)
		if err != nil {
			g.logger.Debug("generation request failed", "title", title, "attempt", attempt+1, "err", err)
			return nil, err
		}
		if len(response.Choices) < 1 {
			return nil, ErrEmptyResponse
		}

		raw := sanitizeJSON(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			lastErr = err
			g.logger.Warn("malformed metadata response",
				"attempt", attempt+1,
				"err", err)
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, lastErr
	}

	return &ai.GeneratedMetadata{
		Summary:             payload.Summary,
		Location:            payload.Location,
		Timeframe:           payload.Timeframe,
		Demographic:         payload.Demographic,
		Scale:               payload.Scale,
		Tags:                coerceStrings(payload.Tags),
		KeyOutcomes:         coerceStrings(payload.KeyOutcomes),
		ImplementationSteps: coerceStrings(payload.ImplementationSteps),
	}, nil
}

// coerceStrings flattens arbitrary JSON list entries to plain text.
func coerceStrings(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}
