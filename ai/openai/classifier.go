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
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"

	"github.com/civicloom/corpit/ai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client  llms.Model
	limiter *rate.Limiter
	logger  *slog.Logger
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config, limiter *rate.Limiter) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client:  client,
		limiter: limiter,
		logger:  slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config, newLimiter(config.RequestsPerSecond))
}

// ClassifyContent asks the model for exactly one label from the closed set.
// The response is normalized (trimmed, case-folded, unquoted) but not
// validated against the set; the caller owns acceptance and fallback.
func (c *Classifier) ClassifyContent(ctx context.Context, req ai.ClassifyRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	prompt := fmt.Sprintf("Document name: %s\nSource: %s\n\nContent excerpt:\n%s",
		req.Name, req.SourceLabel, req.Excerpt)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(classifierSystemPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(20),
	)
	if err != nil {
		c.logger.Debug("classification request failed", "name", req.Name, "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrEmptyResponse
	}

	label := strings.ToLower(strings.TrimSpace(response.Choices[0].Content))
	label = strings.Trim(label, `"'`)
	return label, nil
}
