package openai

import (
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/civicloom/corpit/ai"
)

// NewEmbedder creates a langchaingo embedder against the configured
// OpenAI-compatible API. The vector-index writer uses it to embed chunks
// and records on insert.
func NewEmbedder(config *ai.Config, model string) (embeddings.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}

	return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
}
