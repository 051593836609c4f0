// Package embedder binds the relevance scout to an OpenAI-compatible
// embedding endpoint (Ollama, LM Studio, vLLM, OpenAI itself).
package embedder

import (
	"github.com/rotisserie/eris"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config selects the embedding endpoint and model.
type Config struct {
	BaseURL string
	Model   string
	// Token is sent as the bearer token. Local servers ignore it.
	Token string
}

// New creates a langchaingo embedder for cfg.
func New(cfg Config) (embeddings.Embedder, error) {
	if cfg.BaseURL == "" {
		return nil, eris.New("embedder: base url is required")
	}
	if cfg.Model == "" {
		return nil, eris.New("embedder: model is required")
	}
	token := cfg.Token
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, eris.Wrap(err, "embedder: create client")
	}

	e, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, eris.Wrap(err, "embedder: create embedder")
	}
	return e, nil
}
