package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/askcampus/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements ai.Completer against an OpenAI-compatible chat API.
type Completer struct {
	client      llms.Model
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
func newCompleter(backend *ai.Backend, temperature float64, maxTokens int) (*Completer, error) {
	client, err := openai.New(
		openai.WithBaseURL(backend.BaseURL),
		openai.WithToken(backend.APIKey),
		openai.WithModel(backend.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:      client,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      slog.Default().With("component", "openai-completer", "backend", backend.Name),
	}, nil
}

// NewCompleter creates a completer for the given generation backend.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(backend *ai.Backend, temperature float64, maxTokens int) (ai.Completer, error) {
	return newCompleter(backend, temperature, maxTokens)
}

// Complete requests a single chat completion.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.logger.Debug("requesting completion", "systemLen", len(systemPrompt), "userLen", len(userPrompt))

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		c.logger.Error("completion request failed", "err", err)
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", ai.ErrEmptyCompletion
	}

	return response.Choices[0].Content, nil
}
