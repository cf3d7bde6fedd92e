// Copyright 2025 Poiesic Systems
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

	"github.com/poiesic/askcampus/ai"
)

// Options carries the settings the provider needs. The generation backend
// is optional; everything else is required.
type Options struct {
	// EmbeddingHost is the base URL of an OpenAI-compatible embedding API.
	EmbeddingHost string

	// EmbeddingModel is the embedding model identifier.
	EmbeddingModel string

	// Generation is the resolved generation backend, or nil for fallback
	// mode (no completer).
	Generation *ai.Backend

	// Temperature and MaxTokens apply to every completion request.
	Temperature float64
	MaxTokens   int
}

// Provider implements ai.Provider using OpenAI-compatible services.
// Groq, OpenAI, and local servers such as Ollama all speak this protocol,
// so one implementation covers the whole preference order.
type Provider struct {
	embedder  *Embedder
	completer *Completer // nil in fallback mode
	name      string
	logger    *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
//
// Returns the ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(opts Options) (ai.Provider, error) {
	embedder, err := newEmbedder(opts.EmbeddingHost, opts.EmbeddingModel)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		embedder: embedder,
		name:     "none",
		logger:   slog.Default().With("component", "openai-provider"),
	}

	if opts.Generation != nil {
		completer, err := newCompleter(opts.Generation, opts.Temperature, opts.MaxTokens)
		if err != nil {
			return nil, err
		}
		p.completer = completer
		p.name = opts.Generation.Name
	}

	return p, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Completer returns the text generation service, or nil in fallback mode.
func (p *Provider) Completer() ai.Completer {
	if p.completer == nil {
		return nil
	}
	return p.completer
}

// Name identifies the resolved generation backend.
func (p *Provider) Name() string {
	return p.name
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
