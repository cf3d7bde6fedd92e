package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer turns a (system, user) prompt pair into prose.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete requests a single completion. Generation parameters
	// (temperature, token limit) are fixed at construction time; callers
	// bound latency through ctx.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Completer returns the text generation service, or nil when no
	// generation backend is configured. A nil Completer is a supported
	// mode: answer synthesis falls back to an extractive template.
	Completer() Completer

	// Name identifies the resolved generation backend ("groq", "openai",
	// or "none").
	Name() string

	// Close releases resources held by the provider and its services.
	Close() error
}
