package ai

import "errors"

var (
	// ErrEmbeddingHostRequired is returned when no embedding host is configured.
	ErrEmbeddingHostRequired = errors.New("embedding host required")

	// ErrEmbeddingModelRequired is returned when no embedding model is configured.
	ErrEmbeddingModelRequired = errors.New("embedding model required")

	// ErrEmptyCompletion is returned when the generation backend produced no choices.
	ErrEmptyCompletion = errors.New("empty completion response")
)
