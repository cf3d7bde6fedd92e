package mock

import "github.com/poiesic/askcampus/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	embedder  *MockEmbedder
	completer *MockCompleter
	// NoCompleter simulates fallback mode (no generation backend resolved).
	NoCompleter bool
}

// NewMockProvider creates a provider backed by default mocks.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		completer: NewMockCompleter(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Completer returns the mock completer, or nil when NoCompleter is set.
func (p *MockProvider) Completer() ai.Completer {
	if p.NoCompleter {
		return nil
	}
	return p.completer
}

// Name identifies the provider in logs.
func (p *MockProvider) Name() string {
	if p.NoCompleter {
		return "none"
	}
	return "mock"
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

// MockEmbedder exposes the concrete embedder for behavior injection.
func (p *MockProvider) MockEmbedder() *MockEmbedder {
	return p.embedder
}

// MockCompleter exposes the concrete completer for behavior injection.
func (p *MockProvider) MockCompleter() *MockCompleter {
	return p.completer
}
