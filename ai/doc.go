// Package ai provides abstractions for the AI services the retrieval core
// depends on.
//
// Two concerns live behind interfaces here:
//
//   - Embedder: turns text into fixed-length vectors for the dense index
//   - Completer: turns a grounded prompt into prose for answer synthesis
//
// A Provider bundles both and is resolved exactly once at startup by
// SelectBackend: the first generation backend with a credential wins (Groq
// before OpenAI), and the absence of any credential resolves to a provider
// whose Completer is nil. Components never probe for backends at call time.
//
// The ai/openai sub-package implements both services against any
// OpenAI-compatible endpoint; ai/mock provides deterministic test doubles.
package ai
