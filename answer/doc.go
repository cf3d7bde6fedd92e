// Package answer turns retrieved evidence into a user-facing reply.
//
// With a chat backend available, the Synthesizer asks the model to answer
// strictly from the retrieved context and appends the source list. Without
// a backend, or when the backend fails or times out, it falls back to a
// deterministic extractive reply built from the top excerpts. Synthesis
// never fails a query; the worst case is the fallback text.
package answer
