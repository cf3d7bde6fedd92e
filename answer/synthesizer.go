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

package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/askcampus/ai"
	"github.com/poiesic/askcampus/core"
)

const systemPrompt = `You are an assistant answering questions about an educational institution.
Answer accurately using ONLY the provided context. Be helpful, detailed, and professional.
Always cite sources using [Source: URL] after relevant information.
Format responses with clear sections and bullet points for readability.`

// Synthesizer composes the final reply from retrieved evidence.
type Synthesizer struct {
	completer       ai.Completer
	contextDocs     int
	fallbackDocs    int
	generateTimeout time.Duration
	logger          *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithContextDocs sets how many evidence entries feed the model context.
func WithContextDocs(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.contextDocs = n
		}
	}
}

// WithFallbackDocs sets how many evidence entries the extractive fallback uses.
func WithFallbackDocs(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.fallbackDocs = n
		}
	}
}

// WithGenerateTimeout bounds each model call.
func WithGenerateTimeout(d time.Duration) Option {
	return func(s *Synthesizer) {
		if d > 0 {
			s.generateTimeout = d
		}
	}
}

// NewSynthesizer creates a synthesizer. The completer may be nil, in which
// case every reply is extractive.
func NewSynthesizer(completer ai.Completer, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		completer:       completer,
		contextDocs:     5,
		fallbackDocs:    3,
		generateTimeout: 30 * time.Second,
		logger:          slog.Default().With("component", "synthesizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds the reply for a query from its evidence. It always
// returns usable text; backend failures degrade to the extractive
// fallback rather than surfacing as errors.
func (s *Synthesizer) Generate(ctx context.Context, query string, evidence []core.Evidence) string {
	if len(evidence) == 0 {
		return fmt.Sprintf(
			"No information found for %q in the indexed sources. "+
				"Try rephrasing the question or asking about a related topic.", query)
	}

	if s.completer == nil {
		return s.extractive(query, evidence)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	reply, err := s.completer.Complete(genCtx, systemPrompt, s.userPrompt(query, evidence))
	if err != nil {
		s.logger.Warn("generation failed, using extractive fallback", "err", err)
		return s.extractive(query, evidence)
	}

	return reply + "\n\n" + s.formatSources(evidence)
}

// userPrompt assembles the question together with numbered context blocks.
func (s *Synthesizer) userPrompt(query string, evidence []core.Evidence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nContext from official sources:\n", query)
	for i, ev := range evidence {
		if i >= s.contextDocs {
			break
		}
		fmt.Fprintf(&b, "--- SOURCE %d ---\nTitle: %s\nCategory: %s\nURL: %s\nContent: %s\n\n",
			i+1, ev.Document.Title, ev.Document.Category, ev.Document.Location, ev.Excerpt)
	}
	b.WriteString("Provide a comprehensive answer with source citations.")
	return b.String()
}

// extractive builds a reply directly from the top excerpts, used whenever
// no model is available or the model fails.
func (s *Synthesizer) extractive(query string, evidence []core.Evidence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nBased on the indexed official sources:\n\n", query)
	for i, ev := range evidence {
		if i >= s.fallbackDocs {
			break
		}
		excerpt := ev.Excerpt
		if len(excerpt) > 300 {
			excerpt = excerpt[:300] + "..."
		}
		fmt.Fprintf(&b, "### %d. %s\n\n%s\n\nSource: %s\n\n", i+1, ev.Document.Title, excerpt, ev.Document.Location)
	}
	b.WriteString(s.formatSources(evidence))
	return b.String()
}

// formatSources lists the cited documents in rank order.
func (s *Synthesizer) formatSources(evidence []core.Evidence) string {
	var b strings.Builder
	b.WriteString("---\nSources:\n")
	for i, ev := range evidence {
		if i >= s.contextDocs {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, ev.Document.Title, ev.Document.Location)
	}
	return b.String()
}
