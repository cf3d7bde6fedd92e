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


package ai

// Fixed preference order for generation backends. Both speak the OpenAI
// wire protocol, which is why one client implementation covers them.
const (
	GroqBaseURL = "https://api.groq.com/openai/v1"
	GroqModel   = "llama-3.3-70b-versatile"

	OpenAIBaseURL = "https://api.openai.com/v1"
	OpenAIModel   = "gpt-4o-mini"
)

// Backend describes one resolved generation backend.
type Backend struct {
	Name    string
	BaseURL string
	Model   string
	APIKey  string
}

// SelectBackend picks the generation backend from available credentials:
// Groq wins over OpenAI; no credential selects fallback mode (nil). The
// selection happens once at startup, never per call.
func SelectBackend(groqKey, openAIKey string) *Backend {
	if groqKey != "" {
		return &Backend{Name: "groq", BaseURL: GroqBaseURL, Model: GroqModel, APIKey: groqKey}
	}
	if openAIKey != "" {
		return &Backend{Name: "openai", BaseURL: OpenAIBaseURL, Model: OpenAIModel, APIKey: openAIKey}
	}
	return nil
}
