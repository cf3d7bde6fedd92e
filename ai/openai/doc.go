// Package openai implements the ai interfaces against OpenAI-compatible
// HTTP APIs via langchaingo. One implementation serves OpenAI, Groq, and
// local servers such as Ollama, since they share the wire protocol and
// differ only in base URL, model name, and credential.
package openai
