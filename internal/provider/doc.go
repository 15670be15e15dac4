// Package provider defines the translation provider consumed by the
// explorer and ships clients for it: the Reverso Context corpus service
// and two LLM-backed providers (OpenAI and Gemini). Wrappers add fallback,
// bounded retry and circuit breaking at the provider boundary.
package provider
