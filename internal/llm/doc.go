// Package llm provides an OpenRouter chat client for the assistant.
//
// The client sends a system and user prompt to the configured model with a
// JSON response format and returns the raw content, or decodes it into a
// target with DecodeLLMJSON, which tolerates code fences and surrounding
// prose.
//
// # Retry Behaviour
//
// Config.Attempts sets the total number of tries. The assistant runs with a
// single attempt; when more are configured, HTTP 408/429/5xx responses,
// network timeouts and empty completions are retried with exponential
// backoff (base 1s, max 10s), honouring Retry-After. Context cancellation
// aborts immediately.
package llm
