// Package predictor provides prediction service clients.
//
// Providers:
//   - modelserver: HTTP client for an external model-serving process
//   - anthropic: LLM-backed tagging via the Anthropic API
package predictor
