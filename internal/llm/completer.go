// Package llm provides a client for an Ollama-compatible completion endpoint.
//
// The pipeline sends a single prompt per run and reads back plain text; there
// is no streaming, no retry, and no timeout beyond the HTTP client default.
// Single-shot generation is intentional.
//
// Key types:
//   - [Completer] - Interface for text completion, enabling test doubles
//   - [OllamaClient] - Production implementation against the completions API
//   - [ModelError] - Wrapper for every model-backend failure
//
// For testing, use [MockCompleter] which implements [Completer] without
// network access.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNoCompletion indicates the model responded without any completion text.
// Always wrapped in a [*ModelError]; check with [errors.Is].
var ErrNoCompletion = errors.New("no completion in response")

// ModelError wraps any failure from the language-model backend.
//
// StatusCode is the HTTP status for non-2xx responses and zero otherwise.
// Err carries the underlying cause and may be [ErrNoCompletion].
type ModelError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ModelError) Unwrap() error {
	return e.Err
}

// Completer is the interface for language-model text completion.
//
// Complete sends a prompt and returns the raw completion text. Failures are
// reported as [*ModelError]. [OllamaClient] is the production implementation;
// [MockCompleter] serves tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OllamaClient implements [Completer] against an OpenAI-style completions
// endpoint as served by a local Ollama instance.
//
// Create instances with [NewOllamaClient]. Sampling parameters are fixed per
// client: every call uses the same model, max token budget and temperature.
type OllamaClient struct {
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewOllamaClient creates an [OllamaClient].
//
// endpoint is the full completions URL; empty selects
// "http://localhost:11434/v1/completions". model empty selects
// "llama3.1:latest". maxTokens and temperature bound the generation; zero
// maxTokens selects 1024.
func NewOllamaClient(endpoint, model string, maxTokens int, temperature float64) *OllamaClient {
	if endpoint == "" {
		endpoint = "http://localhost:11434/v1/completions"
	}
	if model == "" {
		model = "llama3.1:latest"
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &OllamaClient{
		endpoint:    endpoint,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		client:      &http.Client{},
	}
}

// completionRequest is the JSON body sent to the completions endpoint.
type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// completionResponse is the JSON body returned by the completions endpoint,
// restricted to the field the pipeline reads.
type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete sends the prompt and returns the first choice's text.
//
// A non-2xx status is a [*ModelError] carrying the status code and a body
// excerpt. An undecodable body or a response without choices is a
// [*ModelError] wrapping the decode error or [ErrNoCompletion].
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Prompt:      prompt,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", &ModelError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ModelError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ModelError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &ModelError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("completion request failed: %s", strings.TrimSpace(string(excerpt))),
		}
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ModelError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	if len(result.Choices) == 0 {
		return "", &ModelError{Err: ErrNoCompletion}
	}

	return result.Choices[0].Text, nil
}
