// Package llm abstracts the language model service behind a Provider
// interface so the pipeline can run against a deterministic stub in tests.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sago-ai/sago/internal/model"
)

var (
	// ErrModelUnavailable indicates a network or auth failure reaching the
	// language model service.
	ErrModelUnavailable = errors.New("language model unavailable")

	// ErrModelOutput indicates the response did not match the expected
	// schema even after one repair attempt.
	ErrModelOutput = errors.New("language model output did not match expected schema")
)

// Provider defines the interface for language model providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate runs one completion for the given request
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request contains the input for one generation call
type Request struct {
	System      string  // Optional system instruction
	Prompt      string  // User prompt
	Model       string  // Override of the configured model, optional
	MaxTokens   int     // 0 = provider default
	Temperature float32 // Low values for factual output
}

// Response contains the generated output
type Response struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds language model provider configuration
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}

var (
	fenceRe   = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	controlRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x9f]`)
)

// DecodeJSON extracts structured output from a model response. Models tend
// to wrap JSON in markdown fences or prose; this strips fences, isolates the
// outermost array or object, and makes one repair attempt (control character
// strip) before giving up with ErrModelOutput.
func DecodeJSON(text string, v interface{}) error {
	candidate := strings.TrimSpace(text)

	if m := fenceRe.FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	candidate = isolateJSON(candidate)
	if candidate == "" {
		return fmt.Errorf("%w: no JSON payload in response", ErrModelOutput)
	}

	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return nil
	}

	// Repair attempt: models occasionally emit raw control characters
	repaired := controlRe.ReplaceAllString(candidate, " ")
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: %v", ErrModelOutput, err)
	}
	return nil
}

// isolateJSON returns the outermost JSON array or object in the text.
func isolateJSON(text string) string {
	arrStart := strings.Index(text, "[")
	objStart := strings.Index(text, "{")

	start, closer := arrStart, "]"
	if arrStart == -1 || (objStart != -1 && objStart < arrStart) {
		start, closer = objStart, "}"
	}
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(text, closer)
	if end <= start {
		return ""
	}
	return text[start : end+1]
}
