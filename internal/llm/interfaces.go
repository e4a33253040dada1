// Package llm provides the transport to external language-model services.
// Providers make a single synchronous call per request; retries are never
// performed here, failure handling belongs to the optimization engine.
package llm

import (
	"context"
	"time"
)

// Provider is the interface every LLM backend implements.
type Provider interface {
	// Generate submits a prompt and returns the raw text response.
	Generate(ctx context.Context, prompt string) (string, error)
	// ListModels returns the model names the endpoint advertises.
	ListModels(ctx context.Context) ([]string, error)
	// Name identifies the provider ("ollama", "gemini").
	Name() string
	// Close releases any held resources.
	Close() error
}

// GenerationOptions are the sampling parameters sent with every request.
// The low default temperature keeps rewrites reproducibility-leaning.
type GenerationOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// DefaultGenerationOptions returns the standard sampling parameters.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Temperature: 0.3,
		TopP:        0.9,
		MaxTokens:   4000,
	}
}

// Config selects and parameterizes a provider.
type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Options     GenerationOptions
	Timeout     time.Duration
	ListTimeout time.Duration
	Breaker     BreakerConfig
}
