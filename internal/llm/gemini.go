package llm

import (
	"context"
	"net/http"

	"atscan/internal/errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *errors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, cfg Config, logger *errors.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey, "Gemini provider requires an API key", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewLLMError(errors.ErrCodeLLMFailed, "Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Options.Temperature),
		logger:      logger,
	}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

// Close implements Provider. The genai client holds no resources in
// single-shot usage.
func (g *GeminiProvider) Close() error { return nil }

// Generate performs one synchronous generation call. Transient upstream
// statuses are logged but still surfaced; the caller owns degradation.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if g.temperature > 0 {
		temp := g.temperature
		config.Temperature = &temp
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code >= http.StatusInternalServerError {
			g.logger.Warn("Gemini upstream error", "status", apiErr.Code, "model", g.model)
		}
		return "", errors.NewLLMError(errors.ErrCodeLLMFailed, "Gemini generation failed", err).
			WithContext("model", g.model)
	}

	return result.Text(), nil
}

// ListModels reports the configured model when it is reachable.
func (g *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	model, err := g.client.Models.Get(ctx, g.model, &genai.GetModelConfig{})
	if err != nil {
		return nil, errors.NewLLMError(errors.ErrCodeLLMFailed, "Failed to get Gemini model info", err)
	}
	return []string{model.Name}, nil
}
