package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"atscan/internal/errors"
)

const (
	defaultGenerateTimeout  = 120 * time.Second
	defaultListTimeout      = 5 * time.Second
	defaultOllamaBaseURL    = "http://localhost:11434"
	maxResponseBodyBytes    = 8 << 20
)

// OllamaProvider talks to a local Ollama-style HTTP endpoint:
// POST /api/generate and GET /api/tags.
type OllamaProvider struct {
	baseURL     string
	model       string
	options     GenerationOptions
	timeout     time.Duration
	listTimeout time.Duration
	client      *http.Client
	logger      *errors.Logger
}

// Ensure OllamaProvider implements Provider
var _ Provider = (*OllamaProvider)(nil)

// NewOllamaProvider creates a provider for the configured endpoint.
func NewOllamaProvider(cfg Config, logger *errors.Logger) *OllamaProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	listTimeout := cfg.ListTimeout
	if listTimeout <= 0 {
		listTimeout = defaultListTimeout
	}

	return &OllamaProvider{
		baseURL:     baseURL,
		model:       cfg.Model,
		options:     cfg.Options,
		timeout:     timeout,
		listTimeout: listTimeout,
		client:      &http.Client{},
		logger:      logger,
	}
}

func (o *OllamaProvider) Name() string { return "ollama" }

// Close implements Provider. The shared http.Client holds nothing to release.
func (o *OllamaProvider) Close() error { return nil }

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate performs one synchronous generation call with the bounded timeout.
// Any failure is returned as-is; callers decide how to degrade.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: o.options.Temperature,
			TopP:        o.options.TopP,
			MaxTokens:   o.options.MaxTokens,
		},
	})
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeLLMFailed, "Failed to encode generation request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeLLMFailed, "Failed to build generation request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", errors.NewNetworkError(errors.ErrCodeLLMFailed, "LLM generation request failed", err).
			WithContext("model", o.model)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewLLMError(errors.ErrCodeLLMFailed,
			fmt.Sprintf("LLM endpoint returned status %d", resp.StatusCode), nil).
			WithContext("model", o.model)
	}

	var decoded generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&decoded); err != nil {
		return "", errors.NewLLMError(errors.ErrCodeLLMBadResponse, "Failed to decode LLM response", err)
	}

	return decoded.Response, nil
}

// ListModels queries the endpoint's model catalog with the short timeout.
func (o *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeLLMFailed, "Failed to build model list request", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeLLMFailed, "Model list request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewLLMError(errors.ErrCodeLLMFailed,
			fmt.Sprintf("Model list returned status %d", resp.StatusCode), nil)
	}

	var decoded tagsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&decoded); err != nil {
		return nil, errors.NewLLMError(errors.ErrCodeLLMBadResponse, "Failed to decode model list", err)
	}

	names := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
