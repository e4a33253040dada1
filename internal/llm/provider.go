package llm

import (
	"context"
	"fmt"

	"atscan/internal/errors"
)

// NewProvider builds the configured provider. Ollama is the default.
func NewProvider(ctx context.Context, cfg Config, logger *errors.Logger) (Provider, error) {
	switch cfg.Provider {
	case "", "ollama":
		return NewOllamaProvider(cfg, logger), nil
	case "gemini":
		return NewGeminiProvider(ctx, cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported LLM provider: %s", cfg.Provider), nil)
	}
}
