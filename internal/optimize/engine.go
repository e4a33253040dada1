// Package optimize rewrites documents for ATS compatibility. Each request
// walks a fixed state machine: build prompt, call the LLM once, parse the
// response, fall back to deterministic rule-based rewrites on any failure,
// then validate the candidate against the original. The engine never returns
// a hard error from an optimization request.
package optimize

import (
	"context"
	"time"

	"atscan/internal/analyze"
	"atscan/internal/errors"
	"atscan/internal/llm"
	"atscan/internal/observability"
	"atscan/internal/types"
)

// Engine executes optimization requests. A nil provider means every request
// takes the rule-based path.
type Engine struct {
	provider llm.Provider
	breaker  *llm.Breaker
	analyzer *analyze.Analyzer
	logger   *errors.Logger
	metrics  *observability.Metrics
}

// NewEngine wires an optimization engine.
func NewEngine(provider llm.Provider, breaker *llm.Breaker, analyzer *analyze.Analyzer, logger *errors.Logger) *Engine {
	return &Engine{
		provider: provider,
		breaker:  breaker,
		analyzer: analyzer,
		logger:   logger,
	}
}

// SetMetrics attaches LLM instrumentation. Nil metrics leave calls untracked.
func (e *Engine) SetMetrics(m *observability.Metrics) {
	e.metrics = m
}

// parsedResponse is the normalized outcome of the LLM call or fallback.
type parsedResponse struct {
	OptimizedContent string
	Improvements     []types.Improvement
	Summary          string
	fallbackUsed     bool
}

// Optimize runs one optimization request to completion. The returned result
// always carries non-empty optimized content; in the worst case it is the
// original text unchanged with fallbackUsed set.
func (e *Engine) Optimize(ctx context.Context, input types.OptimizeInput) *types.OptimizeResult {
	level := NormalizeLevel(input.Level)
	guidelines := GuidelinesFor(level)

	current := e.analyzer.Summarize(input.Content)
	var requirements types.JobRequirements
	if input.JobDescription != "" {
		requirements = e.analyzer.ExtractJobRequirements(input.JobDescription)
	}

	prompt := buildPrompt(input.Content, input.JobDescription, current, requirements, level, guidelines)

	parsed := e.generate(ctx, prompt, input.Content)
	validation := e.Validate(input.Content, parsed.OptimizedContent)

	return &types.OptimizeResult{
		Timestamp:        time.Now(),
		OriginalContent:  input.Content,
		OptimizedContent: parsed.OptimizedContent,
		Improvements:     parsed.Improvements,
		Validation:       validation,
		Level:            level,
		JobDescription:   input.JobDescription,
		Summary:          parsed.Summary,
		FallbackUsed:     parsed.fallbackUsed,
		Success:          true,
	}
}

// generate performs the single LLM call, degrading to the rule-based path on
// any error. No retry is ever attempted: a failing endpoint should not stall
// the request past its timeout.
func (e *Engine) generate(ctx context.Context, prompt, original string) parsedResponse {
	if e.provider == nil {
		return e.ruleBasedRewrite(original)
	}

	var raw string
	err := e.metrics.TrackLLMOperation(ctx, "generate", func(ctx context.Context) error {
		var genErr error
		raw, genErr = e.breaker.Execute(func() (string, error) {
			return e.provider.Generate(ctx, prompt)
		})
		return genErr
	})
	if err != nil {
		e.logger.LogError(err, "LLM optimization failed, applying rule-based fallback",
			"provider", e.provider.Name())
		return e.ruleBasedRewrite(original)
	}

	return parseResponse(raw, original)
}
