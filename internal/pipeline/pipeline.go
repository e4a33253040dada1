// Package pipeline wires the extraction, analysis, scoring, recommendation,
// optimization and reporting stages into one service shared by the CLI and
// the HTTP server.
package pipeline

import (
	"context"
	"sync"
	"time"

	"atscan/internal/analyze"
	"atscan/internal/config"
	"atscan/internal/errors"
	"atscan/internal/extract"
	"atscan/internal/llm"
	"atscan/internal/observability"
	"atscan/internal/optimize"
	"atscan/internal/recommend"
	"atscan/internal/report"
	"atscan/internal/scoring"
	"atscan/internal/store"
	"atscan/internal/types"
)

// Service runs the scoring pipeline. Scan, Optimize and Suggest are safe for
// concurrent use; SetVocabulary atomically swaps the analysis stack under the
// same lock the operations read through.
type Service struct {
	cfg       *config.Config
	logger    *errors.Logger
	provider  llm.Provider
	breaker   *llm.Breaker
	extractor *extract.Extractor
	documents *store.Store
	metrics   *observability.Metrics

	mu       sync.RWMutex
	analyzer *analyze.Analyzer
	scorer   *scoring.Scorer
	engine   *optimize.Engine
}

// New builds the full pipeline from configuration. The LLM provider is
// constructed eagerly so a misconfigured gemini key fails at startup, not on
// the first optimize request.
func New(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*Service, error) {
	llmCfg := llmConfig(cfg)

	provider, err := llm.NewProvider(ctx, llmCfg, logger)
	if err != nil {
		return nil, err
	}
	breaker := llm.NewBreaker(llmCfg.Breaker, logger)

	s := &Service{
		cfg:       cfg,
		logger:    logger,
		provider:  provider,
		breaker:   breaker,
		extractor: extract.New(logger),
		documents: store.New(cfg.Store.DataDir, logger),
	}
	s.rebuild(cfg.Scoring.Vocabulary)

	logger.Debug("Pipeline initialized",
		"provider", provider.Name(),
		"model", cfg.LLM.Model,
		"breaker_enabled", cfg.LLM.CircuitBreaker.Enabled,
		"data_dir", cfg.Store.DataDir)

	return s, nil
}

// llmConfig maps application configuration onto the provider config.
func llmConfig(cfg *config.Config) llm.Config {
	return llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Timeout:     cfg.LLM.Timeout,
		ListTimeout: cfg.LLM.ListTimeout,
		Options: llm.GenerationOptions{
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			MaxTokens:   cfg.LLM.MaxTokens,
		},
		Breaker: llm.BreakerConfig{
			Enabled:          cfg.LLM.CircuitBreaker.Enabled,
			MaxRequests:      cfg.LLM.CircuitBreaker.MaxRequests,
			Interval:         cfg.LLM.CircuitBreaker.Interval,
			Timeout:          cfg.LLM.CircuitBreaker.Timeout,
			MinRequests:      cfg.LLM.CircuitBreaker.MinRequests,
			FailureThreshold: cfg.LLM.CircuitBreaker.FailureThreshold,
		},
	}
}

// rebuild replaces the vocabulary-derived stages. Callers hold the write lock
// or are still single-threaded during construction.
func (s *Service) rebuild(vocab types.Vocabulary) {
	s.analyzer = analyze.New(vocab)
	s.scorer = scoring.New(vocab)
	s.engine = optimize.NewEngine(s.provider, s.breaker, s.analyzer, s.logger)
	s.engine.SetMetrics(s.metrics)
}

// SetMetrics attaches business and LLM metrics. Optional; a nil-metrics
// service records nothing.
func (s *Service) SetMetrics(m *observability.Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
	s.engine.SetMetrics(m)
}

// SetVocabulary swaps the scoring vocabulary. In-flight operations finish on
// the old stack; subsequent ones see the new one.
func (s *Service) SetVocabulary(vocab types.Vocabulary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuild(vocab)
	s.logger.Info("Scoring vocabulary replaced",
		"power_verbs", len(vocab.PowerVerbs),
		"technical_skills", len(vocab.TechnicalSkills),
		"red_flags", len(vocab.RedFlags))
}

// stack returns the current vocabulary-derived stages.
func (s *Service) stack() (*analyze.Analyzer, *scoring.Scorer, *optimize.Engine) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer, s.scorer, s.engine
}

// Scan scores a document. It never returns an error: empty or malformed text
// produces an all-zero result.
func (s *Service) Scan(ctx context.Context, input types.ScanInput) *types.ScanResult {
	analyzer, scorer, _ := s.stack()

	fs := analyzer.Extract(input.Content, analyze.Options{
		JobDescription: input.JobDescription,
		TargetRole:     input.TargetRole,
	})
	sections := scorer.ScoreSections(fs)
	enhanced, enhancedScore := scorer.Enhanced(fs, sections)

	result := &types.ScanResult{
		Timestamp:               time.Now().UTC(),
		Source:                  input.Source,
		OverallScore:            scorer.Overall(sections),
		Sections:                sections,
		Recommendations:         recommend.Base(sections),
		Enhanced:                enhanced,
		EnhancedScore:           enhancedScore,
		EnhancedRecommendations: recommend.Enhanced(enhanced),
		RedFlags:                scorer.ScanRedFlags(input.Content),
		SpellingIssues:          scorer.SpellingIssues(input.Content),
	}

	if s.metrics != nil {
		s.metrics.RecordBusinessMetric(ctx, "scan", true)
	}
	s.logger.Debug("Scan completed",
		"source", input.Source,
		"overall_score", result.OverallScore,
		"enhanced_score", result.EnhancedScore,
		"recommendations", len(result.Recommendations))

	return result
}

// Optimize rewrites a document. LLM failures never surface: the result
// carries the rule-based fallback instead.
func (s *Service) Optimize(ctx context.Context, input types.OptimizeInput) *types.OptimizeResult {
	if input.Level == "" {
		input.Level = s.cfg.Optimize.DefaultLevel
	}

	_, _, engine := s.stack()
	result := engine.Optimize(ctx, input)

	if s.metrics != nil {
		s.metrics.RecordBusinessMetric(ctx, "optimize", result.Success)
		if result.FallbackUsed {
			s.metrics.RecordBusinessMetric(ctx, "fallback", true)
		}
	}
	s.logger.Debug("Optimization completed",
		"level", result.Level,
		"improvements", len(result.Improvements),
		"fallback_used", result.FallbackUsed,
		"improvement_score", result.Validation.ImprovementScore)

	return result
}

// Suggest produces deterministic improvement suggestions without any LLM
// involvement.
func (s *Service) Suggest(ctx context.Context, content string) []types.Suggestion {
	_, _, engine := s.stack()
	suggestions := engine.Suggestions(content)

	if s.metrics != nil {
		s.metrics.RecordBusinessMetric(ctx, "suggest", true)
	}
	return suggestions
}

// BuildReport assembles the full report for a scan, optionally enriched with
// an optimization run. The optimized text is rescanned so the before/after
// comparison carries a real score.
func (s *Service) BuildReport(ctx context.Context, input types.ScanInput, opt *types.OptimizeResult) *report.Report {
	scan := s.Scan(ctx, input)

	var optimizedScan *types.ScanResult
	if opt != nil && opt.OptimizedContent != opt.OriginalContent {
		optimizedScan = s.Scan(ctx, types.ScanInput{
			Content:        opt.OptimizedContent,
			JobDescription: input.JobDescription,
			TargetRole:     input.TargetRole,
			Source:         input.Source,
		})
	}

	return report.Build(scan, opt, optimizedScan)
}

// ExtractFile reads a document from disk, extracting text from docx archives
// and degrading to an empty string for unsupported binary formats.
func (s *Service) ExtractFile(path string) (string, error) {
	return s.extractor.FromFile(path)
}

// ListModels queries the configured endpoint for available models.
func (s *Service) ListModels(ctx context.Context) ([]string, error) {
	return s.provider.ListModels(ctx)
}

// ProviderName identifies the active LLM provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// Documents exposes the flat-file document store.
func (s *Service) Documents() *store.Store {
	return s.documents
}

// Stats reports runtime state for the /stats endpoint.
func (s *Service) Stats() map[string]any {
	return map[string]any{
		"provider":        s.provider.Name(),
		"model":           s.cfg.LLM.Model,
		"circuit_breaker": s.breaker.Stats(),
	}
}

// Healthy reports whether the LLM path is usable. A degraded LLM never makes
// the service unhealthy for scoring; callers decide how to weigh it.
func (s *Service) Healthy() bool {
	return s.breaker.Healthy()
}

// Close releases provider resources.
func (s *Service) Close() error {
	return s.provider.Close()
}
