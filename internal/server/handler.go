package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"atscan/internal/observability"
	"atscan/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createScanHandler wraps the scan handler with observability
func (s *Server) createScanHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscan.api")
		ctx, span := tracer.Start(ctx, "api.scan")
		defer span.End()

		// Parse request
		var req ScanRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.Content) == "" {
			err := fmt.Errorf("missing CV content")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing CV content", "content field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if s.MaxRequestSize > 0 && len(req.Content) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("CV content too large: %d chars", len(req.Content))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "CV content too large", fmt.Sprintf("content exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.cv_length", len(req.Content)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("request.target_role", req.TargetRole),
			attribute.String("operation", "scan"),
		)

		result := s.Pipeline.Scan(ctx, types.ScanInput{
			Content:        req.Content,
			JobDescription: req.JobDescription,
			TargetRole:     req.TargetRole,
			Source:         req.Source,
		})

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.overall_score", result.OverallScore),
			attribute.Int("response.enhanced_score", result.EnhancedScore),
			attribute.Int("response.recommendations", len(result.Recommendations)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createOptimizeHandler wraps the optimize handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscan.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			err := fmt.Errorf("missing CV content")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing CV content", "content field is required", http.StatusBadRequest)
			return
		}
		if req.Level != "" && req.Level != "conservative" && req.Level != "balanced" && req.Level != "aggressive" {
			err := fmt.Errorf("invalid optimization level: %s", req.Level)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid optimization level", "level must be conservative, balanced or aggressive", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.cv_length", len(req.Content)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("request.level", req.Level),
			attribute.String("operation", "optimize"),
		)

		// The pipeline falls back to the rule-based rewriter on any model
		// failure, so optimization itself never produces an HTTP error.
		result := s.Pipeline.Optimize(ctx, types.OptimizeInput{
			Content:        req.Content,
			JobDescription: req.JobDescription,
			Level:          req.Level,
		})

		span.SetAttributes(
			attribute.Bool("success", result.Success),
			attribute.Bool("fallback_used", result.FallbackUsed),
			attribute.String("response.level", result.Level),
			attribute.Int("response.improvements", len(result.Improvements)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createSuggestHandler wraps the suggest handler with observability
func (s *Server) createSuggestHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscan.api")
		ctx, span := tracer.Start(ctx, "api.suggest")
		defer span.End()

		var req SuggestRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			err := fmt.Errorf("missing CV content")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing CV content", "content field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.cv_length", len(req.Content)),
			attribute.String("operation", "suggest"),
		)

		suggestions := s.Pipeline.Suggest(ctx, req.Content)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.suggestions", len(suggestions)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(suggestions); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
