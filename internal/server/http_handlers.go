package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	atscanErrors "atscan/internal/errors"
	"atscan/internal/store"
)

// getModelCheckTimeout returns the configured model health check timeout
func (s *Server) getModelCheckTimeout() time.Duration {
	timeout := s.AppConfig.Observability.HealthCheck.ModelCheckTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return timeout
}

// healthHandler provides a health check endpoint including LLM endpoint status.
// Scoring and suggestions work without the model, so a degraded LLM reports
// status "degraded" but still answers 200.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "atscan",
		"version": s.Version,
	}

	llmStatus := s.checkLLMHealth()
	response["llm"] = llmStatus

	if s.VocabWatcher != nil {
		response["vocabulary_watcher"] = map[string]any{
			"running":      s.VocabWatcher.IsRunning(),
			"watched_file": s.VocabWatcher.WatchedFile(),
		}
	}

	if available, ok := llmStatus["available"].(bool); ok && !available {
		response["status"] = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkLLMHealth probes the configured LLM endpoint and circuit breaker state
func (s *Server) checkLLMHealth() map[string]any {
	ctx, cancel := context.WithTimeout(context.Background(), s.getModelCheckTimeout())
	defer cancel()

	llmStatus := map[string]any{
		"provider":                s.Pipeline.ProviderName(),
		"model":                   s.AppConfig.LLM.Model,
		"circuit_breaker_healthy": s.Pipeline.Healthy(),
	}

	models, err := s.Pipeline.ListModels(ctx)
	if err != nil {
		llmStatus["available"] = false
		llmStatus["error"] = fmt.Sprintf("Failed to list models: %v", err)
		return llmStatus
	}

	llmStatus["available"] = s.Pipeline.Healthy()
	llmStatus["models_count"] = len(models)
	return llmStatus
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service":  "atscan",
		"version":  s.Version,
		"pipeline": s.Pipeline.Stats(),
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// documentsHandler serves the flat-file document store:
//
//	GET    /documents/{collection}         list documents
//	GET    /documents/{collection}/{name}  fetch one document
//	PUT    /documents/{collection}/{name}  save a document
//	DELETE /documents/{collection}/{name}  remove a document
func (s *Server) documentsHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/documents/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)

	collection, ok := parseCollection(parts[0])
	if !ok {
		writeErrorResponse(w, "Unknown collection", "collection must be 'cvs' or 'job_descriptions'", http.StatusNotFound)
		return
	}

	docs := s.Pipeline.Documents()

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		list, err := docs.List(collection)
		if err != nil {
			s.writeStoreError(w, err, "Failed to list documents")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(list); err != nil {
			log.Printf("Failed to encode documents response: %v", err)
		}
		return
	}

	name := parts[1]
	switch r.Method {
	case http.MethodGet:
		doc, err := docs.Get(collection, name)
		if err != nil {
			s.writeStoreError(w, err, "Failed to read document")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			log.Printf("Failed to encode document response: %v", err)
		}

	case http.MethodPut, http.MethodPost:
		var req SaveDocumentRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeErrorResponse(w, "Missing document content", "content field is required", http.StatusBadRequest)
			return
		}
		doc, err := docs.Save(collection, name, req.Content)
		if err != nil {
			s.writeStoreError(w, err, "Failed to save document")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			log.Printf("Failed to encode document response: %v", err)
		}

	case http.MethodDelete:
		if err := docs.Delete(collection, name); err != nil {
			s.writeStoreError(w, err, "Failed to delete document")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// parseCollection maps a URL segment onto a store collection
func parseCollection(segment string) (store.Collection, bool) {
	switch segment {
	case string(store.CollectionCVs):
		return store.CollectionCVs, true
	case string(store.CollectionJobDescriptions):
		return store.CollectionJobDescriptions, true
	default:
		return "", false
	}
}

// writeStoreError maps store errors onto HTTP status codes
func (s *Server) writeStoreError(w http.ResponseWriter, err error, message string) {
	status := http.StatusInternalServerError
	var appErr *atscanErrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case atscanErrors.ErrCodeFileNotFound:
			status = http.StatusNotFound
		case atscanErrors.ErrCodeInvalidRequest:
			status = http.StatusBadRequest
		}
	}
	if status == http.StatusInternalServerError {
		s.Logger.LogError(err, message)
	}
	writeErrorResponse(w, message, err.Error(), status)
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
