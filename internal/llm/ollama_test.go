package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atscan/internal/errors"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestOllamaGenerate(t *testing.T) {
	t.Run("returns response text", func(t *testing.T) {
		var gotReq generateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/generate" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			_ = json.NewEncoder(w).Encode(generateResponse{Response: "rewritten text"})
		}))
		defer srv.Close()

		p := NewOllamaProvider(Config{
			Model:   "llama3.1:8b",
			BaseURL: srv.URL,
			Timeout: 5 * time.Second,
			Options: GenerationOptions{Temperature: 0.3, TopP: 0.9, MaxTokens: 2048},
		}, testLogger(t))

		got, err := p.Generate(context.Background(), "improve this CV")
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if got != "rewritten text" {
			t.Errorf("Generate = %q, want %q", got, "rewritten text")
		}
		if gotReq.Model != "llama3.1:8b" {
			t.Errorf("request model = %q, want llama3.1:8b", gotReq.Model)
		}
		if gotReq.Stream {
			t.Error("request should not ask for streaming")
		}
		if gotReq.Options.Temperature != 0.3 {
			t.Errorf("request temperature = %v, want 0.3", gotReq.Options.Temperature)
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		p := NewOllamaProvider(Config{Model: "m", BaseURL: srv.URL, Timeout: time.Second}, testLogger(t))
		if _, err := p.Generate(context.Background(), "x"); err == nil {
			t.Fatal("expected error for 500 response")
		}
	})

	t.Run("unreachable endpoint is an error", func(t *testing.T) {
		p := NewOllamaProvider(Config{Model: "m", BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, testLogger(t))
		if _, err := p.Generate(context.Background(), "x"); err == nil {
			t.Fatal("expected error for unreachable endpoint")
		}
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		p := NewOllamaProvider(Config{Model: "m", BaseURL: srv.URL, Timeout: time.Second}, testLogger(t))
		if _, err := p.Generate(context.Background(), "x"); err == nil {
			t.Fatal("expected decode error")
		}
	})
}

func TestOllamaListModels(t *testing.T) {
	t.Run("returns model names", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/tags" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"models":[{"name":"llama3.1:8b"},{"name":"mistral:7b"}]}`))
		}))
		defer srv.Close()

		p := NewOllamaProvider(Config{Model: "m", BaseURL: srv.URL}, testLogger(t))
		models, err := p.ListModels(context.Background())
		if err != nil {
			t.Fatalf("ListModels returned error: %v", err)
		}
		if len(models) != 2 || models[0] != "llama3.1:8b" || models[1] != "mistral:7b" {
			t.Errorf("ListModels = %v", models)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer srv.Close()

		p := NewOllamaProvider(Config{Model: "m", BaseURL: srv.URL}, testLogger(t))
		models, err := p.ListModels(context.Background())
		if err != nil {
			t.Fatalf("ListModels returned error: %v", err)
		}
		if len(models) != 0 {
			t.Errorf("expected no models, got %v", models)
		}
	})
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantName string
		wantErr  bool
	}{
		{"empty provider defaults to ollama", "", "ollama", false},
		{"explicit ollama", "ollama", "ollama", false},
		{"unknown provider", "openai", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), Config{Provider: tt.provider, Model: "m"}, testLogger(t))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider returned error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}
