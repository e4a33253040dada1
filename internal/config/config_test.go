package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"atscan/internal/types"
)

func validTestConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.1:8b",
			BaseURL:  "http://localhost:11434",
			Timeout:  120 * time.Second,
		},
		Scoring: ScoringConfig{
			Vocabulary: types.DefaultVocabulary(),
		},
		Optimize: OptimizeConfig{DefaultLevel: "balanced"},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown", "csv"},
			MaxFileSize:      1024 * 1024,
		},
		Store: StoreConfig{DataDir: "data"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid ollama config",
			mutate: func(c *Config) {},
		},
		{
			name:   "empty provider defaults to ollama",
			mutate: func(c *Config) { c.LLM.Provider = "" },
		},
		{
			name: "gemini with api key",
			mutate: func(c *Config) {
				c.LLM.Provider = "gemini"
				c.LLM.APIKey = "test-key"
			},
		},
		{
			name:     "gemini without api key",
			mutate:   func(c *Config) { c.LLM.Provider = "gemini" },
			errorMsg: "LLM API key is required",
		},
		{
			name:     "unknown provider",
			mutate:   func(c *Config) { c.LLM.Provider = "openai" },
			errorMsg: "invalid LLM provider",
		},
		{
			name:     "zero timeout",
			mutate:   func(c *Config) { c.LLM.Timeout = 0 },
			errorMsg: "timeout must be positive",
		},
		{
			name:     "unknown optimization level",
			mutate:   func(c *Config) { c.Optimize.DefaultLevel = "extreme" },
			errorMsg: "invalid default optimization level",
		},
		{
			name:     "missing port",
			mutate:   func(c *Config) { c.Server.Port = "" },
			errorMsg: "server port is required",
		},
		{
			name:     "default format not in supported formats",
			mutate:   func(c *Config) { c.App.DefaultFormat = "xml" },
			errorMsg: "invalid default format",
		},
		{
			name: "broken red-flag pattern",
			mutate: func(c *Config) {
				c.Scoring.Vocabulary.RedFlags = []types.RedFlagRule{
					{Pattern: `\bexpert(`, Message: "broken"},
				}
			},
			errorMsg: "invalid red-flag pattern",
		},
		{
			name:     "invalid TLS mode",
			mutate:   func(c *Config) { c.Server.TLS.Mode = "sideways" },
			errorMsg: "invalid TLS mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.errorMsg)
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestValidateTLSModes(t *testing.T) {
	tests := []struct {
		name     string
		tls      TLSConfig
		errorMsg string
	}{
		{
			name: "server mode with files",
			tls:  TLSConfig{Mode: "server", CertFile: "/certs/server.pem", KeyFile: "/certs/server-key.pem"},
		},
		{
			name: "server mode with content",
			tls:  TLSConfig{Mode: "server", CertContent: "PEM", KeyContent: "PEM"},
		},
		{
			name:     "server mode missing key",
			tls:      TLSConfig{Mode: "server", CertFile: "/certs/server.pem"},
			errorMsg: "TLS certificate and key are required",
		},
		{
			name: "server mode duplicate cert source",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/certs/server.pem", KeyFile: "/certs/server-key.pem",
				CertContent: "PEM", KeyContent: "PEM",
			},
			errorMsg: "cannot specify both certFile and certContent",
		},
		{
			name: "mutual mode with CA",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/certs/server.pem", KeyFile: "/certs/server-key.pem",
				CAFile:           "/certs/ca.pem",
				ClientAuthPolicy: "require",
			},
		},
		{
			name: "mutual mode missing CA",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/certs/server.pem", KeyFile: "/certs/server-key.pem",
			},
			errorMsg: "CA certificate is required",
		},
		{
			name: "bad minimum version",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/certs/server.pem", KeyFile: "/certs/server-key.pem",
				MinVersion: "1.0",
			},
			errorMsg: "invalid TLS minVersion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Server.TLS = tt.tls

			err := cfg.ValidateTLSConfig()
			if tt.errorMsg == "" {
				if err != nil {
					t.Fatalf("ValidateTLSConfig() returned unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("ValidateTLSConfig() error = %v, want it to contain %q", err, tt.errorMsg)
			}
		})
	}
}

func TestApplyServerAPIKeyFallbacks(t *testing.T) {
	t.Run("env keys used when config has none", func(t *testing.T) {
		t.Setenv("ATSCAN_SERVER_APIKEYS", "key-one, key-two ,key-three")

		cfg := validTestConfig()
		cfg.applyFallbacks()

		want := []string{"key-one", "key-two", "key-three"}
		if len(cfg.Server.APIKeys) != len(want) {
			t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
		}
		for i, key := range want {
			if cfg.Server.APIKeys[i] != key {
				t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], key)
			}
		}
	})

	t.Run("config keys win over env", func(t *testing.T) {
		t.Setenv("ATSCAN_SERVER_APIKEYS", "env-key")

		cfg := validTestConfig()
		cfg.Server.APIKeys = []string{"config-key"}
		cfg.applyFallbacks()

		if len(cfg.Server.APIKeys) != 1 || cfg.Server.APIKeys[0] != "config-key" {
			t.Errorf("APIKeys = %v, want [config-key]", cfg.Server.APIKeys)
		}
	})
}

func TestApplyTLSDefaults(t *testing.T) {
	cfg := validTestConfig()
	cfg.Server.TLS = TLSConfig{Mode: "mutual"}
	cfg.applyFallbacks()

	if cfg.Server.TLS.ClientAuthPolicy != "require" {
		t.Errorf("ClientAuthPolicy = %q, want %q", cfg.Server.TLS.ClientAuthPolicy, "require")
	}
	if cfg.Server.TLS.MinVersion != "1.2" {
		t.Errorf("MinVersion = %q, want %q", cfg.Server.TLS.MinVersion, "1.2")
	}
}

func TestApplyVocabularyDefaults(t *testing.T) {
	t.Run("empty vocabulary gets defaults", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Scoring.Vocabulary = types.Vocabulary{}
		cfg.applyFallbacks()

		vocab := cfg.Scoring.Vocabulary
		if len(vocab.PowerVerbs) == 0 {
			t.Error("PowerVerbs should be populated with defaults")
		}
		if len(vocab.SignatureVerbs) != 5 {
			t.Errorf("SignatureVerbs has %d entries, want 5", len(vocab.SignatureVerbs))
		}
		if vocab.Weights.Hard != 0.7 || vocab.Weights.Soft != 0.3 {
			t.Errorf("Weights = %+v, want hard 0.7 soft 0.3", vocab.Weights)
		}
	})

	t.Run("configured list replaces default wholesale", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Scoring.Vocabulary = types.Vocabulary{
			PowerVerbs: []string{"shipped"},
		}
		cfg.applyFallbacks()

		vocab := cfg.Scoring.Vocabulary
		if len(vocab.PowerVerbs) != 1 || vocab.PowerVerbs[0] != "shipped" {
			t.Errorf("PowerVerbs = %v, want [shipped]", vocab.PowerVerbs)
		}
		if len(vocab.TechnicalSkills) == 0 {
			t.Error("TechnicalSkills should still fall back to defaults")
		}
	})
}

func TestLoadVocabularyFromFile(t *testing.T) {
	t.Run("yaml overlay merges with defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vocab.yaml")
		content := "powerVerbs:\n  - shipped\n  - launched\nweights:\n  hard: 0.8\n  soft: 0.2\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write vocabulary file: %v", err)
		}

		vocab, err := LoadVocabularyFromFile(path)
		if err != nil {
			t.Fatalf("LoadVocabularyFromFile() error: %v", err)
		}

		if len(vocab.PowerVerbs) != 2 || vocab.PowerVerbs[0] != "shipped" {
			t.Errorf("PowerVerbs = %v, want [shipped launched]", vocab.PowerVerbs)
		}
		if vocab.Weights.Hard != 0.8 || vocab.Weights.Soft != 0.2 {
			t.Errorf("Weights = %+v, want hard 0.8 soft 0.2", vocab.Weights)
		}
		if len(vocab.Tier1Verbs) == 0 {
			t.Error("Tier1Verbs should be filled from defaults")
		}
	})

	t.Run("json vocabulary", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vocab.json")
		content := `{"signatureVerbs": ["modernized", "consolidated"]}`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write vocabulary file: %v", err)
		}

		vocab, err := LoadVocabularyFromFile(path)
		if err != nil {
			t.Fatalf("LoadVocabularyFromFile() error: %v", err)
		}
		if len(vocab.SignatureVerbs) != 2 || vocab.SignatureVerbs[0] != "modernized" {
			t.Errorf("SignatureVerbs = %v, want [modernized consolidated]", vocab.SignatureVerbs)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadVocabularyFromFile("vocab.toml")
		if err == nil || !strings.Contains(err.Error(), "unsupported vocabulary file format") {
			t.Errorf("expected unsupported format error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadVocabularyFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Error("expected error for missing vocabulary file")
		}
	})
}
