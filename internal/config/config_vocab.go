package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"atscan/internal/types"

	"github.com/spf13/viper"
)

// loadVocabularyFile overlays the external vocabulary file, when configured,
// onto the current scoring vocabulary.
func (c *Config) loadVocabularyFile() error {
	if c.Scoring.VocabularyFile == "" {
		return nil
	}

	vocab, err := LoadVocabularyFromFile(c.Scoring.VocabularyFile)
	if err != nil {
		return err
	}

	c.Scoring.Vocabulary = vocab
	log.Printf("[CONFIG] Loaded scoring vocabulary from %s", c.Scoring.VocabularyFile)
	return nil
}

// LoadVocabularyFromFile reads a vocabulary file (YAML or JSON) and merges it
// with the built-in defaults. The vocabulary watcher reloads through the same
// path so file and startup semantics stay identical.
func LoadVocabularyFromFile(path string) (types.Vocabulary, error) {
	v := viper.New()
	v.SetConfigFile(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	case ".json":
		v.SetConfigType("json")
	default:
		return types.Vocabulary{}, fmt.Errorf("unsupported vocabulary file format: %s (must be .yaml, .yml, or .json)", path)
	}

	if err := v.ReadInConfig(); err != nil {
		return types.Vocabulary{}, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var vocab types.Vocabulary
	if err := v.Unmarshal(&vocab); err != nil {
		return types.Vocabulary{}, fmt.Errorf("failed to unmarshal vocabulary file %s: %w", path, err)
	}

	return types.MergeVocabularyDefaults(vocab), nil
}
