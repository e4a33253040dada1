// Package store is the flat-file document store. Each document is one JSON
// file under the base directory; writes are last-write-wins and unreadable
// entries are skipped on listing rather than failing the whole operation.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"atscan/internal/errors"
)

// Collection names the two document kinds the store manages.
type Collection string

const (
	CollectionCVs             Collection = "cvs"
	CollectionJobDescriptions Collection = "job_descriptions"
)

// Document is one stored entry.
type Document struct {
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	SavedAt   time.Time `json:"savedAt"`
	SizeBytes int       `json:"sizeBytes"`
}

// Store persists documents as JSON files under baseDir/<collection>/.
type Store struct {
	baseDir string
	logger  *errors.Logger
}

// New returns a Store rooted at baseDir.
func New(baseDir string, logger *errors.Logger) *Store {
	return &Store{baseDir: baseDir, logger: logger}
}

// Save writes a document, replacing any previous version with the same name.
func (s *Store) Save(collection Collection, name, content string) (*Document, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.baseDir, string(collection))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStoreFailed, "Failed to create store directory", err).
			WithContext("dir", dir)
	}

	doc := &Document{
		Name:      name,
		Content:   content,
		SavedAt:   time.Now(),
		SizeBytes: len(content),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeStoreFailed, "Failed to encode document", err)
	}

	path := s.path(collection, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStoreFailed, "Failed to write document", err).
			WithContext("path", path)
	}
	return doc, nil
}

// Get loads one document by name.
func (s *Store) Get(collection Collection, name string) (*Document, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	path := s.path(collection, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound, "Document not found", err).
				WithContext("name", name)
		}
		return nil, errors.NewIOError(errors.ErrCodeStoreFailed, "Failed to read document", err).
			WithContext("path", path)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStoreFailed, "Failed to decode document", err).
			WithContext("path", path)
	}
	return &doc, nil
}

// List returns all readable documents in a collection, sorted by name.
// Corrupt or unreadable entries are logged and skipped.
func (s *Store) List(collection Collection) ([]*Document, error) {
	dir := filepath.Join(s.baseDir, string(collection))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIOError(errors.ErrCodeStoreFailed, "Failed to list documents", err).
			WithContext("dir", dir)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		doc, err := s.Get(collection, name)
		if err != nil {
			s.logger.Warn("Skipping unreadable document", "collection", string(collection), "name", name, "error", err.Error())
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// Delete removes one document. Deleting a missing document is an error.
func (s *Store) Delete(collection Collection, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	path := s.path(collection, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NewIOError(errors.ErrCodeFileNotFound, "Document not found", err).
				WithContext("name", name)
		}
		return errors.NewIOError(errors.ErrCodeStoreFailed, "Failed to delete document", err).
			WithContext("path", path)
	}
	return nil
}

func (s *Store) path(collection Collection, name string) string {
	return filepath.Join(s.baseDir, string(collection), name+".json")
}

// validateName rejects names that would escape the collection directory.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "Invalid document name", nil).
			WithContext("name", name)
	}
	return nil
}
