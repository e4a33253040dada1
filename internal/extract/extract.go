// Package extract reads document text from supported file formats. Plain
// text and markdown are read directly; docx is unpacked from the OOXML
// archive. Unsupported formats degrade to an empty document with a warning
// instead of failing the request.
package extract

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"atscan/internal/errors"
)

// Extractor converts files into plain text for analysis.
type Extractor struct {
	logger *errors.Logger
}

// New returns an Extractor.
func New(logger *errors.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// SupportedExtensions lists the extensions that yield text content.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".docx"}
}

// FromFile extracts the text content of path based on its extension.
// PDF and unknown formats return an empty document; downstream scoring
// treats that as a document with nothing to score.
func (e *Extractor) FromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "Failed to read file", err).
				WithContext("path", path)
		}
		return string(data), nil
	case ".docx":
		text, err := extractDocx(path)
		if err != nil {
			return "", err
		}
		return text, nil
	case ".pdf":
		e.logger.Warn("PDF extraction is not supported, treating document as empty", "path", path)
		return "", nil
	default:
		e.logger.Warn("Unsupported file format, treating document as empty", "path", path)
		return "", nil
	}
}

// extractDocx pulls paragraph text out of the OOXML main document part.
// Paragraph and line-break boundaries become newlines.
func extractDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed, "Failed to open docx archive", err).
			WithContext("path", path)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed, "Failed to open docx document part", err).
				WithContext("path", path)
		}
		defer rc.Close()
		return walkDocumentXML(rc, path)
	}

	return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed, "Docx archive has no document part", nil).
		WithContext("path", path)
}

func walkDocumentXML(r io.Reader, path string) (string, error) {
	decoder := xml.NewDecoder(r)
	var b strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed, "Failed to parse docx document XML", err).
				WithContext("path", path)
		}

		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				b.WriteString("\n")
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}
