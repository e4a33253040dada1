package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat checks a requested report format (json, text, markdown,
// csv) against the configured allow-list before the formatter registry is
// consulted. An empty list means every registered format is accepted.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the configured format allow-list for help text
// and error messages.
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
