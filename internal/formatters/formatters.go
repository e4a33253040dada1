package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"atscan/internal/report"
	"atscan/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScanResult", &ScanTextFormatter{})
	registry.RegisterFormatter("markdown", "ScanResult", &ScanMarkdownFormatter{})
	registry.RegisterFormatter("text", "OptimizeResult", &OptimizeTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizeResult", &OptimizeMarkdownFormatter{})
	registry.RegisterFormatter("text", "Suggestions", &SuggestionsTextFormatter{})
	registry.RegisterFormatter("markdown", "Suggestions", &SuggestionsMarkdownFormatter{})
	registry.RegisterFormatter("text", "Report", &ReportTextFormatter{})
	registry.RegisterFormatter("csv", "Report", &ReportCSVFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case *types.ScanResult:
		return "ScanResult"
	case *types.OptimizeResult:
		return "OptimizeResult"
	case []types.Suggestion:
		return "Suggestions"
	case *report.Report:
		return "Report"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScanTextFormatter handles text formatting for scan results
type ScanTextFormatter struct{}

func (stf *ScanTextFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.ScanResult)
	if !ok {
		return "", fmt.Errorf("expected *ScanResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCAN RESULTS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n", result.OverallScore))
	if result.Enhanced != nil {
		output.WriteString(fmt.Sprintf("Enhanced Score: %d/100\n", result.EnhancedScore))
	}
	output.WriteString("\n")

	output.WriteString("=== SECTION SCORES ===\n")
	output.WriteString(fmt.Sprintf("Keywords: %.0f/100\n", result.Sections.Keywords.JobMatch.Score))
	output.WriteString(fmt.Sprintf("Formatting: %.0f/100\n", result.Sections.Formatting.OverallScore))
	output.WriteString(fmt.Sprintf("Content Quality: %.0f/100\n", result.Sections.ContentQuality.QualityScore))
	output.WriteString(fmt.Sprintf("ATS Compatibility: %.0f/100\n", result.Sections.ATSCompatibility.Score))
	output.WriteString(fmt.Sprintf("Quantification: %.1f%% of bullets\n\n", result.Sections.Quantification.Rate))

	if len(result.Sections.ATSCompatibility.Issues) > 0 {
		output.WriteString("=== ATS ISSUES ===\n")
		for _, issue := range result.Sections.ATSCompatibility.Issues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.RedFlags) > 0 {
		output.WriteString("=== RED FLAGS ===\n")
		for _, flag := range result.RedFlags {
			output.WriteString(fmt.Sprintf("- %s\n", flag.Message))
		}
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		output.WriteString("\n")
	}

	if len(result.EnhancedRecommendations) > 0 {
		output.WriteString("=== STANDARDS RECOMMENDATIONS ===\n")
		for i, rec := range result.EnhancedRecommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func (stf *ScanTextFormatter) SupportedType() string {
	return "ScanResult"
}

// ScanMarkdownFormatter handles markdown formatting for scan results
type ScanMarkdownFormatter struct{}

func (smf *ScanMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.ScanResult)
	if !ok {
		return "", fmt.Errorf("expected *ScanResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Scan Results\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.OverallScore))
	if result.Enhanced != nil {
		output.WriteString(fmt.Sprintf("**Enhanced Score:** %d/100\n\n", result.EnhancedScore))
	}

	output.WriteString("## Section Scores\n\n")
	output.WriteString("| Section | Score |\n")
	output.WriteString("|---------|-------|\n")
	output.WriteString(fmt.Sprintf("| Keywords | %.0f/100 |\n", result.Sections.Keywords.JobMatch.Score))
	output.WriteString(fmt.Sprintf("| Formatting | %.0f/100 |\n", result.Sections.Formatting.OverallScore))
	output.WriteString(fmt.Sprintf("| Content Quality | %.0f/100 |\n", result.Sections.ContentQuality.QualityScore))
	output.WriteString(fmt.Sprintf("| ATS Compatibility | %.0f/100 |\n", result.Sections.ATSCompatibility.Score))
	output.WriteString(fmt.Sprintf("| Quantification | %.1f%% |\n\n", result.Sections.Quantification.Rate))

	if len(result.Sections.ATSCompatibility.Issues) > 0 {
		output.WriteString("## ATS Issues\n\n")
		for _, issue := range result.Sections.ATSCompatibility.Issues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.RedFlags) > 0 {
		output.WriteString("## Red Flags\n\n")
		for _, flag := range result.RedFlags {
			output.WriteString(fmt.Sprintf("- %s\n", flag.Message))
		}
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		output.WriteString("\n")
	}

	if len(result.EnhancedRecommendations) > 0 {
		output.WriteString("## Standards Recommendations\n\n")
		for i, rec := range result.EnhancedRecommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func (smf *ScanMarkdownFormatter) SupportedType() string {
	return "ScanResult"
}

// OptimizeTextFormatter handles text formatting for optimization results
type OptimizeTextFormatter struct{}

func (otf *OptimizeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.OptimizeResult)
	if !ok {
		return "", fmt.Errorf("expected *OptimizeResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPTIMIZED CV ===\n\n")
	output.WriteString(result.OptimizedContent)
	output.WriteString("\n\n")

	output.WriteString("=== OPTIMIZATION SUMMARY ===\n")
	output.WriteString(fmt.Sprintf("Level: %s\n", result.Level))
	output.WriteString(fmt.Sprintf("Summary: %s\n", result.Summary))
	if result.FallbackUsed {
		output.WriteString("Note: rule-based fallback was used\n")
	}
	output.WriteString("\n")

	if len(result.Improvements) > 0 {
		output.WriteString("=== IMPROVEMENTS ===\n\n")
		for i, imp := range result.Improvements {
			output.WriteString(fmt.Sprintf("%d. [%s] impact %d/10\n", i+1, imp.Section, imp.ImpactScore))
			output.WriteString(fmt.Sprintf("   Original: %s\n", imp.Original))
			output.WriteString(fmt.Sprintf("   Improved: %s\n", imp.Improved))
			output.WriteString(fmt.Sprintf("   Reason: %s\n\n", imp.Reason))
		}
	}

	output.WriteString("=== VALIDATION ===\n")
	output.WriteString(fmt.Sprintf("Improvement Score: %d/100\n", result.Validation.ImprovementScore))
	output.WriteString(fmt.Sprintf("Validation Passed: %t\n", result.Validation.Passed))

	return output.String(), nil
}

func (otf *OptimizeTextFormatter) SupportedType() string {
	return "OptimizeResult"
}

// OptimizeMarkdownFormatter handles markdown formatting for optimization results
type OptimizeMarkdownFormatter struct{}

func (omf *OptimizeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(*types.OptimizeResult)
	if !ok {
		return "", fmt.Errorf("expected *OptimizeResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Optimized CV\n\n")
	output.WriteString(result.OptimizedContent)
	output.WriteString("\n\n")

	output.WriteString("## Optimization Summary\n\n")
	output.WriteString(fmt.Sprintf("**Level:** %s\n\n", result.Level))
	output.WriteString(fmt.Sprintf("**Summary:** %s\n\n", result.Summary))
	if result.FallbackUsed {
		output.WriteString("**Note:** rule-based fallback was used\n\n")
	}

	if len(result.Improvements) > 0 {
		output.WriteString("## Improvements\n\n")
		for i, imp := range result.Improvements {
			output.WriteString(fmt.Sprintf("### %d. %s (impact %d/10)\n\n", i+1, imp.Section, imp.ImpactScore))
			output.WriteString(fmt.Sprintf("**Original:** %s\n\n", imp.Original))
			output.WriteString(fmt.Sprintf("**Improved:** %s\n\n", imp.Improved))
			output.WriteString(fmt.Sprintf("**Reason:** %s\n\n", imp.Reason))
		}
	}

	output.WriteString("## Validation\n\n")
	output.WriteString(fmt.Sprintf("**Improvement Score:** %d/100\n\n", result.Validation.ImprovementScore))
	output.WriteString(fmt.Sprintf("**Validation Passed:** %t\n", result.Validation.Passed))

	return output.String(), nil
}

func (omf *OptimizeMarkdownFormatter) SupportedType() string {
	return "OptimizeResult"
}

// SuggestionsTextFormatter handles text formatting for suggestion lists
type SuggestionsTextFormatter struct{}

func (stf *SuggestionsTextFormatter) Format(data any) (string, error) {
	suggestions, ok := data.([]types.Suggestion)
	if !ok {
		return "", fmt.Errorf("expected []Suggestion, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPTIMIZATION SUGGESTIONS ===\n\n")
	if len(suggestions) == 0 {
		output.WriteString("No suggestions. The document already follows the core guidelines.\n")
		return output.String(), nil
	}

	for i, s := range suggestions {
		output.WriteString(fmt.Sprintf("%d. [%s/%s] %s\n", i+1, s.Category, s.Priority, s.Suggestion))
		output.WriteString(fmt.Sprintf("   Impact: %s\n", s.Impact))
		for _, example := range s.Examples {
			output.WriteString(fmt.Sprintf("   Example: %s\n", example))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (stf *SuggestionsTextFormatter) SupportedType() string {
	return "Suggestions"
}

// SuggestionsMarkdownFormatter handles markdown formatting for suggestion lists
type SuggestionsMarkdownFormatter struct{}

func (smf *SuggestionsMarkdownFormatter) Format(data any) (string, error) {
	suggestions, ok := data.([]types.Suggestion)
	if !ok {
		return "", fmt.Errorf("expected []Suggestion, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Optimization Suggestions\n\n")
	if len(suggestions) == 0 {
		output.WriteString("No suggestions. The document already follows the core guidelines.\n")
		return output.String(), nil
	}

	for i, s := range suggestions {
		output.WriteString(fmt.Sprintf("## %d. %s (%s priority)\n\n", i+1, s.Suggestion, s.Priority))
		output.WriteString(fmt.Sprintf("**Category:** %s\n\n", s.Category))
		output.WriteString(fmt.Sprintf("**Impact:** %s\n\n", s.Impact))
		if len(s.Examples) > 0 {
			output.WriteString("**Examples:**\n")
			for _, example := range s.Examples {
				output.WriteString(fmt.Sprintf("- %s\n", example))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (smf *SuggestionsMarkdownFormatter) SupportedType() string {
	return "Suggestions"
}

// ReportTextFormatter renders the comprehensive report summary
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	r, ok := data.(*report.Report)
	if !ok {
		return "", fmt.Errorf("expected *Report, got %T", data)
	}

	var output strings.Builder
	if err := report.WriteText(&output, r); err != nil {
		return "", err
	}
	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "Report"
}

// ReportCSVFormatter renders the report metrics table
type ReportCSVFormatter struct{}

func (rcf *ReportCSVFormatter) Format(data any) (string, error) {
	r, ok := data.(*report.Report)
	if !ok {
		return "", fmt.Errorf("expected *Report, got %T", data)
	}

	var output strings.Builder
	if err := report.WriteCSV(&output, r); err != nil {
		return "", err
	}
	return output.String(), nil
}

func (rcf *ReportCSVFormatter) SupportedType() string {
	return "Report"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
