package optimize

import (
	"encoding/json"
	"strings"

	"atscan/internal/types"
)

// llmPayload is the response schema the prompt asks the model to produce.
type llmPayload struct {
	OptimizedContent string              `json:"optimized_content"`
	Improvements     []types.Improvement `json:"improvements"`
	Summary          string              `json:"summary"`
}

// parseResponse normalizes a raw LLM response. Three tiers: strict decode of
// the whole body, decode of the outermost brace-delimited substring, then a
// length heuristic that accepts prose responses covering at least 80% of the
// original. Anything shorter preserves the original text.
func parseResponse(raw, original string) parsedResponse {
	if p, ok := decodePayload([]byte(raw)); ok {
		return p
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		if p, ok := decodePayload([]byte(raw[start : end+1])); ok {
			return p
		}
	}

	if float64(len(raw)) >= 0.8*float64(len(original)) {
		return parsedResponse{
			OptimizedContent: raw,
			Improvements: []types.Improvement{{
				Section:     "general",
				Original:    "Various sections",
				Improved:    "Enhanced content",
				Reason:      "LLM optimization applied",
				ImpactScore: 7,
			}},
			Summary: "CV optimized using AI analysis",
		}
	}

	return parsedResponse{
		OptimizedContent: original,
		Improvements:     []types.Improvement{},
		Summary:          "Optimization failed - original content preserved",
		fallbackUsed:     true,
	}
}

// decodePayload requires both optimized_content and improvements keys; a
// response missing either is not trusted even if it decodes cleanly.
func decodePayload(data []byte) (parsedResponse, bool) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return parsedResponse{}, false
	}
	if _, ok := keys["optimized_content"]; !ok {
		return parsedResponse{}, false
	}
	if _, ok := keys["improvements"]; !ok {
		return parsedResponse{}, false
	}

	var payload llmPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return parsedResponse{}, false
	}
	if payload.Improvements == nil {
		payload.Improvements = []types.Improvement{}
	}

	return parsedResponse{
		OptimizedContent: payload.OptimizedContent,
		Improvements:     payload.Improvements,
		Summary:          payload.Summary,
	}, true
}
