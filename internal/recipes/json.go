package recipes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseJSONObject extracts the JSON object from an LLM response and
// unmarshals it into v. The response may contain markdown fences or extra
// text around the JSON.
func parseJSONObject(response string, v any) error {
	jsonStr := extractJSON(response)
	if jsonStr == "" {
		return fmt.Errorf("no JSON object found in model response")
	}
	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("model returned malformed JSON: %w", err)
	}
	return nil
}

// extractJSON finds the outermost JSON object in the text, handling
// optional markdown code fences.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
