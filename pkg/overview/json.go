package overview

import (
	"encoding/json"
	"strings"
)

// extractObject parses a JSON object out of free model text. The reply may
// wrap the object in a fenced code block; a ```json fence is checked first,
// then a bare ``` fence. A parse failure here is an expected outcome, not an
// exceptional one — callers fall back to placeholder text.
func extractObject(text string, v any) error {
	return json.Unmarshal([]byte(stripFence(text)), v)
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)

	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}

	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}

	return s
}
