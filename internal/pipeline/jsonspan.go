package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
)

// ExtractJSONSpan locates the candidate JSON object inside a model response:
// everything from the first '{' through the last '}'. Models often wrap
// their output in prose or markdown fences; the span survives both. The
// span is returned byte-for-byte, no reformatting.
func ExtractJSONSpan(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", domain.ErrNoJSONFound
	}
	return s[start : end+1], nil
}

// DecodeJSONSpan extracts the JSON span from a model response and strictly
// parses it into v.
func DecodeJSONSpan(s string, v any) error {
	span, err := ExtractJSONSpan(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}
	return nil
}
