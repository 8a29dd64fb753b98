package prompt

import (
	"strconv"
	"strings"
)

// DefaultAge is used when the record carries no parsable age. The scoring
// model still needs an age for reference ranges, so a mid-adult default is
// handed over rather than failing the run.
const DefaultAge = 30

// DefaultGender is used when neither gender nor sex appears in the record.
const DefaultGender = "Unknown"

// ResolveAge finds the patient age in an extracted record, checking the
// top-level "age" key first and then a nested "data" object.
func ResolveAge(record map[string]any) int {
	v := record["age"]
	if v == nil {
		if data, ok := record["data"].(map[string]any); ok {
			v = data["age"]
		}
	}
	return ParseAge(v)
}

// ParseAge normalizes a reported age value to whole years.
// Strings like "23 Years" yield 23; numbers are truncated; anything else
// falls back to DefaultAge.
func ParseAge(v any) int {
	switch age := v.(type) {
	case string:
		fields := strings.Fields(age)
		if len(fields) == 0 {
			return DefaultAge
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return DefaultAge
		}
		return n
	case float64:
		return int(age)
	case int:
		return age
	default:
		return DefaultAge
	}
}

// ResolveGender finds the patient gender in an extracted record: top-level
// "gender" first, then nested "data.gender" and "data.sex".
func ResolveGender(record map[string]any) string {
	if g, ok := record["gender"].(string); ok && g != "" {
		return g
	}
	if data, ok := record["data"].(map[string]any); ok {
		if g, ok := data["gender"].(string); ok && g != "" {
			return g
		}
		if g, ok := data["sex"].(string); ok && g != "" {
			return g
		}
	}
	return DefaultGender
}
