package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srinathstart/HealthSyncAI/internal/prompt"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"string with unit", "23 Years", 23},
		{"bare numeric string", "45", 45},
		{"lowercase unit", "61 years", 61},
		{"float truncates", float64(45.7), 45},
		{"whole float", float64(30), 30},
		{"int passthrough", 7, 7},
		{"missing", nil, prompt.DefaultAge},
		{"unparsable string", "N/A", prompt.DefaultAge},
		{"empty string", "", prompt.DefaultAge},
		{"wrong type", true, prompt.DefaultAge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prompt.ParseAge(tt.in))
		})
	}
}

func TestResolveAge_TopLevelWins(t *testing.T) {
	record := map[string]any{
		"age":  "23 Years",
		"data": map[string]any{"age": float64(50)},
	}
	assert.Equal(t, 23, prompt.ResolveAge(record))
}

func TestResolveAge_NestedFallback(t *testing.T) {
	record := map[string]any{
		"data": map[string]any{"age": float64(50)},
	}
	assert.Equal(t, 50, prompt.ResolveAge(record))
}

func TestResolveAge_MissingEverywhere(t *testing.T) {
	assert.Equal(t, prompt.DefaultAge, prompt.ResolveAge(map[string]any{"patientName": "Jane"}))
}

func TestResolveGender_TopLevel(t *testing.T) {
	assert.Equal(t, "Female", prompt.ResolveGender(map[string]any{"gender": "Female"}))
}

func TestResolveGender_NestedGender(t *testing.T) {
	record := map[string]any{"data": map[string]any{"gender": "Male"}}
	assert.Equal(t, "Male", prompt.ResolveGender(record))
}

func TestResolveGender_NestedSexFallback(t *testing.T) {
	record := map[string]any{"data": map[string]any{"sex": "F"}}
	assert.Equal(t, "F", prompt.ResolveGender(record))
}

func TestResolveGender_TopLevelWinsOverNested(t *testing.T) {
	record := map[string]any{
		"gender": "Female",
		"data":   map[string]any{"sex": "M"},
	}
	assert.Equal(t, "Female", prompt.ResolveGender(record))
}

func TestResolveGender_Default(t *testing.T) {
	assert.Equal(t, prompt.DefaultGender, prompt.ResolveGender(map[string]any{}))
	assert.Equal(t, prompt.DefaultGender, prompt.ResolveGender(map[string]any{"gender": ""}))
}
