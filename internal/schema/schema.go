// Package schema defines the JSON shapes the pipeline stages must emit
// and renders them as prompt format instructions.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
)

// BuildRawRecordSchema returns the shape of the stage-one output: a single
// JSON object with arbitrary key-value pairs. There is deliberately no
// property list; the record's keys come from the document.
func BuildRawRecordSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Key-value pairs extracted from the medical report, keys in camelCase",
	}
}

// BuildGraphRecordSchema returns the shape of the stage-two output: the
// report date plus a subset of the compulsory chart parameters. Anything
// outside that subset is rejected.
func BuildGraphRecordSchema() map[string]any {
	params := map[string]any{}
	for _, p := range domain.GraphParameters {
		params[p] = map[string]any{}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"reportDate": map[string]any{
				"type":        "string",
				"pattern":     `^\d{4}-\d{2}-\d{2}$`,
				"description": "The date of the medical report in YYYY-MM-DD format",
			},
			"healthParameters": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           params,
				"description":          "Only the compulsory chart parameters present in the report",
			},
		},
		"required": []string{"reportDate", "healthParameters"},
	}
}

// FormatInstructions renders a schema map as the output-contract block that
// is appended to a stage prompt. The rendering is deterministic (map keys
// are marshaled in sorted order), so prompts are reproducible.
func FormatInstructions(schemaMap map[string]any) string {
	b, err := json.MarshalIndent(schemaMap, "", "  ")
	if err != nil {
		// schema maps are built from literals; this cannot happen at runtime
		panic(fmt.Sprintf("schema: marshaling format instructions: %v", err))
	}
	return "The output must be a single JSON object conforming to the JSON Schema below.\n" +
		"Do not wrap it in markdown fences or add any text outside the object.\n\n" +
		string(b)
}
