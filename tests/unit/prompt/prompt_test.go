package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srinathstart/HealthSyncAI/internal/llm"
	"github.com/srinathstart/HealthSyncAI/internal/prompt"
	"github.com/srinathstart/HealthSyncAI/internal/schema"
)

func TestBuildRawExtractionPrompt(t *testing.T) {
	instructions := schema.FormatInstructions(schema.BuildRawRecordSchema())
	p := prompt.BuildRawExtractionPrompt("Specific Gravity: 1.020", instructions)

	assert.Contains(t, p, "Specific Gravity: 1.020")
	assert.Contains(t, p, "camelCase")
	assert.Contains(t, p, "output ONLY the JSON object")
	assert.Contains(t, p, instructions)
}

func TestBuildParameterSelectionPrompt(t *testing.T) {
	instructions := schema.FormatInstructions(schema.BuildGraphRecordSchema())
	p := prompt.BuildParameterSelectionPrompt(`{"sugar": "Nil"}`, instructions)

	assert.Contains(t, p, `{"sugar": "Nil"}`)
	assert.Contains(t, p, "Routine Urine Examination")
	assert.Contains(t, p, "exactly four parameters")
	for _, param := range []string{"specificGravity", "proteins", "sugar", "pusCells"} {
		assert.Contains(t, p, param)
	}
	assert.Contains(t, p, "YYYY-MM-DD")
	assert.Contains(t, p, instructions)
}

func TestBuildScoringMessages(t *testing.T) {
	msgs := prompt.BuildScoringMessages(23, "Female", `{"sugar": "Nil"}`)

	assert.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)

	assert.Contains(t, msgs[0].Content, "health score of 100")
	assert.Contains(t, msgs[0].Content, `"detailed_breakdown"`)
	assert.Contains(t, msgs[0].Content, "```json")

	assert.Contains(t, msgs[1].Content, "Patient Age: 23")
	assert.Contains(t, msgs[1].Content, "Patient Gender: Female")
	assert.True(t, strings.Contains(msgs[1].Content, `{"sugar": "Nil"}`))
}
