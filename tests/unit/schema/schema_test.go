package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srinathstart/HealthSyncAI/internal/schema"
)

func TestValidate_GraphRecord_Valid(t *testing.T) {
	data := []byte(`{"reportDate": "2024-05-14", "healthParameters": {"specificGravity": "1.020", "proteins": "Nil", "sugar": "Nil", "pusCells": "2-3 /hpf"}}`)
	assert.NoError(t, schema.Validate(schema.BuildGraphRecordSchema(), data))
}

func TestValidate_GraphRecord_SubsetOfParameters(t *testing.T) {
	data := []byte(`{"reportDate": "2024-05-14", "healthParameters": {"sugar": "Nil"}}`)
	assert.NoError(t, schema.Validate(schema.BuildGraphRecordSchema(), data))
}

func TestValidate_GraphRecord_RejectsUnknownParameter(t *testing.T) {
	data := []byte(`{"reportDate": "2024-05-14", "healthParameters": {"bloodPressure": "120/80"}}`)
	err := schema.Validate(schema.BuildGraphRecordSchema(), data)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestValidate_GraphRecord_RejectsExtraTopLevelKey(t *testing.T) {
	data := []byte(`{"reportDate": "2024-05-14", "healthParameters": {}, "reportType": "urine"}`)
	assert.Error(t, schema.Validate(schema.BuildGraphRecordSchema(), data))
}

func TestValidate_GraphRecord_RejectsBadDate(t *testing.T) {
	data := []byte(`{"reportDate": "14-05-2024", "healthParameters": {}}`)
	assert.Error(t, schema.Validate(schema.BuildGraphRecordSchema(), data))
}

func TestValidate_GraphRecord_RequiresBothFields(t *testing.T) {
	assert.Error(t, schema.Validate(schema.BuildGraphRecordSchema(), []byte(`{"reportDate": "2024-05-14"}`)))
	assert.Error(t, schema.Validate(schema.BuildGraphRecordSchema(), []byte(`{"healthParameters": {}}`)))
}

func TestValidate_RawRecord_AnyObject(t *testing.T) {
	assert.NoError(t, schema.Validate(schema.BuildRawRecordSchema(), []byte(`{"patientName": "Jane", "age": 23}`)))
	assert.NoError(t, schema.Validate(schema.BuildRawRecordSchema(), []byte(`{}`)))
}

func TestValidate_RawRecord_RejectsNonObject(t *testing.T) {
	assert.Error(t, schema.Validate(schema.BuildRawRecordSchema(), []byte(`["not", "an", "object"]`)))
}

func TestFormatInstructions_Deterministic(t *testing.T) {
	a := schema.FormatInstructions(schema.BuildGraphRecordSchema())
	b := schema.FormatInstructions(schema.BuildGraphRecordSchema())
	assert.Equal(t, a, b)
	assert.Contains(t, a, "JSON Schema")
	assert.Contains(t, a, "reportDate")
}
