package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
)

func TestWriteWorkbook(t *testing.T) {
	points := []domain.GraphPoint{
		{
			ReportDate:       "2024-05-14",
			HealthParameters: json.RawMessage(`{"specificGravity": "1.020", "proteins": "Nil", "sugar": "Nil", "pusCells": "2-3 /hpf"}`),
		},
		{
			ReportDate:       "2024-08-02",
			HealthParameters: json.RawMessage(`{"specificGravity": 1.015, "sugar": "Trace"}`),
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteWorkbook(&buf, points))

	f, err := excelize.OpenReader(&buf)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	assert.Equal(t, []string{"Report Date", "specificGravity", "proteins", "sugar", "pusCells"}, rows[0])
	assert.Equal(t, []string{"2024-05-14", "1.020", "Nil", "Nil", "2-3 /hpf"}, rows[1])

	// second report misses two parameters; numeric value stays numeric
	assert.Equal(t, "2024-08-02", rows[2][0])
	assert.Equal(t, "1.015", rows[2][1])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "Trace", rows[2][3])
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename()
	assert.True(t, strings.HasPrefix(name, "parameter_history_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
}
