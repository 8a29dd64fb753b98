// Package export renders parameter history as an Excel workbook.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
)

const sheetName = "Parameter History"

// WriteWorkbook writes one row per graph point: the report date followed by
// the compulsory parameters in display order. Parameters missing from a
// report leave their cell empty.
func WriteWorkbook(w io.Writer, points []domain.GraphPoint) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := []interface{}{"Report Date"}
	for _, p := range domain.GraphParameters {
		header = append(header, p)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, point := range points {
		row := []interface{}{point.ReportDate}

		var params map[string]any
		if len(point.HealthParameters) > 0 {
			if err := json.Unmarshal(point.HealthParameters, &params); err != nil {
				return fmt.Errorf("decoding parameters for %s: %w", point.ReportDate, err)
			}
		}
		for _, p := range domain.GraphParameters {
			row = append(row, cellValue(params[p]))
		}

		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// cellValue keeps numbers as numbers so Excel can chart them, and renders
// everything else as text.
func cellValue(v any) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case float64, string, bool:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// BuildFilename returns the Content-Disposition filename for an export.
// Format: parameter_history_{YYYY-MM-DD}.xlsx
func BuildFilename() string {
	return fmt.Sprintf("parameter_history_%s.xlsx", time.Now().Format("2006-01-02"))
}
