package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HealthReport is a single analyzed lab report with the output of all
// three pipeline stages and their per-stage outcomes.
type HealthReport struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	ModelUsed string    `db:"model_used" json:"model_used"`

	// RawData is the full key-value record extracted from the document.
	RawData json.RawMessage `db:"raw_data" json:"raw_data,omitempty"`
	// GraphData is the chart-ready record (report date + selected parameters).
	GraphData json.RawMessage `db:"graph_data" json:"graph_data,omitempty"`
	// ScoreText is the scoring model's output verbatim, including any prose.
	ScoreText string `db:"score_text" json:"score_text,omitempty"`
	// AnalysisJSON is the JSON object located inside ScoreText, byte-for-byte.
	AnalysisJSON json.RawMessage `db:"analysis_json" json:"analysis_json,omitempty"`

	Score   *float64 `db:"score" json:"score,omitempty"`
	Summary string   `db:"summary" json:"summary,omitempty"`

	ExtractionStatus StageStatus `db:"extraction_status" json:"extraction_status"`
	ExtractionError  string      `db:"extraction_error" json:"extraction_error,omitempty"`
	SelectionStatus  StageStatus `db:"selection_status" json:"selection_status"`
	SelectionError   string      `db:"selection_error" json:"selection_error,omitempty"`
	AnalysisStatus   StageStatus `db:"analysis_status" json:"analysis_status"`
	AnalysisError    string      `db:"analysis_error" json:"analysis_error,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GraphRecord holds the report date and the chartable parameter subset.
type GraphRecord struct {
	ReportDate       string         `json:"reportDate"`
	HealthParameters map[string]any `json:"healthParameters"`
}

// ScoreReport is the parsed clinical scoring output.
type ScoreReport struct {
	Score             float64             `json:"score"`
	SummaryReasoning  string              `json:"summary_reasoning"`
	DetailedBreakdown []ParameterAnalysis `json:"detailed_breakdown"`
}

// ParameterAnalysis is one row of the scoring breakdown. Value is untyped
// because models report it as either a string or a number.
type ParameterAnalysis struct {
	Parameter string          `json:"parameter"`
	Value     any             `json:"value"`
	Status    ParameterStatus `json:"status"`
	Analysis  string          `json:"analysis"`
}

// GraphPoint is one time-series point for parameter charting.
type GraphPoint struct {
	ReportDate       string          `db:"report_date" json:"reportDate"`
	HealthParameters json.RawMessage `db:"health_parameters" json:"healthParameters"`
}
