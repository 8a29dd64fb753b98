package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrReportNotFound      = errors.New("health report not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMissingAPIKey       = errors.New("LLM API key is required")
	ErrNoJSONFound         = errors.New("no JSON object found in model response")
	ErrMalformedJSON       = errors.New("malformed JSON object in model response")
	ErrAnalysisUnavailable = errors.New("analysis output not available for this report")
)
