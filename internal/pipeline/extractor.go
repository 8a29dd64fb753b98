package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/srinathstart/HealthSyncAI/internal/llm"
	"github.com/srinathstart/HealthSyncAI/internal/port"
	"github.com/srinathstart/HealthSyncAI/internal/prompt"
	"github.com/srinathstart/HealthSyncAI/internal/schema"
)

// minDocumentTextLen is the length under which extracted text almost
// certainly means the OCR step failed. The run proceeds anyway; the model
// sometimes salvages a usable record from fragments.
const minDocumentTextLen = 100

// RawExtractor is the first pipeline stage: document text in, full
// key-value record out.
type RawExtractor struct {
	completer port.ChatCompleter
}

// NewRawExtractor creates the raw-record extraction stage.
func NewRawExtractor(completer port.ChatCompleter) *RawExtractor {
	return &RawExtractor{completer: completer}
}

// Extract asks the model for the full key-value record of the report.
func (e *RawExtractor) Extract(ctx context.Context, documentText string) (map[string]any, error) {
	log.Printf("pipeline.RawExtractor: document text length %d", len(documentText))
	if len(documentText) < minDocumentTextLen {
		log.Printf("pipeline.RawExtractor: text suspiciously short, likely OCR failure (snippet: %q)", snippet(documentText, 50))
	}

	p := prompt.BuildRawExtractionPrompt(documentText, schema.FormatInstructions(schema.BuildRawRecordSchema()))
	resp, err := e.completer.Complete(ctx, []llm.Message{llm.User(p)})
	if err != nil {
		return nil, fmt.Errorf("completing raw extraction: %w", err)
	}

	span, err := ExtractJSONSpan(resp)
	if err != nil {
		return nil, fmt.Errorf("locating raw record: %w", err)
	}
	if err := schema.Validate(schema.BuildRawRecordSchema(), []byte(span)); err != nil {
		return nil, fmt.Errorf("validating raw record: %w", err)
	}

	var record map[string]any
	if err := DecodeJSONSpan(span, &record); err != nil {
		return nil, fmt.Errorf("decoding raw record: %w", err)
	}
	return record, nil
}

func snippet(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
