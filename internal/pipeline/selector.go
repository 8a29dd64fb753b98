package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
	"github.com/srinathstart/HealthSyncAI/internal/llm"
	"github.com/srinathstart/HealthSyncAI/internal/port"
	"github.com/srinathstart/HealthSyncAI/internal/prompt"
	"github.com/srinathstart/HealthSyncAI/internal/schema"
)

// ParameterSelector is the second pipeline stage: full record in,
// chart-ready GraphRecord out.
type ParameterSelector struct {
	completer port.ChatCompleter
}

// NewParameterSelector creates the parameter-selection stage.
func NewParameterSelector(completer port.ChatCompleter) *ParameterSelector {
	return &ParameterSelector{completer: completer}
}

// Select asks the model for the report date and the compulsory chart
// parameters. Unknown parameters the model sneaks in are pruned (and
// logged) before validation, so one stray key does not void an otherwise
// usable record. Missing compulsory parameters stay missing.
func (s *ParameterSelector) Select(ctx context.Context, record map[string]any) (*domain.GraphRecord, error) {
	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}

	p := prompt.BuildParameterSelectionPrompt(string(recordJSON), schema.FormatInstructions(schema.BuildGraphRecordSchema()))
	resp, err := s.completer.Complete(ctx, []llm.Message{llm.User(p)})
	if err != nil {
		return nil, fmt.Errorf("completing parameter selection: %w", err)
	}

	var raw map[string]any
	if err := DecodeJSONSpan(resp, &raw); err != nil {
		return nil, fmt.Errorf("decoding graph record: %w", err)
	}
	pruneUnknownParameters(raw)

	cleaned, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshaling graph record: %w", err)
	}
	if err := schema.Validate(schema.BuildGraphRecordSchema(), cleaned); err != nil {
		return nil, fmt.Errorf("validating graph record: %w", err)
	}

	var graph domain.GraphRecord
	if err := json.Unmarshal(cleaned, &graph); err != nil {
		return nil, fmt.Errorf("decoding graph record: %w", err)
	}
	return &graph, nil
}

func pruneUnknownParameters(raw map[string]any) {
	params, ok := raw["healthParameters"].(map[string]any)
	if !ok {
		return
	}
	allowed := make(map[string]bool, len(domain.GraphParameters))
	for _, p := range domain.GraphParameters {
		allowed[p] = true
	}
	for k := range params {
		if !allowed[k] {
			log.Printf("pipeline.ParameterSelector: dropping unknown parameter %q", k)
			delete(params, k)
		}
	}
}
