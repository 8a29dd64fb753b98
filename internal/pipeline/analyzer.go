package pipeline

import (
	"context"
	"encoding/json"
	"log"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
	"github.com/srinathstart/HealthSyncAI/internal/port"
	"github.com/srinathstart/HealthSyncAI/internal/prompt"
)

// ScoreAnalyzer is the third pipeline stage: full record in, raw scoring
// text out. It never fails; a gateway error is folded into a sentinel JSON
// payload with score -1 so consumers always have something to show.
type ScoreAnalyzer struct {
	completer port.ChatCompleter
}

// NewScoreAnalyzer creates the health-scoring stage.
func NewScoreAnalyzer(completer port.ChatCompleter) *ScoreAnalyzer {
	return &ScoreAnalyzer{completer: completer}
}

// Analyze asks the model to grade the report and returns its answer
// verbatim. The answer usually contains a fenced JSON object but carries
// no guarantee; callers apply span extraction.
func (a *ScoreAnalyzer) Analyze(ctx context.Context, record map[string]any) string {
	age := prompt.ResolveAge(record)
	gender := prompt.ResolveGender(record)

	labJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return sentinel(err)
	}

	resp, err := a.completer.Complete(ctx, prompt.BuildScoringMessages(age, gender, string(labJSON)))
	if err != nil {
		log.Printf("pipeline.ScoreAnalyzer: completion failed: %v", err)
		return sentinel(err)
	}
	return resp
}

func sentinel(err error) string {
	b, _ := json.Marshal(map[string]any{
		"score":     domain.ScoreSentinel,
		"reasoning": "Error: " + err.Error(),
	})
	return string(b)
}
