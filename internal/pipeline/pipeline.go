// Package pipeline runs the three-stage lab-report analysis: raw record
// extraction, chart-parameter selection, and clinical scoring.
package pipeline

import (
	"context"
	"encoding/json"
	"log"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
	"github.com/srinathstart/HealthSyncAI/internal/port"
)

// StageOutcome records how a single stage ended.
type StageOutcome struct {
	Status domain.StageStatus `json:"status"`
	Error  string             `json:"error,omitempty"`
}

// Result is the combined output of one pipeline run. Each stage's outcome
// is observable on its own; a failed selection never hides a finished
// score and vice versa.
type Result struct {
	RawRecord  map[string]any `json:"raw_record,omitempty"`
	Extraction StageOutcome   `json:"extraction"`

	Graph     *domain.GraphRecord `json:"graph,omitempty"`
	Selection StageOutcome        `json:"selection"`

	// ScoreText is the scoring model's answer verbatim.
	ScoreText string `json:"score_text,omitempty"`
	// AnalysisJSON is the JSON span located in ScoreText, set only when the
	// span parses. On parse failure ScoreText is all the consumer gets.
	AnalysisJSON json.RawMessage     `json:"analysis_json,omitempty"`
	Report       *domain.ScoreReport `json:"report,omitempty"`
	Analysis     StageOutcome        `json:"analysis"`
}

// Pipeline wires the three stages over a single chat completer.
type Pipeline struct {
	extractor *RawExtractor
	selector  *ParameterSelector
	analyzer  *ScoreAnalyzer
}

// New builds a pipeline on top of the given chat completer.
func New(completer port.ChatCompleter) *Pipeline {
	return &Pipeline{
		extractor: NewRawExtractor(completer),
		selector:  NewParameterSelector(completer),
		analyzer:  NewScoreAnalyzer(completer),
	}
}

// Run executes one synchronous analysis of the given document text.
// Stage one feeds the other two; when it fails the run stops early and
// both dependents are marked skipped. Selection and scoring are
// independent of each other and a failure in either is contained.
func (p *Pipeline) Run(ctx context.Context, documentText string) *Result {
	res := &Result{}

	record, err := p.extractor.Extract(ctx, documentText)
	if err != nil {
		log.Printf("pipeline.Run: raw extraction failed: %v", err)
		res.Extraction = StageOutcome{Status: domain.StageFailed, Error: err.Error()}
		res.Selection = StageOutcome{Status: domain.StageSkipped}
		res.Analysis = StageOutcome{Status: domain.StageSkipped}
		return res
	}
	res.RawRecord = record
	res.Extraction = StageOutcome{Status: domain.StageCompleted}

	graph, err := p.selector.Select(ctx, record)
	if err != nil {
		log.Printf("pipeline.Run: parameter selection failed: %v", err)
		res.Selection = StageOutcome{Status: domain.StageFailed, Error: err.Error()}
	} else {
		res.Graph = graph
		res.Selection = StageOutcome{Status: domain.StageCompleted}
	}

	res.ScoreText = p.analyzer.Analyze(ctx, record)
	span, err := ExtractJSONSpan(res.ScoreText)
	if err != nil {
		log.Printf("pipeline.Run: score output has no JSON object, keeping raw text")
		res.Analysis = StageOutcome{Status: domain.StageFailed, Error: err.Error()}
		return res
	}

	var report domain.ScoreReport
	if err := json.Unmarshal([]byte(span), &report); err != nil {
		log.Printf("pipeline.Run: score output JSON is malformed, keeping raw text: %v", err)
		res.Analysis = StageOutcome{Status: domain.StageFailed, Error: domain.ErrMalformedJSON.Error() + ": " + err.Error()}
		return res
	}

	res.AnalysisJSON = json.RawMessage(span)
	res.Report = &report
	res.Analysis = StageOutcome{Status: domain.StageCompleted}
	return res
}
