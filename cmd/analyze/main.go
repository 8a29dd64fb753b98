// Command analyze runs the full analysis pipeline on a single PDF lab
// report without the server or a database, printing the run result as JSON.
// Usage: go run ./cmd/analyze [-out DIR] report.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/srinathstart/HealthSyncAI/internal/config"
	"github.com/srinathstart/HealthSyncAI/internal/llm/openai"
	"github.com/srinathstart/HealthSyncAI/internal/pdftext"
	"github.com/srinathstart/HealthSyncAI/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "directory to write run artifacts into (default: none)")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: analyze [-out DIR] <report.pdf>")
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	completer, err := openai.NewClient(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	extractor := pdftext.NewExtractor(cfg.OCR)

	text, err := extractor.Extract(context.Background(), path)
	if err != nil {
		return fmt.Errorf("extracting text from %s: %w", path, err)
	}

	res := pipeline.New(completer).Run(context.Background(), text)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Println(string(out))

	if *outDir != "" {
		if err := writeArtifacts(*outDir, res); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifacts(dir string, res *pipeline.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if res.RawRecord != nil {
		b, err := json.MarshalIndent(res.RawRecord, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling raw record: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "raw_extracted_data.json"), b, 0o644); err != nil {
			return fmt.Errorf("writing raw artifact: %w", err)
		}
	}
	if len(res.AnalysisJSON) > 0 {
		if err := os.WriteFile(filepath.Join(dir, "health_analysis_report.json"), res.AnalysisJSON, 0o644); err != nil {
			return fmt.Errorf("writing analysis artifact: %w", err)
		}
	}
	return nil
}
