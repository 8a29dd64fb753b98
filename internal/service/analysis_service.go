package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/srinathstart/HealthSyncAI/internal/config"
	"github.com/srinathstart/HealthSyncAI/internal/domain"
	"github.com/srinathstart/HealthSyncAI/internal/pipeline"
	"github.com/srinathstart/HealthSyncAI/internal/port"
)

// Artifact file names, kept stable because downstream tooling fetches them by name.
const (
	RawArtifactName      = "raw_extracted_data.json"
	AnalysisArtifactName = "health_analysis_report.json"
)

// AnalyzeInput is the DTO for report upload requests.
type AnalyzeInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// AnalysisService defines the lab-report analysis contract.
type AnalysisService interface {
	AnalyzeUpload(ctx context.Context, input AnalyzeInput) (*domain.HealthReport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HealthReport, error)
	List(ctx context.Context, offset, limit int) ([]domain.HealthReport, int, error)
	GraphSeries(ctx context.Context) ([]domain.GraphPoint, error)
}

type analysisService struct {
	repo      port.HealthReportRepository
	extractor port.TextExtractor
	pipe      *pipeline.Pipeline
	model     string
	upload    *config.UploadConfig
	export    *config.ExportConfig
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	repo port.HealthReportRepository,
	extractor port.TextExtractor,
	pipe *pipeline.Pipeline,
	cfg *config.Config,
) AnalysisService {
	return &analysisService{
		repo:      repo,
		extractor: extractor,
		pipe:      pipe,
		model:     cfg.LLM.Model,
		upload:    &cfg.Upload,
		export:    &cfg.Export,
	}
}

// AnalyzeUpload validates the uploaded PDF, runs the pipeline on it, writes
// the run artifacts, and persists the report. Stage failures are recorded
// on the report, not returned as errors; only upload validation and
// persistence problems make this call fail.
func (s *analysisService) AnalyzeUpload(ctx context.Context, input AnalyzeInput) (*domain.HealthReport, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.upload.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning before spooling to disk
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	tmpPath, err := s.spoolUpload(input.File)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			log.Printf("analysisService.AnalyzeUpload: failed to remove temp file %q: %v", tmpPath, rmErr)
		}
	}()

	report := &domain.HealthReport{
		ID:        uuid.New(),
		FileName:  input.Header.Filename,
		FileSize:  input.Header.Size,
		ModelUsed: s.model,
	}

	log.Printf("analysisService.AnalyzeUpload: analyzing %s (%d bytes) as report %s",
		report.FileName, report.FileSize, report.ID)

	text, err := s.extractor.Extract(ctx, tmpPath)
	if err != nil {
		log.Printf("analysisService.AnalyzeUpload: text extraction failed: %v", err)
		report.ExtractionStatus = domain.StageFailed
		report.ExtractionError = err.Error()
		report.SelectionStatus = domain.StageSkipped
		report.AnalysisStatus = domain.StageSkipped
	} else {
		res := s.pipe.Run(ctx, text)
		applyResult(report, res)
		s.writeArtifacts(report.ID, res)
	}

	if err := s.repo.Create(ctx, report); err != nil {
		log.Printf("analysisService.AnalyzeUpload: failed to persist report %s: %v", report.ID, err)
		return nil, fmt.Errorf("creating health report: %w", err)
	}
	return report, nil
}

// spoolUpload writes the upload to a scoped temp file for the CLI-based
// text extractor.
func (s *analysisService) spoolUpload(file multipart.File) (string, error) {
	tmp, err := os.CreateTemp(s.upload.TempDir, "healthsync-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return tmp.Name(), nil
}

func applyResult(report *domain.HealthReport, res *pipeline.Result) {
	report.ExtractionStatus = res.Extraction.Status
	report.ExtractionError = res.Extraction.Error
	report.SelectionStatus = res.Selection.Status
	report.SelectionError = res.Selection.Error
	report.AnalysisStatus = res.Analysis.Status
	report.AnalysisError = res.Analysis.Error

	if res.RawRecord != nil {
		if b, err := json.Marshal(res.RawRecord); err == nil {
			report.RawData = b
		}
	}
	if res.Graph != nil {
		if b, err := json.Marshal(res.Graph); err == nil {
			report.GraphData = b
		}
	}
	report.ScoreText = res.ScoreText
	report.AnalysisJSON = res.AnalysisJSON
	if res.Report != nil {
		score := res.Report.Score
		report.Score = &score
		report.Summary = res.Report.SummaryReasoning
	}
}

// writeArtifacts drops the per-run JSON artifacts under the export dir.
// Artifact failures are logged, never fatal; the DB row remains the source
// of truth.
func (s *analysisService) writeArtifacts(id uuid.UUID, res *pipeline.Result) {
	dir := filepath.Join(s.export.Dir, id.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("analysisService.writeArtifacts: creating %s: %v", dir, err)
		return
	}
	if res.RawRecord != nil {
		b, err := json.MarshalIndent(res.RawRecord, "", "  ")
		if err == nil {
			err = os.WriteFile(filepath.Join(dir, RawArtifactName), b, 0o644)
		}
		if err != nil {
			log.Printf("analysisService.writeArtifacts: writing %s: %v", RawArtifactName, err)
		}
	}
	if len(res.AnalysisJSON) > 0 {
		// the located span, byte-for-byte
		if err := os.WriteFile(filepath.Join(dir, AnalysisArtifactName), res.AnalysisJSON, 0o644); err != nil {
			log.Printf("analysisService.writeArtifacts: writing %s: %v", AnalysisArtifactName, err)
		}
	}
}

func (s *analysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.HealthReport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, offset, limit int) ([]domain.HealthReport, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *analysisService) GraphSeries(ctx context.Context) ([]domain.GraphPoint, error) {
	return s.repo.GraphSeries(ctx)
}
