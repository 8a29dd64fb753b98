// Package pdftext extracts plain text from PDF lab reports. It tries the
// embedded text layer first and falls back to rasterize-and-OCR for
// scanned reports, which is what most uploaded lab reports are.
package pdftext

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/srinathstart/HealthSyncAI/internal/config"
)

// minTextLayerLen is the threshold under which the embedded text layer is
// considered absent and the OCR fallback kicks in.
const minTextLayerLen = 100

// Extractor implements port.TextExtractor over the poppler/tesseract CLIs.
type Extractor struct {
	cfg    config.OCRConfig
	runner Runner
}

// NewExtractor creates a PDF text extractor with defaults filled in.
func NewExtractor(cfg config.OCRConfig) *Extractor {
	return newExtractor(cfg, execRunner{})
}

// NewExtractorWithRunner creates an extractor with a custom command runner (for testing).
func NewExtractorWithRunner(cfg config.OCRConfig, runner Runner) *Extractor {
	return newExtractor(cfg, runner)
}

func newExtractor(cfg config.OCRConfig, runner Runner) *Extractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: runner}
}

// Extract returns the text content of the PDF at path.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	text, err := e.textLayer(ctx, path)
	if err == nil && len(strings.TrimSpace(text)) >= minTextLayerLen {
		return text, nil
	}
	if err != nil {
		log.Printf("pdftext.Extract: text layer extraction failed, falling back to OCR: %v", err)
	} else {
		log.Printf("pdftext.Extract: text layer too short (%d chars), falling back to OCR", len(strings.TrimSpace(text)))
	}

	ocrText, ocrErr := e.ocr(ctx, path)
	if ocrErr != nil {
		// a thin text layer still beats nothing
		if err == nil {
			return text, nil
		}
		return "", fmt.Errorf("extracting text from %s: %w", filepath.Base(path), ocrErr)
	}
	return ocrText, nil
}

func (e *Extractor) textLayer(ctx context.Context, path string) (string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, _, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (e *Extractor) ocr(ctx context.Context, path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "healthsync-pp-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			log.Printf("pdftext.ocr: failed to remove temp dir %q: %v", tmpDir, rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, _, err = e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	for _, img := range matches {
		// tesseract <img> stdout -l eng
		out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout", "-l", e.cfg.Language)
		if err != nil {
			log.Printf("pdftext.ocr: tesseract failed on %s: %v", filepath.Base(img), err)
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.Write(out)
	}
	return b.String(), nil
}
