// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge combines the per-score PDFs in the build directory into the
// single hymnal PDF.
package merge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoInputs is returned when there is nothing to merge.
var ErrNoInputs = errors.New("no PDF files to merge")

// Merger writes the concatenation of inputs to outPath.
type Merger interface {
	Merge(ctx context.Context, inputs []string, outPath string) error
}

// ListArtifacts returns the PDF files in buildDir in directory listing order.
func ListArtifacts(buildDir string) ([]string, error) {
	entries, err := os.ReadDir(buildDir)
	if err != nil {
		return nil, fmt.Errorf("reading build directory %s: %w", buildDir, err)
	}
	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		pdfs = append(pdfs, filepath.Join(buildDir, entry.Name()))
	}
	return pdfs, nil
}

// PDFCPUMerger merges with pdfcpu.
type PDFCPUMerger struct {
	conf *model.Configuration
}

// NewPDFCPUMerger returns a merger using pdfcpu's default configuration
// without reading or creating a pdfcpu config directory.
func NewPDFCPUMerger() *PDFCPUMerger {
	api.DisableConfigDir()
	return &PDFCPUMerger{conf: model.NewDefaultConfiguration()}
}

// Merge creates outPath's directory and writes the merged document. pdfcpu
// is not cancellable, so ctx is only checked before starting.
func (m *PDFCPUMerger) Merge(ctx context.Context, inputs []string, outPath string) error {
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := api.MergeCreateFile(inputs, outPath, false, m.conf); err != nil {
		return fmt.Errorf("merging %d PDF(s) into %s: %w", len(inputs), outPath, err)
	}
	return nil
}
