// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ebook converts the merged hymnal PDF to an e-book format with
// calibre's ebook-convert. The target format follows the output extension.
package ebook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/hymnal/internal/tool"
)

// Converter converts inPath to an e-book at outPath and returns once the
// output is complete.
type Converter interface {
	Convert(ctx context.Context, inPath, outPath string) error
}

// runner is the subset of *tool.Tool used here.
type runner interface {
	Run(ctx context.Context, args ...string) error
}

// CalibreConverter shells out to ebook-convert. The binary is resolved on
// every call so a missing calibre install only fails this optional stage.
type CalibreConverter struct {
	bin  string
	find func(name string) (runner, error)
}

// NewCalibreConverter returns a converter for the ebook-convert binary at
// bin, which may be a bare command name resolved on PATH.
func NewCalibreConverter(bin string) *CalibreConverter {
	return &CalibreConverter{
		bin: bin,
		find: func(name string) (runner, error) {
			t, err := tool.Find(name)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	}
}

// Convert runs `ebook-convert <in> <out>`.
func (c *CalibreConverter) Convert(ctx context.Context, inPath, outPath string) error {
	r, err := c.find(c.bin)
	if err != nil {
		return fmt.Errorf("locating ebook-convert: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating e-book directory: %w", err)
	}
	if err := r.Run(ctx, inPath, outPath); err != nil {
		return fmt.Errorf("converting %s to %s: %w", inPath, filepath.Ext(outPath), err)
	}
	return nil
}
