// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a directory of score files into one PDF per score.
// Conversion is sequential and stops at the first failure.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/hymnal/pkg/types"
)

// hiddenPrefix marks entries that are never converted.
const hiddenPrefix = "."

// Converter renders one score file to a PDF at outPath.
type Converter interface {
	Convert(ctx context.Context, srcPath, outPath string) error
}

// ErrDuplicateArtifact is returned when two sources would render to the same
// PDF, for example amazing-grace.mscz and amazing-grace.mscx.
var ErrDuplicateArtifact = errors.New("artifact name already taken")

// Error reports the score whose conversion aborted the run.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ListSources returns the non-hidden regular files in dir in directory
// listing order.
func ListSources(dir string) ([]types.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	var sources []types.SourceFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, hiddenPrefix) {
			continue
		}
		sources = append(sources, types.SourceFile{
			Name: name,
			Ext:  filepath.Ext(name),
			Path: filepath.Join(dir, name),
		})
	}
	return sources, nil
}

// ResetBuildDir removes dir and everything in it, then recreates it empty.
func ResetBuildDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing build directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating build directory %s: %w", dir, err)
	}
	return nil
}

// ArtifactPath returns the PDF path for src under buildDir.
func ArtifactPath(buildDir string, src types.SourceFile) string {
	return filepath.Join(buildDir, src.Stem()+".pdf")
}

// ConvertAll converts each source in order, printing a progress line before
// each one. The first failure is returned as *Error and no further sources
// are attempted.
func ConvertAll(ctx context.Context, c Converter, sources []types.SourceFile, buildDir string, w io.Writer) ([]types.BuildArtifact, error) {
	if err := checkArtifactNames(sources, buildDir); err != nil {
		return nil, err
	}

	artifacts := make([]types.BuildArtifact, 0, len(sources))
	for i, src := range sources {
		out := ArtifactPath(buildDir, src)
		fmt.Fprintf(w, "Converting %s (%d/%d)...\n", src.Name, i+1, len(sources))

		if err := c.Convert(ctx, src.Path, out); err != nil {
			return artifacts, &Error{Source: src.Name, Err: err}
		}
		artifacts = append(artifacts, types.BuildArtifact{
			Kind:   types.ArtifactPage,
			Path:   out,
			Source: src.Name,
		})
	}
	fmt.Fprintf(w, "Converted %d score(s) into %s\n", len(artifacts), buildDir)
	return artifacts, nil
}

// checkArtifactNames fails before any conversion if two sources map to one
// artifact. Names are compared case-insensitively so the result does not
// depend on the host filesystem.
func checkArtifactNames(sources []types.SourceFile, buildDir string) error {
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		key := strings.ToLower(ArtifactPath(buildDir, src))
		if first, ok := seen[key]; ok {
			return &Error{
				Source: src.Name,
				Err:    fmt.Errorf("%w: %s also renders to %s", ErrDuplicateArtifact, first, ArtifactPath(buildDir, src)),
			}
		}
		seen[key] = src.Name
	}
	return nil
}
