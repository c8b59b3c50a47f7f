// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
)

// Process exit codes. Non-fatal stages never change the exit code.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitToolNotFound     = 2
	ExitConversionFailed = 3
	ExitMergeFailed      = 4
)

// ToolNotFoundError means the converter executable is missing. The run stops
// before touching the build directory.
type ToolNotFoundError struct {
	Path string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("converter not available: %v", e.Err)
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// ConversionError means a score failed to convert. The build directory is
// left as it was at the point of failure.
type ConversionError struct {
	Source string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed for %s: %v", e.Source, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// MergeError means the per-score PDFs could not be merged and the merge
// policy treats that as fatal.
type MergeError struct {
	Err error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed: %v", e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		toolErr  *ToolNotFoundError
		convErr  *ConversionError
		mergeErr *MergeError
	)
	switch {
	case errors.As(err, &toolErr):
		return ExitToolNotFound
	case errors.As(err, &convErr):
		return ExitConversionFailed
	case errors.As(err, &mergeErr):
		return ExitMergeFailed
	default:
		return ExitFailure
	}
}
