// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"

	"github.com/pdiddy/hymnal/internal/tool"
)

// outputFlag is the MuseScore command-line flag naming the export file.
const outputFlag = "-o"

// Runner executes an external program synchronously.
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

var _ Runner = (*tool.Tool)(nil)

// MuseScoreConverter exports scores by invoking the MuseScore executable as
// `mscore -o <out> <src>`. The export format follows the output extension.
type MuseScoreConverter struct {
	runner Runner
}

// NewMuseScoreConverter wraps a located MuseScore executable.
func NewMuseScoreConverter(r Runner) *MuseScoreConverter {
	return &MuseScoreConverter{runner: r}
}

// Convert runs MuseScore once for srcPath and waits for it to exit.
func (m *MuseScoreConverter) Convert(ctx context.Context, srcPath, outPath string) error {
	return m.runner.Run(ctx, outputFlag, outPath, srcPath)
}
