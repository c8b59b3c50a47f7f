// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the hymnal build: locate the converter, convert every
// score, merge the PDFs, optionally convert to an e-book, and optionally mail
// the result. Every stage is awaited before the next begins.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/hymnal/internal/convert"
	"github.com/pdiddy/hymnal/internal/ebook"
	"github.com/pdiddy/hymnal/internal/mail"
	"github.com/pdiddy/hymnal/internal/merge"
	"github.com/pdiddy/hymnal/internal/tool"
	"github.com/pdiddy/hymnal/pkg/types"
)

// Runner holds the collaborators for each stage. The e-book and mail stages
// are built from the Config passed to Run.
type Runner struct {
	locate    func(path string) (convert.Runner, error)
	converter func(r convert.Runner) convert.Converter
	merger    merge.Merger
	ebook     func(cfg *types.EbookConfig) ebook.Converter
	mailer    func(cfg *types.EmailConfig) mail.Mailer
	out       io.Writer
	now       func() time.Time
}

// New wires the production stages. Progress lines go to w.
func New(w io.Writer) *Runner {
	return &Runner{
		locate: func(path string) (convert.Runner, error) {
			t, err := tool.Locate(path)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
		converter: func(r convert.Runner) convert.Converter {
			return convert.NewMuseScoreConverter(r)
		},
		merger: merge.NewPDFCPUMerger(),
		ebook: func(cfg *types.EbookConfig) ebook.Converter {
			return ebook.NewCalibreConverter(cfg.ConverterPath)
		},
		mailer: mail.New,
		out:    w,
		now:    time.Now,
	}
}

// Run executes the build. The returned report is non-nil once the converter
// has been located, even when a later stage fails.
func (r *Runner) Run(ctx context.Context, cfg types.Config) (*types.RunReport, error) {
	exe, err := r.locate(cfg.ExecutablePath)
	if err != nil {
		fmt.Fprintf(r.out, "File not found at %s\n", cfg.ExecutablePath)
		return nil, &ToolNotFoundError{Path: cfg.ExecutablePath, Err: err}
	}

	report := &types.RunReport{StartedAt: r.now()}
	defer func() { report.FinishedAt = r.now() }()

	sources, err := convert.ListSources(cfg.Paths.Source)
	if err != nil {
		return report, err
	}
	for _, s := range sources {
		report.Sources = append(report.Sources, s.Name)
	}

	if err := convert.ResetBuildDir(cfg.Paths.Build); err != nil {
		return report, err
	}

	pages, err := convert.ConvertAll(ctx, r.converter(exe), sources, cfg.Paths.Build, r.out)
	report.Artifacts = append(report.Artifacts, pages...)
	if err != nil {
		var ce *convert.Error
		if errors.As(err, &ce) {
			return report, &ConversionError{Source: ce.Source, Err: ce.Err}
		}
		return report, &ConversionError{Err: err}
	}

	if err := r.merge(ctx, cfg, report); err != nil {
		return report, err
	}
	if report.MergedPath == "" {
		return report, nil
	}

	attachment := report.MergedPath
	if cfg.Ebook != nil {
		if path, ok := r.convertEbook(ctx, cfg, report); ok {
			attachment = path
		}
	}

	r.deliver(ctx, cfg, report, attachment)
	fmt.Fprintln(r.out, "Build complete.")
	return report, nil
}

// merge combines the build directory's PDFs. A failure is returned only when
// the merge policy is fatal; otherwise it is recorded and MergedPath stays
// empty.
func (r *Runner) merge(ctx context.Context, cfg types.Config, report *types.RunReport) error {
	inputs, err := merge.ListArtifacts(cfg.Paths.Build)
	if err == nil {
		fmt.Fprintf(r.out, "Merging %d PDF(s) into %s\n", len(inputs), cfg.Paths.Output)
		err = r.merger.Merge(ctx, inputs, cfg.Paths.Output)
	}
	if err != nil {
		if cfg.Merge.FailOnError {
			return &MergeError{Err: err}
		}
		fmt.Fprintf(r.out, "Merge failed: %v\n", err)
		report.Warnings = append(report.Warnings, fmt.Sprintf("merge: %v", err))
		return nil
	}

	report.MergedPath = cfg.Paths.Output
	report.Artifacts = append(report.Artifacts, types.BuildArtifact{
		Kind: types.ArtifactMerged,
		Path: cfg.Paths.Output,
	})
	return nil
}

// convertEbook runs the optional e-book conversion to completion. Failure
// is non-fatal and leaves the PDF as the attachment.
func (r *Runner) convertEbook(ctx context.Context, cfg types.Config, report *types.RunReport) (string, bool) {
	out := cfg.Ebook.Output
	fmt.Fprintf(r.out, "Converting %s to %s\n", report.MergedPath, out)
	if err := r.ebook(cfg.Ebook).Convert(ctx, report.MergedPath, out); err != nil {
		fmt.Fprintf(r.out, "E-book conversion failed: %v\n", err)
		report.Warnings = append(report.Warnings, fmt.Sprintf("ebook: %v", err))
		return "", false
	}
	report.EbookPath = out
	report.Artifacts = append(report.Artifacts, types.BuildArtifact{
		Kind: types.ArtifactEbook,
		Path: out,
	})
	return out, true
}

// deliver mails attachment when email is configured. Send errors are
// recorded but never fail the run.
func (r *Runner) deliver(ctx context.Context, cfg types.Config, report *types.RunReport, attachment string) {
	if !cfg.HasEmail() {
		fmt.Fprintln(r.out, "No email configured; skipping delivery.")
		return
	}

	report.Attachment = attachment
	fmt.Fprintf(r.out, "Sending %s to %s\n", attachment, cfg.Email.KindleAddress)
	if err := r.mailer(cfg.Email).Send(ctx, attachment); err != nil {
		fmt.Fprintf(r.out, "Email failed: %v\n", err)
		report.Warnings = append(report.Warnings, fmt.Sprintf("email: %v", err))
		return
	}
	report.Delivered = true
	fmt.Fprintln(r.out, "Email sent.")
}
