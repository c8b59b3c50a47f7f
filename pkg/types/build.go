// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SourceFile is a score file enumerated from the source directory.
type SourceFile struct {
	// Name is the file name including extension (e.g. "amazing-grace.mscz").
	Name string `json:"name" yaml:"name"`

	// Ext is the extension including the dot (e.g. ".mscz").
	Ext string `json:"ext" yaml:"ext"`

	// Path is the full path used when invoking the converter.
	Path string `json:"path" yaml:"path"`
}

// Stem returns the file name without its extension.
func (s SourceFile) Stem() string {
	return s.Name[:len(s.Name)-len(s.Ext)]
}

// ArtifactKind identifies what produced a build artifact.
type ArtifactKind string

const (
	ArtifactPage   ArtifactKind = "page"
	ArtifactMerged ArtifactKind = "merged"
	ArtifactEbook  ArtifactKind = "ebook"
)

// BuildArtifact is a file generated during a run.
type BuildArtifact struct {
	Kind ArtifactKind `json:"kind" yaml:"kind"`
	Path string       `json:"path" yaml:"path"`

	// Source is the score file a page artifact was converted from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// RunReport records the outcome of one pipeline run.
type RunReport struct {
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// Sources lists the score files passed to the converter, in order.
	Sources []string `json:"sources" yaml:"sources"`

	// Artifacts lists every file the run produced.
	Artifacts []BuildArtifact `json:"artifacts" yaml:"artifacts"`

	MergedPath string `json:"merged_path,omitempty" yaml:"merged_path,omitempty"`
	EbookPath  string `json:"ebook_path,omitempty" yaml:"ebook_path,omitempty"`

	// Attachment is the file handed to the mailer, if delivery ran.
	Attachment string `json:"attachment,omitempty" yaml:"attachment,omitempty"`
	Delivered  bool   `json:"delivered" yaml:"delivered"`

	// Warnings collects non-fatal stage failures.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Duration returns how long the run took.
func (r RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
