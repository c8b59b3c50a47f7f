// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Config is the resolved configuration for one run. It is built once by the
// config resolver and passed by value into every stage.
type Config struct {
	// ExecutablePath is the location of the MuseScore executable.
	ExecutablePath string `mapstructure:"path" json:"path" yaml:"path"`

	// Email enables delivery of the finished hymnal. Nil disables delivery.
	Email *EmailConfig `mapstructure:"email" json:"email,omitempty" yaml:"email,omitempty"`

	// Paths holds the source, build, and output locations.
	Paths PathsConfig `mapstructure:"paths" json:"paths" yaml:"paths"`

	// Merge controls the merge stage failure policy.
	Merge MergeConfig `mapstructure:"merge" json:"merge" yaml:"merge"`

	// Ebook enables conversion of the merged PDF. Nil disables conversion.
	Ebook *EbookConfig `mapstructure:"ebook" json:"ebook,omitempty" yaml:"ebook,omitempty"`

	// ReportPath is where the YAML run report is written. Empty disables it.
	ReportPath string `mapstructure:"reportPath" json:"reportPath" yaml:"reportPath"`

	// HistoryPath is the SQLite build ledger. Empty disables it.
	HistoryPath string `mapstructure:"historyPath" json:"historyPath" yaml:"historyPath"`
}

// HasEmail reports whether delivery is configured.
func (c Config) HasEmail() bool {
	return c.Email != nil
}

// EmailConfig holds the SMTP settings used to send the hymnal to a Kindle.
type EmailConfig struct {
	KindleAddress string `mapstructure:"kindleEmailAddress" json:"kindleEmailAddress" yaml:"kindleEmailAddress"`
	SMTPUser      string `mapstructure:"smtpUser" json:"smtpUser" yaml:"smtpUser"`
	SMTPPassword  string `mapstructure:"smtpPassword" json:"smtpPassword" yaml:"smtpPassword"`

	// SMTPServer is host or host:port.
	SMTPServer  string `mapstructure:"smtpServer" json:"smtpServer" yaml:"smtpServer"`
	SMTPSSL     bool   `mapstructure:"smtpSsl" json:"smtpSsl" yaml:"smtpSsl"`
	FromAddress string `mapstructure:"fromAddress" json:"fromAddress" yaml:"fromAddress"`
}

// PathsConfig holds the filesystem layout of a build.
type PathsConfig struct {
	// Source is the directory of score files (default "src").
	Source string `mapstructure:"source" json:"source" yaml:"source"`

	// Build is the per-file PDF directory, recreated on every run (default "build").
	Build string `mapstructure:"build" json:"build" yaml:"build"`

	// Output is the merged PDF path (default "dist/hymnal.pdf").
	Output string `mapstructure:"output" json:"output" yaml:"output"`
}

// MergeConfig holds settings for the merge stage.
type MergeConfig struct {
	// FailOnError ends the run with an error when merging fails (default true).
	// When false the failure is logged and delivery is skipped.
	FailOnError bool `mapstructure:"failOnError" json:"failOnError" yaml:"failOnError"`
}

// EbookConfig holds settings for converting the merged PDF to an e-book.
type EbookConfig struct {
	// ConverterPath is the calibre ebook-convert binary (default "ebook-convert").
	ConverterPath string `mapstructure:"converterPath" json:"converterPath" yaml:"converterPath"`

	// Output is the converted file path; its extension selects the format
	// (default "dist/hymnal.mobi").
	Output string `mapstructure:"output" json:"output" yaml:"output"`
}
