// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the run configuration from an optional config file,
// HYMNAL_* environment overrides, the secrets directory, and the host OS.
// Resolution never fails: a missing or unreadable file falls back to defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/hymnal/internal/secrets"
	"github.com/pdiddy/hymnal/pkg/types"
)

// DefaultFile is the config file read when no --config flag is given.
const DefaultFile = "config.json"

// Host OS identities, in the form reported by uname / os.type().
const (
	OSWindows = "Windows_NT"
	OSDarwin  = "Darwin"
	OSLinux   = "Linux"
)

const (
	defaultSourceDir   = "src"
	defaultBuildDir    = "build"
	defaultOutput      = "dist/hymnal.pdf"
	defaultReportPath  = "dist/report.yaml"
	defaultEbookTool   = "ebook-convert"
	defaultEbookOutput = "dist/hymnal.mobi"
)

// executableDefaults maps OS identity to the standard MuseScore install path.
var executableDefaults = map[string]string{
	OSWindows: `C:\Program Files (x86)\MuseScore 2\bin\MuseScore.exe`,
	OSDarwin:  "/Applications/MuseScore 2.app/Contents/MacOS/mscore",
}

// HostOSType returns the identity of the running OS.
func HostOSType() string {
	switch runtime.GOOS {
	case "windows":
		return OSWindows
	case "darwin":
		return OSDarwin
	case "linux":
		return OSLinux
	default:
		return runtime.GOOS
	}
}

// DefaultExecutablePath returns the MuseScore path for osType, or "" when the
// OS has no known default.
func DefaultExecutablePath(osType string) string {
	return executableDefaults[osType]
}

// Resolve builds the run configuration. It reads file when present, applies
// defaults for anything unset, fills SMTP credentials from s, and assigns the
// OS default executable path when the file names none. Each decision is
// reported on w.
func Resolve(file, osType string, s secrets.Secrets, w io.Writer) types.Config {
	fmt.Fprintln(w, "Loading configuration...")

	cfg, err := load(file)
	if err != nil {
		if isNotFound(err) {
			fmt.Fprintln(w, "Configuration file not found. Loading defaults.")
		} else {
			fmt.Fprintf(w, "Configuration file %s could not be read (%v). Loading defaults.\n", file, err)
		}
		if cfg, err = load(""); err != nil {
			fmt.Fprintf(w, "Environment overrides ignored (%v).\n", err)
			cfg = defaults()
		}
	} else if file != "" {
		fmt.Fprintf(w, "Using config file: %s\n", file)
	}

	if cfg.ExecutablePath == "" {
		fmt.Fprintf(w, "Detecting OS as %s\n", osType)
		cfg.ExecutablePath = DefaultExecutablePath(osType)
	}
	fmt.Fprintf(w, "Setting MuseScore executable path to: %s\n", cfg.ExecutablePath)

	normalize(&cfg, s)
	return cfg
}

// load reads file into a Config on a private viper instance. An empty file
// name yields defaults and environment overrides only.
func load(file string) (types.Config, error) {
	v := newViper()
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(configType(file))
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, err
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// defaults is the configuration used when neither the file nor the
// environment can be decoded. It matches the defaults set in newViper.
func defaults() types.Config {
	return types.Config{
		Paths: types.PathsConfig{
			Source: defaultSourceDir,
			Build:  defaultBuildDir,
			Output: defaultOutput,
		},
		Merge:      types.MergeConfig{FailOnError: true},
		ReportPath: defaultReportPath,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HYMNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for env overrides to reach Unmarshal.
	v.SetDefault("path", "")
	v.SetDefault("paths.source", defaultSourceDir)
	v.SetDefault("paths.build", defaultBuildDir)
	v.SetDefault("paths.output", defaultOutput)
	v.SetDefault("merge.failOnError", true)
	v.SetDefault("reportPath", defaultReportPath)
	v.SetDefault("historyPath", "")
	return v
}

func configType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// normalize fills block-level defaults that viper cannot express for
// optional sections.
func normalize(cfg *types.Config, s secrets.Secrets) {
	if cfg.Email != nil {
		if cfg.Email.SMTPUser == "" {
			cfg.Email.SMTPUser = s.Get(secrets.KeySMTPUser)
		}
		if cfg.Email.SMTPPassword == "" {
			cfg.Email.SMTPPassword = s.Get(secrets.KeySMTPPassword)
		}
	}
	if cfg.Ebook != nil {
		if cfg.Ebook.ConverterPath == "" {
			cfg.Ebook.ConverterPath = defaultEbookTool
		}
		if cfg.Ebook.Output == "" {
			cfg.Ebook.Output = defaultEbookOutput
		}
	}
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}
