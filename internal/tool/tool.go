// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool locates and runs the external executables the build shells
// out to: the MuseScore converter and, optionally, calibre's ebook-convert.
package tool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// outputTail bounds how much tool output is quoted in an error.
const outputTail = 512

// NotFoundError reports that an executable path does not name a file.
type NotFoundError struct {
	Path   string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Path == "" {
		return "executable path is not set"
	}
	return fmt.Sprintf("executable not found at %s: %s", e.Path, e.Reason)
}

// executor abstracts filesystem and process access for testing.
type executor interface {
	Stat(path string) (os.FileInfo, error)
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, out io.Writer) error
}

// osExecutor is the production executor backed by os and os/exec.
type osExecutor struct{}

func (osExecutor) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

var defaultExec executor = osExecutor{}

// Tool is an executable that has been verified to exist.
type Tool struct {
	path string
	exec executor
}

// Locate verifies that path names an existing regular file.
func Locate(path string) (*Tool, error) {
	return locate(defaultExec, path)
}

// Find resolves name on PATH when it is not already a path, then locates it.
func Find(name string) (*Tool, error) {
	return find(defaultExec, name)
}

func locate(e executor, path string) (*Tool, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &NotFoundError{Reason: "empty path"}
	}
	info, err := e.Stat(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Reason: "no such file"}
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path, Reason: "is a directory"}
	}
	return &Tool{path: path, exec: e}, nil
}

func find(e executor, name string) (*Tool, error) {
	if name != "" && !strings.ContainsAny(name, `/\`) {
		resolved, err := e.LookPath(name)
		if err != nil {
			return nil, &NotFoundError{Path: name, Reason: "not on PATH"}
		}
		name = resolved
	}
	return locate(e, name)
}

// Path returns the executable location.
func (t *Tool) Path() string { return t.path }

// Run executes the tool with args and waits for it to exit. A spawn failure
// or non-zero exit is returned with the tail of the tool's output.
func (t *Tool) Run(ctx context.Context, args ...string) error {
	var out bytes.Buffer
	if err := t.exec.Run(ctx, t.path, args, &out); err != nil {
		if detail := tail(out.String()); detail != "" {
			return fmt.Errorf("running %s: %w: %s", t.path, err, detail)
		}
		return fmt.Errorf("running %s: %w", t.path, err)
	}
	return nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > outputTail {
		s = "..." + s[len(s)-outputTail:]
	}
	return s
}
