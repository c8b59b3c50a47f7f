//go:build mage

// Package main contains Mage build targets for hymnal developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories a build expects.
var projectDirs = []string{
	"src",
	"build",
	"dist",
	".secrets",
}

const (
	binDir  = "bin"
	binName = "hymnal"
	cmdPkg  = "./cmd/hymnal"
)

// Init creates the project directory structure and a starter config.json.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}

	if _, err := os.Stat("config.json"); os.IsNotExist(err) {
		if err := os.WriteFile("config.json", []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("writing config.json: %w", err)
		}
		fmt.Println("   config.json")
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const starterConfig = `{
  "path": "",
  "paths": {
    "source": "src",
    "build": "build",
    "output": "dist/hymnal.pdf"
  },
  "merge": {
    "failOnError": true
  }
}
`

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Hymnal builds the CLI and runs a full hymnal build.
func Hymnal() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName))
}

// Clean removes build outputs and the compiled binary.
func Clean() error {
	for _, dir := range []string{"build", "dist", binDir} {
		if err := sh.Rm(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
