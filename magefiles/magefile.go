//go:build mage

// Package main provides build targets for primgen using Mage.
//
// Usage:
//
//	mage generate   Regenerate pkg/primitives from its table
//	mage check      Fail if the committed generated file is stale
//	mage build      Compile the primgen binary to bin/
//	mage test       Run all tests
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "primgen"
	binaryDir  = "bin"
	cmdDir     = "./cmd/primgen"

	primitivesDir = "pkg/primitives"
	generatedFile = "primitives_gen.go"
)

// Generate runs go generate for the primitive vocabulary.
func Generate() error {
	return sh.RunV("go", "generate", "./"+primitivesDir)
}

// Check regenerates the primitives into a temporary file and fails when the
// committed file differs.
func Check() error {
	tmp, err := os.CreateTemp("", "primitives_gen_*.go")
	if err != nil {
		return err
	}
	_ = tmp.Close()
	defer os.Remove(tmp.Name())

	if err := sh.Run("go", "run", cmdDir, "generate", filepath.Join(primitivesDir, "table.cue"),
		"-o", tmp.Name(), "--package", "primitives"); err != nil {
		return err
	}

	fresh, err := os.ReadFile(tmp.Name())
	if err != nil {
		return err
	}
	committed, err := os.ReadFile(filepath.Join(primitivesDir, generatedFile))
	if err != nil {
		return err
	}
	if !bytes.Equal(fresh, committed) {
		return fmt.Errorf("%s is stale; run mage generate", filepath.Join(primitivesDir, generatedFile))
	}
	return nil
}

// Build compiles the primgen binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests after checking the generated file.
func Test() error {
	mg.Deps(Check)
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}
