//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the server and the palette tool
var Default = Build

// Build builds the server and the palette tool into bin/
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	if err := sh.RunV("go", "build", "-o", "bin/portfolio", "."); err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	return sh.RunV("go", "build", "-o", "bin/palette", "./cmd/palette")
}

// Run starts the server in debug mode
func Run() error {
	return sh.RunWithV(map[string]string{"GIN_MODE": "debug", "LOG_LEVEL": "debug"}, "go", "run", ".")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// QA runs formatting, vet and the test suite
func QA() {
	mg.SerialDeps(Lint.Vet, Test.All)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Format rewrites sources with gofmt
func (Lint) Format() error {
	return sh.RunV("gofmt", "-l", "-w", ".")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs all tests with the race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}
