package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCommandWritesOutput(t *testing.T) {
	sourcePath := writeSource(t, validGameSource)

	out, err := captureStdout(t, func() error {
		return buildCommand([]string{sourcePath})
	})
	if err != nil {
		t.Fatalf("buildCommand failed: %v", err)
	}
	if !strings.Contains(out, "compiled") {
		t.Fatalf("unexpected stdout: %q", out)
	}

	outPath := strings.TrimSuffix(sourcePath, ".gdl") + ".js"
	code, readErr := os.ReadFile(outPath)
	if readErr != nil {
		t.Fatalf("read output: %v", readErr)
	}
	if !strings.Contains(string(code), "class Player extends Entity") {
		t.Fatalf("unexpected generated code:\n%s", code)
	}
}

func TestBuildCommandCustomOutputPath(t *testing.T) {
	sourcePath := writeSource(t, validGameSource)
	outPath := filepath.Join(t.TempDir(), "bundle.js")

	_, err := captureStdout(t, func() error {
		return buildCommand([]string{"-o", outPath, sourcePath})
	})
	if err != nil {
		t.Fatalf("buildCommand failed: %v", err)
	}
	if _, statErr := os.Stat(outPath); statErr != nil {
		t.Fatalf("expected output at %s: %v", outPath, statErr)
	}
}

func TestBuildCommandDebugFlag(t *testing.T) {
	sourcePath := writeSource(t, validGameSource)
	outPath := filepath.Join(t.TempDir(), "debug.js")

	_, err := captureStdout(t, func() error {
		return buildCommand([]string{"-o", outPath, "-debug", sourcePath})
	})
	if err != nil {
		t.Fatalf("buildCommand failed: %v", err)
	}
	code, readErr := os.ReadFile(outPath)
	if readErr != nil {
		t.Fatalf("read output: %v", readErr)
	}
	if !strings.Contains(string(code), "game.enableDebug();") {
		t.Fatalf("expected debug bootstrap in output:\n%s", code)
	}
}

func TestBuildCommandReportsErrors(t *testing.T) {
	sourcePath := writeSource(t, `entity P { behaviors: [Missing] }`)

	out, err := captureStdout(t, func() error {
		return buildCommand([]string{sourcePath})
	})
	if err == nil {
		t.Fatalf("expected build failure")
	}
	if !strings.Contains(err.Error(), "build failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Behavior 'Missing' is not defined") {
		t.Fatalf("expected diagnostic on stdout, got %q", out)
	}

	outPath := strings.TrimSuffix(sourcePath, ".gdl") + ".js"
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Fatalf("no output file should be written on failure")
	}
}

func TestBuildCommandRequiresPath(t *testing.T) {
	err := buildCommand(nil)
	if err == nil {
		t.Fatalf("expected source path error")
	}
	if !strings.Contains(err.Error(), "source path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}
