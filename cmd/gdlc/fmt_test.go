package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFmtCommandPrintsFormatted(t *testing.T) {
	sourcePath := writeSource(t, "game {\ntitle: \"Demo\"\n}\n")

	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{sourcePath})
	})
	if err != nil {
		t.Fatalf("fmtCommand failed: %v", err)
	}
	want := "game {\n  title: \"Demo\"\n}\n"
	if out != want {
		t.Fatalf("formatted output = %q, want %q", out, want)
	}
}

func TestFmtCommandWriteFlag(t *testing.T) {
	sourcePath := writeSource(t, "scene Main {\nsize: [800, 600]\n}\n")

	if _, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-w", sourcePath})
	}); err != nil {
		t.Fatalf("fmtCommand failed: %v", err)
	}

	rewritten, err := os.ReadFile(sourcePath)
	if err != nil {
		t.Fatalf("read rewritten file: %v", err)
	}
	want := "scene Main {\n  size: [800, 600]\n}\n"
	if string(rewritten) != want {
		t.Fatalf("rewritten = %q, want %q", string(rewritten), want)
	}
}

func TestFmtCommandCheckFlag(t *testing.T) {
	sourcePath := writeSource(t, "game {\ntitle: \"Demo\"\n}\n")

	_, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-check", sourcePath})
	})
	if err == nil {
		t.Fatalf("expected check failure for unformatted file")
	}
	if !strings.Contains(err.Error(), "1 file(s) need formatting") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckPassesFormatted(t *testing.T) {
	sourcePath := writeSource(t, "game {\n  title: \"Demo\"\n}\n")

	if _, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-check", sourcePath})
	}); err != nil {
		t.Fatalf("formatted file should pass -check: %v", err)
	}
}

func TestCollectGDLFilesWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "scenes")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	paths := []string{
		filepath.Join(dir, "main.gdl"),
		filepath.Join(nested, "boss.gdl"),
		filepath.Join(dir, "notes.txt"),
	}
	for _, path := range paths {
		if err := os.WriteFile(path, []byte("game { }\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	files, err := collectGDLFiles([]string{dir})
	if err != nil {
		t.Fatalf("collectGDLFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 .gdl files, got %d: %v", len(files), files)
	}
	for _, path := range files {
		if filepath.Ext(path) != ".gdl" {
			t.Fatalf("unexpected file collected: %s", path)
		}
	}
}

func TestCollectGDLFilesDeduplicates(t *testing.T) {
	sourcePath := writeSource(t, "game { }\n")

	files, err := collectGDLFiles([]string{sourcePath, sourcePath})
	if err != nil {
		t.Fatalf("collectGDLFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected deduplicated list, got %v", files)
	}
}

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}
