package gdl

import (
	"strings"
	"testing"
)

func TestFormatDiagnosticIncludesCodeFrame(t *testing.T) {
	source := "game {\n  size: [800]\n}"
	d := errorAt(Span{Start: Position{Line: 2, Column: 3}}, "Size must be an array with 2 elements [width, height]")

	out := FormatDiagnostic(source, d)
	if !strings.Contains(out, "Size must be an array") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "--> line 2, column 3") {
		t.Fatalf("missing frame location: %q", out)
	}
	if !strings.Contains(out, "  size: [800]") {
		t.Fatalf("missing source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret: %q", out)
	}
}

func TestFormatDiagnosticSuggestions(t *testing.T) {
	d := errorAt(Span{Start: Position{Line: 1, Column: 1}}, "scale must be one of: fit, exact, zoom")
	d.Suggestions = []string{"fit", "exact", "zoom"}

	out := FormatDiagnostic("game { }", d)
	if strings.Count(out, "hint:") != 3 {
		t.Fatalf("expected three hints: %q", out)
	}
}

func TestFormatCodeFrameOutOfRange(t *testing.T) {
	if frame := formatCodeFrame("one line", Position{Line: 9, Column: 1}); frame != "" {
		t.Fatalf("expected empty frame for out-of-range line, got %q", frame)
	}
	if frame := formatCodeFrame("", Position{Line: 1, Column: 1}); frame != "" {
		t.Fatalf("expected empty frame for empty source, got %q", frame)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := errorAt(Span{Start: Position{Line: 3, Column: 7}}, "boom")
	if got := d.String(); got != "3:7: error: boom" {
		t.Fatalf("unexpected string: %q", got)
	}

	w := warningAt(Span{}, "heads up")
	if got := w.String(); got != "warning: heads up" {
		t.Fatalf("unexpected string: %q", got)
	}
}
