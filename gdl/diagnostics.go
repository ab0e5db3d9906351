package gdl

import "fmt"

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// CodeUnexpectedError marks a diagnostic produced from a recovered panic at
// the compiler boundary rather than from a specific pipeline stage.
const CodeUnexpectedError = "UNEXPECTED_ERROR"

// Diagnostic is one error or warning attached to a source span. Diagnostics
// accumulate in source order within a pass; across passes they keep pass
// order (lex/parse before semantic).
type Diagnostic struct {
	Severity    Severity
	Message     string
	Span        Span
	Code        string
	Suggestions []string
}

func (d Diagnostic) String() string {
	if d.Span.Start.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

func errorAt(span Span, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...), Span: span}
}

func warningAt(span Span, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Span: span}
}
