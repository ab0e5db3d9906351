package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gamedsl/gdl/gdl"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	warnColor    = lipgloss.Color("#F59E0B")
	mutedColor   = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// renderDiagnostics formats errors then warnings with code frames, styled
// for terminal output.
func renderDiagnostics(source string, errs, warnings []gdl.Diagnostic) string {
	var b strings.Builder
	for _, d := range errs {
		b.WriteString(errorStyle.Render(gdl.FormatDiagnostic(source, d)))
		b.WriteString("\n")
	}
	for _, d := range warnings {
		b.WriteString(warnStyle.Render(gdl.FormatDiagnostic(source, d)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderSummary(errs, warnings []gdl.Diagnostic) string {
	switch {
	case len(errs) > 0 && len(warnings) > 0:
		return errorStyle.Render(fmt.Sprintf("%d error(s), %d warning(s)", len(errs), len(warnings)))
	case len(errs) > 0:
		return errorStyle.Render(fmt.Sprintf("%d error(s)", len(errs)))
	case len(warnings) > 0:
		return warnStyle.Render(fmt.Sprintf("%d warning(s)", len(warnings)))
	default:
		return successStyle.Render("no issues")
	}
}
