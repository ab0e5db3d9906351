package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gamedsl/gdl/gdl"
)

type keyMap struct {
	Quit    key.Binding
	Preview key.Binding
	Save    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Preview: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "toggle generated code"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
}

type playModel struct {
	editor   textarea.Model
	compiler *gdl.Compiler
	path     string

	errors   []gdl.Diagnostic
	warnings []gdl.Diagnostic
	metadata gdl.Metadata
	code     string

	showPreview bool
	statusLine  string
	width       int
	height      int
	quitting    bool
	initialized bool
}

func newPlayModel(path, source string) playModel {
	editor := textarea.New()
	editor.Placeholder = "game { size: [800, 600] }"
	editor.SetValue(source)
	editor.Focus()
	editor.CharLimit = 0

	m := playModel{
		editor:   editor,
		compiler: gdl.New(gdl.Options{}),
		path:     path,
	}
	m.recompile()
	return m
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tea.EnterAltScreen)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 4)
		m.editor.SetHeight(maxInt(6, msg.Height/2))
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Preview):
			m.showPreview = !m.showPreview
			m.recompile()
			return m, nil

		case key.Matches(msg, keys.Save):
			m.statusLine = m.save()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.editor.Value()
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.statusLine = ""
		m.recompile()
	}
	return m, cmd
}

// recompile refreshes diagnostics from the current editor contents. The
// fast Validate path runs on every edit; the full pipeline runs only when
// the generated-code preview is open.
func (m *playModel) recompile() {
	source := m.editor.Value()
	if m.showPreview {
		result := m.compiler.Compile(source)
		m.errors = result.Errors
		m.warnings = result.Warnings
		m.metadata = result.Metadata
		m.code = result.Code
		return
	}
	validation := m.compiler.Validate(source)
	m.errors = validation.Errors
	m.warnings = validation.Warnings
	m.code = ""
}

func (m *playModel) save() string {
	if m.path == "" {
		return "no file to save to (start with: gdlc play file.gdl)"
	}
	if err := os.WriteFile(m.path, []byte(m.editor.Value()), 0o644); err != nil {
		return "save failed: " + err.Error()
	}
	return "saved " + filepath.Base(m.path)
}

func (m playModel) View() string {
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}
	if !m.initialized {
		return "Loading..."
	}

	var b strings.Builder

	title := "GDL Playground"
	if m.path != "" {
		title += " — " + filepath.Base(m.path)
	}
	b.WriteString(headerStyle.Render(title) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", minInt(m.width-2, 60))) + "\n")

	b.WriteString(m.editor.View() + "\n\n")

	b.WriteString(m.renderDiagnosticsPanel())

	if m.showPreview && m.code != "" {
		b.WriteString(borderStyle.Render(truncateLines(m.code, maxInt(4, m.height/3))) + "\n")
	}

	if m.statusLine != "" {
		b.WriteString(mutedStyle.Render(m.statusLine) + "\n")
	}

	footer := warnStyle.Render("ctrl+g") + mutedStyle.Render(" preview  ") +
		warnStyle.Render("ctrl+s") + mutedStyle.Render(" save  ") +
		warnStyle.Render("ctrl+c") + mutedStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func (m playModel) renderDiagnosticsPanel() string {
	if len(m.errors) == 0 && len(m.warnings) == 0 {
		return successStyle.Render("✓ no issues") + "\n\n"
	}

	var b strings.Builder
	for _, d := range m.errors {
		b.WriteString(errorStyle.Render("✗ "+d.String()) + "\n")
	}
	for _, d := range m.warnings {
		b.WriteString(warnStyle.Render("! "+d.String()) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func truncateLines(text string, limit int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) <= limit {
		return strings.Join(lines, "\n")
	}
	kept := append([]string{}, lines[:limit]...)
	kept = append(kept, fmt.Sprintf("… %d more lines", len(lines)-limit))
	return strings.Join(kept, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func playCommand(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := ""
	source := ""
	if remaining := fs.Args(); len(remaining) > 0 {
		abs, err := filepath.Abs(remaining[0])
		if err != nil {
			return fmt.Errorf("resolve source path: %w", err)
		}
		input, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		path = abs
		source = string(input)
	}

	p := tea.NewProgram(newPlayModel(path, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
