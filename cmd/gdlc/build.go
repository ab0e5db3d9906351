package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gamedsl/gdl/gdl"
)

func buildCommand(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	out := fs.String("o", "", "output file (default: input with .js extension)")
	debug := fs.Bool("debug", false, "enable debug bootstrap in generated code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("gdlc build: source path required")
	}
	sourcePath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	input, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	source := string(input)

	compiler := gdl.New(gdl.Options{Debug: *debug})
	result := compiler.Compile(source)

	if output := renderDiagnostics(source, result.Errors, result.Warnings); output != "" {
		fmt.Print(output)
	}
	if !result.Success {
		return fmt.Errorf("build failed: %s", renderSummary(result.Errors, result.Warnings))
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".js"
	}
	if err := os.WriteFile(outPath, []byte(result.Code), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("%s %s\n",
		successStyle.Render("compiled"),
		mutedStyle.Render(fmt.Sprintf("%s (%d entities, %d behaviors, %d scenes) in %s",
			outPath,
			len(result.Metadata.Entities),
			len(result.Metadata.Behaviors),
			len(result.Metadata.Scenes),
			result.Elapsed.Round(time.Microsecond))))
	return nil
}
