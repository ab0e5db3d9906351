package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamedsl/gdl/gdl"
)

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	all := fs.Bool("all", false, "run semantic analysis in addition to the syntax check")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("gdlc check: source path required")
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

	compiler := gdl.New(gdl.Options{})

	var errs, warnings []gdl.Diagnostic
	if *all {
		// Full pipeline minus output; semantic diagnostics included.
		result := compiler.Compile(source)
		errs, warnings = result.Errors, result.Warnings
	} else {
		validation := compiler.Validate(source)
		errs, warnings = validation.Errors, validation.Warnings
	}

	if output := renderDiagnostics(source, errs, warnings); output != "" {
		fmt.Print(output)
	}
	if len(errs) > 0 {
		return fmt.Errorf("check failed: %s", renderSummary(errs, warnings))
	}

	fmt.Println(successStyle.Render("ok"))
	return nil
}
