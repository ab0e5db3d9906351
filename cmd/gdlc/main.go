package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "build":
		return buildCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "play":
		return playCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  build [-o out.js] [-debug] <file.gdl>")
	fmt.Fprintln(os.Stderr, "    compile a game description to JavaScript")
	fmt.Fprintln(os.Stderr, "  check [-all] <file.gdl>")
	fmt.Fprintln(os.Stderr, "    validate syntax (and semantics with -all) without generating code")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <path>...")
	fmt.Fprintln(os.Stderr, "    format .gdl source files")
	fmt.Fprintln(os.Stderr, "  play [file.gdl]")
	fmt.Fprintln(os.Stderr, "    interactive playground with live validation")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
