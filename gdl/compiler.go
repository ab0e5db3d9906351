package gdl

import (
	"fmt"
	"time"
)

// Options controls code generation. The zero value is a sensible default.
type Options struct {
	// Optimize and SourceMap are accepted for API compatibility with
	// callers; generation is always syntax-directed and unoptimized.
	Optimize  bool
	SourceMap bool
	Debug     bool
}

// Metadata summarizes declared names for tooling (editor palettes, hot
// reload) so consumers never have to parse generated code.
type Metadata struct {
	Entities  []string
	Behaviors []string
	Scenes    []string
}

// Result is the outcome of one Compile call.
type Result struct {
	Success  bool
	Code     string
	Program  *Program
	Errors   []Diagnostic
	Warnings []Diagnostic
	Metadata Metadata
	Elapsed  time.Duration
}

// Compiler runs the pipeline: lexer, parser, semantic analyzer, code
// generator. Every call constructs fresh stage instances, so a Compiler is
// safe for concurrent use.
type Compiler struct {
	opts Options
}

func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// Compile runs the full pipeline over source. Stages run strictly in
// order and short-circuit: parse errors or an invalid semantic verdict
// return Success=false with that stage's diagnostics and a best-effort AST,
// and the generator is never invoked on invalid input. Compile never
// panics past its boundary; an escaped failure becomes a single
// UNEXPECTED_ERROR diagnostic.
func (c *Compiler) Compile(source string) (result Result) {
	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			result.Success = false
			result.Code = ""
			result.Errors = append(result.Errors, Diagnostic{
				Severity: SeverityError,
				Message:  fmt.Sprintf("unexpected compiler error: %v", r),
				Code:     CodeUnexpectedError,
			})
		}
	}()

	tokens := newLexer(source).Tokenize()
	program, parseDiags := newParser(tokens).parseProgram()
	result.Program = program
	result.Metadata = collectMetadata(program)

	if len(parseDiags) > 0 {
		result.Errors = parseDiags
		return result
	}

	analysis := newAnalyzer().analyze(program)
	result.Warnings = analysis.Warnings
	if !analysis.Valid {
		result.Errors = analysis.Errors
		return result
	}

	result.Code = generate(program, c.opts)
	result.Success = true
	return result
}

// Validate runs only the lexer and parser, for fast editor-time feedback.
// Semantic analysis and code generation are skipped.
func (c *Compiler) Validate(source string) (result AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Valid = false
			result.Errors = append(result.Errors, Diagnostic{
				Severity: SeverityError,
				Message:  fmt.Sprintf("unexpected compiler error: %v", r),
				Code:     CodeUnexpectedError,
			})
		}
	}()

	tokens := newLexer(source).Tokenize()
	_, parseDiags := newParser(tokens).parseProgram()
	return AnalysisResult{Valid: len(parseDiags) == 0, Errors: parseDiags}
}

// collectMetadata gathers declared names in declaration order, first
// occurrence wins on duplicates.
func collectMetadata(program *Program) Metadata {
	entities := newSymbolTable("Entity")
	behaviors := newSymbolTable("Behavior")
	scenes := newSymbolTable("Scene")

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *EntityDecl:
			entities.declare(d.Name, d)
		case *BehaviorDecl:
			behaviors.declare(d.Name, d)
		case *SceneDecl:
			scenes.declare(d.Name, d)
		}
	}

	return Metadata{
		Entities:  entities.names(),
		Behaviors: behaviors.names(),
		Scenes:    scenes.names(),
	}
}
