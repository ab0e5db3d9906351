package gdl

import "strings"

// AnalysisResult is the semantic verdict for a program. Warnings never
// affect validity.
type AnalysisResult struct {
	Valid    bool
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// analyzer validates a parsed program without mutating it. All symbol
// tables are rebuilt per run, so an analyzer holds no cross-call state.
type analyzer struct {
	entities  *symbolTable
	behaviors *symbolTable
	scenes    *symbolTable

	errors   []Diagnostic
	warnings []Diagnostic
}

func newAnalyzer() *analyzer {
	return &analyzer{
		entities:  newSymbolTable("Entity"),
		behaviors: newSymbolTable("Behavior"),
		scenes:    newSymbolTable("Scene"),
	}
}

// analyze runs three ordered passes over the top-level declarations:
// collect symbols, resolve cross-references, check property schemas. A
// fourth pass emits advisory warnings.
func (a *analyzer) analyze(program *Program) AnalysisResult {
	a.collect(program)
	a.resolve(program)
	a.checkSchemas(program)
	a.lint(program)

	return AnalysisResult{
		Valid:    len(a.errors) == 0,
		Errors:   a.errors,
		Warnings: a.warnings,
	}
}

func (a *analyzer) errorf(span Span, format string, args ...any) {
	a.errors = append(a.errors, errorAt(span, format, args...))
}

func (a *analyzer) warnf(span Span, format string, args ...any) {
	a.warnings = append(a.warnings, warningAt(span, format, args...))
}

// collect populates the entity, behavior, and scene tables. Duplicates are
// an error; the first declaration wins.
func (a *analyzer) collect(program *Program) {
	sawGame := false
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *GameDecl:
			if sawGame {
				a.warnf(d.Span(), "multiple game blocks; only the first is used")
			}
			sawGame = true
		case *EntityDecl:
			if !a.entities.declare(d.Name, d) {
				a.errorf(d.Span(), "Entity '%s' is already defined", d.Name)
			}
		case *BehaviorDecl:
			if !a.behaviors.declare(d.Name, d) {
				a.errorf(d.Span(), "Behavior '%s' is already defined", d.Name)
			}
		case *SceneDecl:
			if !a.scenes.declare(d.Name, d) {
				a.errorf(d.Span(), "Scene '%s' is already defined", d.Name)
			}
		}
	}
}

// resolve validates every cross-reference against the symbol tables.
func (a *analyzer) resolve(program *Program) {
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *GameDecl:
			if prop := findProp(d.Props, "defaultScene"); prop != nil {
				if ident, ok := prop.Value.(*IdentValue); ok && !a.scenes.has(ident.Name) {
					a.errorf(prop.Span(), "Scene '%s' is not defined", ident.Name)
				}
			}
		case *EntityDecl:
			prop := findProp(d.Props, "behaviors")
			if prop == nil {
				continue
			}
			list, ok := prop.Value.(*ArrayValue)
			if !ok {
				a.errorf(prop.Span(), "behaviors must be an array of behavior names")
				continue
			}
			for _, element := range list.Elements {
				name, ok := nameOf(element)
				if !ok {
					a.errorf(element.Span(), "behaviors entries must be behavior names")
					continue
				}
				if !a.behaviors.has(name) {
					a.errorf(element.Span(), "Behavior '%s' is not defined", name)
				}
			}
		case *SceneDecl:
			for _, spawn := range d.Spawns {
				if !a.entities.has(spawn.Type) {
					a.errorf(spawn.Span(), "Entity '%s' is not defined", spawn.Type)
				}
			}
		}
	}
}

var entityPhysicsModes = []string{"static", "dynamic", "kinematic", "platformer", "topdown"}
var gameScaleModes = []string{"fit", "exact", "zoom"}
var gamePhysicsEngines = []string{"arcade", "matter"}

// checkSchemas type-checks properties against the fixed per-declaration-kind
// schema. Each violation references the offending property's span.
func (a *analyzer) checkSchemas(program *Program) {
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *GameDecl:
			a.checkGameProps(d.Props)
		case *EntityDecl:
			a.checkSizeProp(d.Props)
			if prop := findProp(d.Props, "physics"); prop != nil {
				a.checkEnumProp(prop, "physics", entityPhysicsModes)
			}
		case *SceneDecl:
			a.checkSizeProp(d.Props)
		}
	}
}

func (a *analyzer) checkGameProps(props []*Property) {
	a.checkSizeProp(props)
	if prop := findProp(props, "scale"); prop != nil {
		a.checkEnumProp(prop, "scale", gameScaleModes)
	}
	if prop := findProp(props, "physics"); prop != nil {
		a.checkEnumProp(prop, "physics", gamePhysicsEngines)
	}
	if prop := findProp(props, "pixelArt"); prop != nil {
		if _, ok := prop.Value.(*BoolValue); !ok {
			a.errorf(prop.Span(), "pixelArt must be a boolean (true or false)")
		}
	}
}

func (a *analyzer) checkSizeProp(props []*Property) {
	prop := findProp(props, "size")
	if prop == nil {
		return
	}
	list, ok := prop.Value.(*ArrayValue)
	if !ok || len(list.Elements) != 2 {
		a.errorf(prop.Span(), "Size must be an array with 2 elements [width, height]")
	}
}

func (a *analyzer) checkEnumProp(prop *Property, name string, allowed []string) {
	value, ok := nameOf(prop.Value)
	if ok {
		for _, candidate := range allowed {
			if value == candidate {
				return
			}
		}
	}
	diag := errorAt(prop.Span(), "%s must be one of: %s", name, strings.Join(allowed, ", "))
	diag.Suggestions = append(diag.Suggestions, allowed...)
	a.errors = append(a.errors, diag)
}

// lint emits advisory warnings about declarations nothing references.
func (a *analyzer) lint(program *Program) {
	usedBehaviors := make(map[string]struct{})
	spawnedEntities := make(map[string]struct{})
	hasDefaultScene := false
	hasGame := false

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *GameDecl:
			hasGame = true
			if findProp(d.Props, "defaultScene") != nil {
				hasDefaultScene = true
			}
		case *EntityDecl:
			if prop := findProp(d.Props, "behaviors"); prop != nil {
				if list, ok := prop.Value.(*ArrayValue); ok {
					for _, element := range list.Elements {
						if name, ok := nameOf(element); ok {
							usedBehaviors[name] = struct{}{}
						}
					}
				}
			}
		case *SceneDecl:
			for _, spawn := range d.Spawns {
				spawnedEntities[spawn.Type] = struct{}{}
			}
		}
	}

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *BehaviorDecl:
			if _, used := usedBehaviors[d.Name]; !used {
				a.warnf(d.Span(), "Behavior '%s' is declared but never used", d.Name)
			}
		case *EntityDecl:
			if _, spawned := spawnedEntities[d.Name]; !spawned {
				a.warnf(d.Span(), "Entity '%s' is declared but never spawned", d.Name)
			}
		}
	}

	if hasGame && !hasDefaultScene && len(a.scenes.order) > 0 {
		a.warnf(Span{}, "game has no defaultScene; no scene will load on start")
	}
}

func findProp(props []*Property, name string) *Property {
	for _, prop := range props {
		if prop.Name == name {
			return prop
		}
	}
	return nil
}

// nameOf extracts a referenceable name from an identifier or string value.
func nameOf(v Value) (string, bool) {
	switch value := v.(type) {
	case *IdentValue:
		return value.Name, true
	case *StringValue:
		return value.Value, true
	default:
		return "", false
	}
}
