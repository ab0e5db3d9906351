package gdl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// generator emits JavaScript for the game runtime from a semantically valid
// program. Validity is a precondition: the generator does not re-check
// references or schemas, and malformed input yields best-effort output.
// Generation is syntax-directed and deterministic for a given AST and
// options.
type generator struct {
	b    strings.Builder
	opts Options
}

func generate(program *Program, opts Options) string {
	g := &generator{opts: opts}
	g.writeImports(program)

	game := firstGameDecl(program)
	if game != nil {
		g.writeGameConfig(game)
	}

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *EntityDecl:
			g.writeEntity(d)
		case *BehaviorDecl:
			g.writeBehavior(d)
		case *SceneDecl:
			g.writeScene(d)
		}
	}

	g.writeMain(program, game)
	return g.b.String()
}

func firstGameDecl(program *Program) *GameDecl {
	for _, decl := range program.Decls {
		if game, ok := decl.(*GameDecl); ok {
			return game
		}
	}
	return nil
}

const runtimeModule = "@gdl/runtime"

// writeImports emits the import preamble. Names are gathered into a set
// first so repeated declarations never duplicate an import, then emitted in
// canonical order.
func (g *generator) writeImports(program *Program) {
	core := map[string]struct{}{"Game": {}}
	helpers := map[string]struct{}{}

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *EntityDecl:
			core["Entity"] = struct{}{}
		case *BehaviorDecl:
			core["Behavior"] = struct{}{}
		case *SceneDecl:
			core["Scene"] = struct{}{}
			for _, spawn := range d.Spawns {
				collectCallNames(spawn.Pos, helpers)
			}
		}
	}

	g.b.WriteString("// Code generated by gdlc. DO NOT EDIT.\n")

	names := make([]string, 0, len(core))
	for _, candidate := range []string{"Game", "Entity", "Behavior", "Scene"} {
		if _, ok := core[candidate]; ok {
			names = append(names, candidate)
		}
	}
	fmt.Fprintf(&g.b, "import { %s } from %q;\n", strings.Join(names, ", "), runtimeModule)

	if len(helpers) > 0 {
		sorted := make([]string, 0, len(helpers))
		for name := range helpers {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)
		fmt.Fprintf(&g.b, "import { %s } from %q;\n", strings.Join(sorted, ", "), runtimeModule+"/position")
	}
	g.b.WriteString("\n")
}

func collectCallNames(v Value, into map[string]struct{}) {
	switch value := v.(type) {
	case *CallValue:
		into[value.Name] = struct{}{}
		for _, arg := range value.Args {
			collectCallNames(arg, into)
		}
	case *ArrayValue:
		for _, element := range value.Elements {
			collectCallNames(element, into)
		}
	case *ObjectValue:
		for _, field := range value.Fields {
			collectCallNames(field.Value, into)
		}
	}
}

func (g *generator) writeGameConfig(game *GameDecl) {
	g.b.WriteString("const gameConfig = {\n")
	for _, prop := range game.Props {
		fmt.Fprintf(&g.b, "  %s: %s,\n", prop.Name, g.serialize(prop.Value))
	}
	g.b.WriteString("};\n\n")
}

func (g *generator) writeEntity(d *EntityDecl) {
	fmt.Fprintf(&g.b, "class %s extends Entity {\n", d.Name)
	g.b.WriteString("  constructor(scene, x, y) {\n")
	g.b.WriteString("    super(scene, x, y);\n")
	g.b.WriteString("    this.addTransform(x, y);\n")

	for _, prop := range d.Props {
		switch prop.Name {
		case "sprite":
			fmt.Fprintf(&g.b, "    this.addSprite(%s);\n", g.serialize(prop.Value))
		case "physics":
			fmt.Fprintf(&g.b, "    this.addBody(%s);\n", g.serialize(prop.Value))
		case "body":
			fmt.Fprintf(&g.b, "    this.configureBody(%s);\n", g.serialize(prop.Value))
		case "animations":
			fmt.Fprintf(&g.b, "    this.addAnimations(%s);\n", g.serialize(prop.Value))
		case "size":
			fmt.Fprintf(&g.b, "    this.setSize(%s);\n", g.serialize(prop.Value))
		case "behaviors":
			// handled after all components exist
		default:
			fmt.Fprintf(&g.b, "    this.%s = %s;\n", prop.Name, g.serialize(prop.Value))
		}
	}

	if prop := findProp(d.Props, "behaviors"); prop != nil {
		if list, ok := prop.Value.(*ArrayValue); ok {
			for _, element := range list.Elements {
				if name, ok := nameOf(element); ok {
					fmt.Fprintf(&g.b, "    this.attachBehavior(%q);\n", name)
				}
			}
		}
	}

	g.b.WriteString("  }\n")
	g.b.WriteString("}\n\n")
}

func (g *generator) writeBehavior(d *BehaviorDecl) {
	fmt.Fprintf(&g.b, "class %s extends Behavior {\n", d.Name)
	g.b.WriteString("  constructor(entity) {\n")
	g.b.WriteString("    super(entity);\n")

	var methods *ObjectValue
	for _, prop := range d.Props {
		switch prop.Name {
		case "properties":
			if obj, ok := prop.Value.(*ObjectValue); ok {
				for _, field := range obj.Fields {
					fmt.Fprintf(&g.b, "    this.%s = %s;\n", field.Name, g.serialize(field.Value))
				}
			}
		case "methods":
			if obj, ok := prop.Value.(*ObjectValue); ok {
				methods = obj
			}
		case "update":
			// stub emitted below for every behavior
		default:
			fmt.Fprintf(&g.b, "    this.%s = %s;\n", prop.Name, g.serialize(prop.Value))
		}
	}
	g.b.WriteString("  }\n")

	if methods != nil {
		for _, field := range methods.Fields {
			g.b.WriteString("\n")
			fmt.Fprintf(&g.b, "  %s() {\n", field.Name)
			g.b.WriteString("    // method stub\n")
			g.b.WriteString("  }\n")
		}
	}

	g.b.WriteString("\n")
	g.b.WriteString("  update(dt) {\n")
	g.b.WriteString("    // update stub\n")
	g.b.WriteString("  }\n")
	g.b.WriteString("}\n\n")
}

func (g *generator) writeScene(d *SceneDecl) {
	fmt.Fprintf(&g.b, "class %s extends Scene {\n", d.Name)
	g.b.WriteString("  initialize() {\n")

	for _, prop := range d.Props {
		switch prop.Name {
		case "size":
			fmt.Fprintf(&g.b, "    this.setSize(%s);\n", g.serialize(prop.Value))
		default:
			fmt.Fprintf(&g.b, "    this.set(%q, %s);\n", prop.Name, g.serialize(prop.Value))
		}
	}

	for _, spawn := range d.Spawns {
		if spawn.Alias != "" {
			fmt.Fprintf(&g.b, "    this.spawn(%q, %s, %q);\n", spawn.Type, g.serialize(spawn.Pos), spawn.Alias)
		} else {
			fmt.Fprintf(&g.b, "    this.spawn(%q, %s);\n", spawn.Type, g.serialize(spawn.Pos))
		}
	}

	for _, event := range d.Events {
		fmt.Fprintf(&g.b, "    this.onEvent(%q, () => {\n", event.Trigger)
		g.b.WriteString("      // event handler stub\n")
		g.b.WriteString("    });\n")
	}

	g.b.WriteString("  }\n")
	g.b.WriteString("}\n\n")
}

// writeMain emits the registries and the bootstrap function. The three
// registries map declared names to constructors so the runtime can
// instantiate by string name.
func (g *generator) writeMain(program *Program, game *GameDecl) {
	g.writeRegistry("entities", program, func(d Decl) (string, bool) {
		e, ok := d.(*EntityDecl)
		if !ok {
			return "", false
		}
		return e.Name, true
	})
	g.writeRegistry("behaviors", program, func(d Decl) (string, bool) {
		b, ok := d.(*BehaviorDecl)
		if !ok {
			return "", false
		}
		return b.Name, true
	})
	g.writeRegistry("scenes", program, func(d Decl) (string, bool) {
		s, ok := d.(*SceneDecl)
		if !ok {
			return "", false
		}
		return s.Name, true
	})

	g.b.WriteString("export function main() {\n")
	if game != nil {
		g.b.WriteString("  const game = new Game(gameConfig);\n")
	} else {
		g.b.WriteString("  const game = new Game({});\n")
	}
	g.b.WriteString("  game.register({ entities, behaviors, scenes });\n")
	if g.opts.Debug {
		g.b.WriteString("  game.enableDebug();\n")
	}
	if start, ok := defaultSceneName(program, game); ok {
		fmt.Fprintf(&g.b, "  game.start(%q);\n", start)
	}
	g.b.WriteString("  return game;\n")
	g.b.WriteString("}\n")
}

func (g *generator) writeRegistry(name string, program *Program, pick func(Decl) (string, bool)) {
	seen := map[string]struct{}{}
	fmt.Fprintf(&g.b, "export const %s = {\n", name)
	for _, decl := range program.Decls {
		declName, ok := pick(decl)
		if !ok {
			continue
		}
		if _, dup := seen[declName]; dup {
			continue
		}
		seen[declName] = struct{}{}
		fmt.Fprintf(&g.b, "  %s,\n", declName)
	}
	g.b.WriteString("};\n\n")
}

// defaultSceneName resolves the scene to load on start: the game's
// defaultScene property when present, otherwise the first declared scene.
func defaultSceneName(program *Program, game *GameDecl) (string, bool) {
	if game != nil {
		if prop := findProp(game.Props, "defaultScene"); prop != nil {
			if name, ok := nameOf(prop.Value); ok {
				return name, true
			}
		}
	}
	for _, decl := range program.Decls {
		if scene, ok := decl.(*SceneDecl); ok {
			return scene.Name, true
		}
	}
	return "", false
}

// serialize renders a property value as a JavaScript expression. Recursion
// is structural: arrays bracket-join their elements, objects brace-join
// their fields.
func (g *generator) serialize(v Value) string {
	switch value := v.(type) {
	case *StringValue:
		return strconv.Quote(value.Value)
	case *NumberValue:
		return value.Raw
	case *BoolValue:
		if value.Value {
			return "true"
		}
		return "false"
	case *IdentValue:
		if value.Name == "null" {
			return "null"
		}
		// Identifiers are runtime name references, resolved through the
		// registries.
		return strconv.Quote(value.Name)
	case *ArrayValue:
		parts := make([]string, len(value.Elements))
		for i, element := range value.Elements {
			parts[i] = g.serialize(element)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ObjectValue:
		if len(value.Fields) == 0 {
			return "{}"
		}
		parts := make([]string, len(value.Fields))
		for i, field := range value.Fields {
			parts[i] = fmt.Sprintf("%s: %s", field.Name, g.serialize(field.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *CallValue:
		parts := make([]string, len(value.Args))
		for i, arg := range value.Args {
			parts[i] = g.serialize(arg)
		}
		return fmt.Sprintf("%s(%s)", value.Name, strings.Join(parts, ", "))
	default:
		return "null"
	}
}
