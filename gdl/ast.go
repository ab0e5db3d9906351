package gdl

// Node is the common interface for every AST node. The tree is a strict
// ownership tree rooted at Program: no back-edges, no sharing.
type Node interface {
	Span() Span
}

// Decl is a top-level declaration: game, entity, behavior, or scene.
type Decl interface {
	Node
	declNode()
}

// Value is a property value literal.
type Value interface {
	Node
	valueNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Decls []Decl
}

func (p *Program) Span() Span {
	if len(p.Decls) == 0 {
		return Span{}
	}
	return Span{Start: p.Decls[0].Span().Start, End: p.Decls[len(p.Decls)-1].Span().End}
}

// GameDecl is the anonymous `game { ... }` configuration block.
type GameDecl struct {
	Props []*Property
	span  Span
}

func (d *GameDecl) declNode()  {}
func (d *GameDecl) Span() Span { return d.span }

type EntityDecl struct {
	Name  string
	Props []*Property
	span  Span
}

func (d *EntityDecl) declNode()  {}
func (d *EntityDecl) Span() Span { return d.span }

type BehaviorDecl struct {
	Name  string
	Props []*Property
	span  Span
}

func (d *BehaviorDecl) declNode()  {}
func (d *BehaviorDecl) Span() Span { return d.span }

type SceneDecl struct {
	Name   string
	Props  []*Property
	Spawns []*SpawnStmt
	Events []*EventStmt
	span   Span
}

func (d *SceneDecl) declNode()  {}
func (d *SceneDecl) Span() Span { return d.span }

// Property is one `name: value` pair inside a declaration body.
type Property struct {
	Name  string
	Value Value
	span  Span
}

func (p *Property) Span() Span { return p.span }

// SpawnStmt is `spawn Type at <pos> [as name]` inside a scene body.
type SpawnStmt struct {
	Type  string
	Pos   Value
	Alias string
	span  Span
}

func (s *SpawnStmt) Span() Span { return s.span }

// EventStmt is `when|on <trigger> : <handler>` inside a scene body. Handler
// bodies are consumed but not parsed into statements; code generation emits
// a stub registration for the trigger.
type EventStmt struct {
	Trigger string
	span    Span
}

func (s *EventStmt) Span() Span { return s.span }

type StringValue struct {
	Value string
	span  Span
}

func (v *StringValue) valueNode() {}
func (v *StringValue) Span() Span { return v.span }

type NumberValue struct {
	// Raw preserves the source spelling so generated code prints the
	// literal verbatim.
	Raw   string
	Value float64
	span  Span
}

func (v *NumberValue) valueNode() {}
func (v *NumberValue) Span() Span { return v.span }

type BoolValue struct {
	Value bool
	span  Span
}

func (v *BoolValue) valueNode() {}
func (v *BoolValue) Span() Span { return v.span }

type IdentValue struct {
	Name string
	span Span
}

func (v *IdentValue) valueNode() {}
func (v *IdentValue) Span() Span { return v.span }

type ArrayValue struct {
	Elements []Value
	span     Span
}

func (v *ArrayValue) valueNode() {}
func (v *ArrayValue) Span() Span { return v.span }

type ObjectField struct {
	Name  string
	Value Value
}

type ObjectValue struct {
	Fields []ObjectField
	span   Span
}

func (v *ObjectValue) valueNode() {}
func (v *ObjectValue) Span() Span { return v.span }

// CallValue is a call-like position expression such as `grid(2, 3)` or
// `random(0, 800)`. Full expression parsing is out of scope; calls carry
// only literal arguments.
type CallValue struct {
	Name string
	Args []Value
	span Span
}

func (v *CallValue) valueNode() {}
func (v *CallValue) Span() Span { return v.span }
