package gdl

// symbolTable maps declaration names to their declaration nodes. Keys are
// unique: a second declaration with a name already present is rejected and
// the earlier entry stands. Tables are rebuilt fresh on every analyze call.
type symbolTable struct {
	kind    string
	symbols map[string]Decl
	order   []string
}

func newSymbolTable(kind string) *symbolTable {
	return &symbolTable{kind: kind, symbols: make(map[string]Decl)}
}

// declare adds a name to the table. It reports false when the name is
// already present, leaving the first declaration in place.
func (t *symbolTable) declare(name string, decl Decl) bool {
	if _, exists := t.symbols[name]; exists {
		return false
	}
	t.symbols[name] = decl
	t.order = append(t.order, name)
	return true
}

func (t *symbolTable) lookup(name string) (Decl, bool) {
	decl, ok := t.symbols[name]
	return decl, ok
}

func (t *symbolTable) has(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

// names returns declared names in declaration order. The result is always
// a fresh non-nil slice.
func (t *symbolTable) names() []string {
	out := make([]string, 0, len(t.order))
	return append(out, t.order...)
}
