package gdl

import (
	"fmt"
	"strconv"
	"strings"
)

// syntaxError is the error type produced by parsing helpers. It propagates
// explicitly up to the top-level declaration loop, where it is recorded and
// the parser synchronizes to the next safe restart point.
type syntaxError struct {
	tok Token
	msg string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.tok.Pos.Line, e.tok.Pos.Column, e.msg)
}

type parser struct {
	tokens []Token
	pos    int

	errors []Diagnostic
}

// newParser wraps a token sequence, which must be terminated by an EOF token
// as produced by the lexer.
func newParser(tokens []Token) *parser {
	if len(tokens) == 0 {
		tokens = []Token{{Kind: tokenEOF}}
	}
	return &parser{tokens: tokens}
}

// parseProgram consumes the whole token sequence and returns the best-effort
// Program together with all recorded parse diagnostics. It never panics: a
// failed declaration is recorded and skipped via synchronize, so every
// independent error in the file surfaces in a single pass.
func (p *parser) parseProgram() (*Program, []Diagnostic) {
	program := &Program{}

	for p.peek(0).Kind != tokenEOF {
		decl, err := p.parseDecl()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		program.Decls = append(program.Decls, decl)
	}

	return program, p.errors
}

func (p *parser) peek(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) advance() Token {
	tok := p.peek(0)
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) consume(kind TokenKind, literal string) (Token, error) {
	tok := p.peek(0)
	if tok.Kind != kind || (literal != "" && tok.Literal != literal) {
		expected := kindLabel(kind)
		if literal != "" {
			expected = "'" + literal + "'"
		}
		return tok, &syntaxError{tok: tok, msg: fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok))}
	}
	return p.advance(), nil
}

func (p *parser) record(err error) {
	if se, ok := err.(*syntaxError); ok {
		p.errors = append(p.errors, Diagnostic{
			Severity: SeverityError,
			Message:  se.msg,
			Span:     tokenSpan(se.tok),
		})
		return
	}
	p.errors = append(p.errors, errorAt(tokenSpan(p.peek(0)), "%s", err.Error()))
}

// synchronize discards tokens until a statement boundary or the next
// declaration keyword, always consuming at least one token so the parser
// makes forward progress.
func (p *parser) synchronize() {
	p.advance()
	for {
		tok := p.peek(0)
		switch {
		case tok.Kind == tokenEOF:
			return
		case tok.Kind == tokenPunct && (tok.Literal == ";" || tok.Literal == "}"):
			p.advance()
			return
		case tok.Kind == tokenKeyword && isDeclKeyword(tok.Literal):
			return
		}
		p.advance()
	}
}

func isDeclKeyword(literal string) bool {
	switch literal {
	case "game", "entity", "behavior", "scene":
		return true
	}
	return false
}

func (p *parser) parseDecl() (Decl, error) {
	tok := p.peek(0)
	if tok.Kind != tokenKeyword || !isDeclKeyword(tok.Literal) {
		return nil, &syntaxError{tok: tok, msg: fmt.Sprintf("expected declaration (game, entity, behavior, or scene), got %s", tokenLabel(tok))}
	}

	switch tok.Literal {
	case "game":
		return p.parseGameDecl()
	case "entity":
		return p.parseEntityDecl()
	case "behavior":
		return p.parseBehaviorDecl()
	default:
		return p.parseSceneDecl()
	}
}

func (p *parser) parseGameDecl() (Decl, error) {
	start := p.advance().Pos
	if _, err := p.consume(tokenPunct, "{"); err != nil {
		return nil, err
	}
	props, err := p.parsePropertyList()
	if err != nil {
		return nil, err
	}
	closing, err := p.consume(tokenPunct, "}")
	if err != nil {
		return nil, err
	}
	return &GameDecl{Props: props, span: Span{Start: start, End: tokenSpan(closing).End}}, nil
}

func (p *parser) parseEntityDecl() (Decl, error) {
	start := p.advance().Pos
	name, err := p.consume(tokenIdentifier, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenPunct, "{"); err != nil {
		return nil, err
	}
	props, err := p.parsePropertyList()
	if err != nil {
		return nil, err
	}
	closing, err := p.consume(tokenPunct, "}")
	if err != nil {
		return nil, err
	}
	return &EntityDecl{Name: name.Literal, Props: props, span: Span{Start: start, End: tokenSpan(closing).End}}, nil
}

func (p *parser) parseBehaviorDecl() (Decl, error) {
	start := p.advance().Pos
	name, err := p.consume(tokenIdentifier, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenPunct, "{"); err != nil {
		return nil, err
	}
	props, err := p.parsePropertyList()
	if err != nil {
		return nil, err
	}
	closing, err := p.consume(tokenPunct, "}")
	if err != nil {
		return nil, err
	}
	return &BehaviorDecl{Name: name.Literal, Props: props, span: Span{Start: start, End: tokenSpan(closing).End}}, nil
}

func (p *parser) parseSceneDecl() (Decl, error) {
	start := p.advance().Pos
	name, err := p.consume(tokenIdentifier, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenPunct, "{"); err != nil {
		return nil, err
	}

	decl := &SceneDecl{Name: name.Literal}
	for {
		tok := p.peek(0)
		// spawn/when/on always win over the property-list lookahead;
		// only declaration bodies contain bare property lists.
		if tok.Kind == tokenKeyword && tok.Literal == "spawn" {
			spawn, err := p.parseSpawnStmt()
			if err != nil {
				return nil, err
			}
			decl.Spawns = append(decl.Spawns, spawn)
			p.skipSeparators()
			continue
		}
		if tok.Kind == tokenKeyword && (tok.Literal == "when" || tok.Literal == "on") {
			event, err := p.parseEventStmt()
			if err != nil {
				return nil, err
			}
			decl.Events = append(decl.Events, event)
			p.skipSeparators()
			continue
		}
		if p.atProperty() {
			prop, err := p.parseProperty()
			if err != nil {
				return nil, err
			}
			decl.Props = append(decl.Props, prop)
			p.skipSeparators()
			continue
		}
		break
	}

	closing, err := p.consume(tokenPunct, "}")
	if err != nil {
		return nil, err
	}
	decl.span = Span{Start: start, End: tokenSpan(closing).End}
	return decl, nil
}

// atProperty reports whether the next two tokens look like `name :`.
// Property names may be identifiers or non-structural keywords (sprite,
// physics, body, and friends).
func (p *parser) atProperty() bool {
	name := p.peek(0)
	if name.Kind != tokenIdentifier && name.Kind != tokenKeyword {
		return false
	}
	colon := p.peek(1)
	return colon.Kind == tokenPunct && colon.Literal == ":"
}

func (p *parser) parsePropertyList() ([]*Property, error) {
	props := []*Property{}
	for p.atProperty() {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		p.skipSeparators()
	}
	return props, nil
}

func (p *parser) parseProperty() (*Property, error) {
	name := p.advance()
	if _, err := p.consume(tokenPunct, ":"); err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &Property{
		Name:  name.Literal,
		Value: value,
		span:  Span{Start: name.Pos, End: value.Span().End},
	}, nil
}

func (p *parser) skipSeparators() {
	for {
		tok := p.peek(0)
		if tok.Kind == tokenPunct && (tok.Literal == ";" || tok.Literal == ",") {
			p.advance()
			continue
		}
		return
	}
}

func (p *parser) parseValue() (Value, error) {
	tok := p.peek(0)

	switch tok.Kind {
	case tokenString:
		p.advance()
		return &StringValue{Value: tok.Literal, span: tokenSpan(tok)}, nil
	case tokenNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &syntaxError{tok: tok, msg: fmt.Sprintf("invalid number literal %q", tok.Literal)}
		}
		return &NumberValue{Raw: tok.Literal, Value: value, span: tokenSpan(tok)}, nil
	case tokenBoolean:
		p.advance()
		return &BoolValue{Value: tok.Literal == "true", span: tokenSpan(tok)}, nil
	case tokenIdentifier, tokenKeyword:
		if next := p.peek(1); next.Kind == tokenPunct && next.Literal == "(" {
			return p.parseCallValue()
		}
		p.advance()
		return &IdentValue{Name: tok.Literal, span: tokenSpan(tok)}, nil
	case tokenPunct:
		switch tok.Literal {
		case "[":
			return p.parseArrayValue()
		case "{":
			return p.parseObjectValue()
		case "(":
			return p.parseTupleValue()
		}
	}

	return nil, &syntaxError{tok: tok, msg: fmt.Sprintf("expected value, got %s", tokenLabel(tok))}
}

func (p *parser) parseArrayValue() (Value, error) {
	open := p.advance()
	elements := []Value{}

	if closing := p.peek(0); closing.Kind == tokenPunct && closing.Literal == "]" {
		p.advance()
		return &ArrayValue{Elements: elements, span: Span{Start: open.Pos, End: tokenSpan(closing).End}}, nil
	}

	for {
		element, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
		if sep := p.peek(0); sep.Kind == tokenPunct && sep.Literal == "," {
			p.advance()
			continue
		}
		break
	}

	closing, err := p.consume(tokenPunct, "]")
	if err != nil {
		return nil, err
	}
	return &ArrayValue{Elements: elements, span: Span{Start: open.Pos, End: tokenSpan(closing).End}}, nil
}

func (p *parser) parseObjectValue() (Value, error) {
	open := p.advance()
	fields := []ObjectField{}

	for p.atProperty() {
		name := p.advance()
		p.advance() // the colon, guaranteed by atProperty
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ObjectField{Name: name.Literal, Value: value})
		if sep := p.peek(0); sep.Kind == tokenPunct && (sep.Literal == "," || sep.Literal == ";") {
			p.advance()
		}
	}

	closing, err := p.consume(tokenPunct, "}")
	if err != nil {
		return nil, err
	}
	return &ObjectValue{Fields: fields, span: Span{Start: open.Pos, End: tokenSpan(closing).End}}, nil
}

// parseTupleValue parses `( v, v )` as an array literal.
func (p *parser) parseTupleValue() (Value, error) {
	open := p.advance()
	elements := []Value{}

	if closing := p.peek(0); closing.Kind == tokenPunct && closing.Literal == ")" {
		p.advance()
		return &ArrayValue{Elements: elements, span: Span{Start: open.Pos, End: tokenSpan(closing).End}}, nil
	}

	for {
		element, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
		if sep := p.peek(0); sep.Kind == tokenPunct && sep.Literal == "," {
			p.advance()
			continue
		}
		break
	}

	closing, err := p.consume(tokenPunct, ")")
	if err != nil {
		return nil, err
	}
	return &ArrayValue{Elements: elements, span: Span{Start: open.Pos, End: tokenSpan(closing).End}}, nil
}

func (p *parser) parseCallValue() (Value, error) {
	name := p.advance()
	p.advance() // opening paren, guaranteed by caller lookahead
	args := []Value{}

	if closing := p.peek(0); closing.Kind == tokenPunct && closing.Literal == ")" {
		p.advance()
		return &CallValue{Name: name.Literal, Args: args, span: Span{Start: name.Pos, End: tokenSpan(closing).End}}, nil
	}

	for {
		arg, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if sep := p.peek(0); sep.Kind == tokenPunct && sep.Literal == "," {
			p.advance()
			continue
		}
		break
	}

	closing, err := p.consume(tokenPunct, ")")
	if err != nil {
		return nil, err
	}
	return &CallValue{Name: name.Literal, Args: args, span: Span{Start: name.Pos, End: tokenSpan(closing).End}}, nil
}

func (p *parser) parseSpawnStmt() (*SpawnStmt, error) {
	start := p.advance().Pos // the spawn keyword
	typ, err := p.consume(tokenIdentifier, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenKeyword, "at"); err != nil {
		return nil, err
	}
	pos, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	stmt := &SpawnStmt{Type: typ.Literal, Pos: pos, span: Span{Start: start, End: pos.Span().End}}
	if tok := p.peek(0); tok.Kind == tokenKeyword && tok.Literal == "as" {
		p.advance()
		alias, err := p.consume(tokenIdentifier, "")
		if err != nil {
			return nil, err
		}
		stmt.Alias = alias.Literal
		stmt.span.End = tokenSpan(alias).End
	}
	return stmt, nil
}

// parseEventStmt reads `when|on <trigger tokens> : <handler>`. The trigger
// is an undelimited run of tokens up to the colon, joined into a single
// string; handler bodies are brace-matched and discarded.
func (p *parser) parseEventStmt() (*EventStmt, error) {
	start := p.advance() // when or on

	var triggerParts []string
	for {
		tok := p.peek(0)
		if tok.Kind == tokenEOF {
			return nil, &syntaxError{tok: tok, msg: "unterminated event trigger, expected ':'"}
		}
		if tok.Kind == tokenPunct && (tok.Literal == ":" || tok.Literal == "}" || tok.Literal == "{") {
			break
		}
		triggerParts = append(triggerParts, tok.Literal)
		p.advance()
	}
	if len(triggerParts) == 0 {
		return nil, &syntaxError{tok: p.peek(0), msg: "expected event trigger after '" + start.Literal + "'"}
	}

	end, err := p.consume(tokenPunct, ":")
	if err != nil {
		return nil, err
	}

	if tok := p.peek(0); tok.Kind == tokenPunct && tok.Literal == "{" {
		if err := p.discardBracedBlock(); err != nil {
			return nil, err
		}
	} else {
		p.discardUntilBoundary()
	}

	return &EventStmt{
		Trigger: strings.Join(triggerParts, " "),
		span:    Span{Start: start.Pos, End: tokenSpan(end).End},
	}, nil
}

// discardBracedBlock consumes a balanced `{ ... }` without building any AST.
// Handler bodies are stubs: tokens consumed, nothing emitted.
func (p *parser) discardBracedBlock() error {
	open := p.advance()
	depth := 1
	for depth > 0 {
		tok := p.advance()
		switch {
		case tok.Kind == tokenEOF:
			return &syntaxError{tok: open, msg: "unterminated event handler block"}
		case tok.Kind == tokenPunct && tok.Literal == "{":
			depth++
		case tok.Kind == tokenPunct && tok.Literal == "}":
			depth--
		}
	}
	return nil
}

func (p *parser) discardUntilBoundary() {
	for {
		tok := p.peek(0)
		if tok.Kind == tokenEOF {
			return
		}
		if tok.Kind == tokenPunct && tok.Literal == "}" {
			return
		}
		if tok.Kind == tokenPunct && tok.Literal == ";" {
			p.advance()
			return
		}
		p.advance()
	}
}

func tokenSpan(tok Token) Span {
	width := len([]rune(tok.Literal))
	end := tok.Pos
	end.Column += width
	end.Offset += len(tok.Literal)
	if tok.Kind == tokenString {
		// Account for the surrounding quotes.
		end.Column += 2
		end.Offset += 2
	}
	return Span{Start: tok.Pos, End: end}
}
