package gdl

import "testing"

func tokenize(t *testing.T, source string) []Token {
	t.Helper()
	return newLexer(source).Tokenize()
}

func TestTokenizeDeclarationHeader(t *testing.T) {
	tokens := tokenize(t, `entity Player {`)

	want := []Token{
		{Kind: tokenKeyword, Literal: "entity"},
		{Kind: tokenIdentifier, Literal: "Player"},
		{Kind: tokenPunct, Literal: "{"},
		{Kind: tokenEOF},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %#v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.Kind || tokens[i].Literal != w.Literal {
			t.Fatalf("token %d: expected %s %q, got %s %q", i, w.Kind, w.Literal, tokens[i].Kind, tokens[i].Literal)
		}
	}
}

func TestTokenizeKeywordsAndBooleans(t *testing.T) {
	tokens := tokenize(t, `spawn when on true false null grid Player`)

	wantKinds := []TokenKind{
		tokenKeyword, tokenKeyword, tokenKeyword,
		tokenBoolean, tokenBoolean,
		tokenKeyword, tokenKeyword,
		tokenIdentifier,
		tokenEOF,
	}
	for i, kind := range wantKinds {
		if tokens[i].Kind != kind {
			t.Fatalf("token %d (%q): expected kind %s, got %s", i, tokens[i].Literal, kind, tokens[i].Kind)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.14", "3.14"},
		{"-7", "-7"},
		{"-3.5", "-3.5"},
		{"1e6", "1e6"},
		{"2.5E-3", "2.5E-3"},
		{"-1.5e+2", "-1.5e+2"},
	}
	for _, tc := range cases {
		tokens := tokenize(t, tc.source)
		if tokens[0].Kind != tokenNumber {
			t.Fatalf("%q: expected number token, got %s %q", tc.source, tokens[0].Kind, tokens[0].Literal)
		}
		if tokens[0].Literal != tc.want {
			t.Fatalf("%q: expected literal %q, got %q", tc.source, tc.want, tokens[0].Literal)
		}
		if tokens[1].Kind != tokenEOF {
			t.Fatalf("%q: expected single token before EOF, got %#v", tc.source, tokens)
		}
	}
}

func TestTokenizeMinusWithoutDigitIsOperator(t *testing.T) {
	tokens := tokenize(t, `a - b -= c`)
	if tokens[1].Kind != tokenOperator || tokens[1].Literal != "-" {
		t.Fatalf("expected '-' operator, got %s %q", tokens[1].Kind, tokens[1].Literal)
	}
	if tokens[3].Kind != tokenOperator || tokens[3].Literal != "-=" {
		t.Fatalf("expected '-=' operator, got %s %q", tokens[3].Kind, tokens[3].Literal)
	}
}

func TestTokenizeStringsWithEscapes(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"quote\"inside"`, `quote"inside`},
		{`'it\'s'`, "it's"},
		{`"back\\slash"`, `back\slash`},
	}
	for _, tc := range cases {
		tokens := tokenize(t, tc.source)
		if tokens[0].Kind != tokenString {
			t.Fatalf("%q: expected string token, got %s", tc.source, tokens[0].Kind)
		}
		if tokens[0].Literal != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.source, tc.want, tokens[0].Literal)
		}
	}
}

func TestTokenizeUnterminatedStringSilentlyClosed(t *testing.T) {
	tokens := tokenize(t, `"never closed`)
	if len(tokens) != 2 {
		t.Fatalf("expected string + EOF, got %#v", tokens)
	}
	if tokens[0].Kind != tokenString || tokens[0].Literal != "never closed" {
		t.Fatalf("unexpected token: %s %q", tokens[0].Kind, tokens[0].Literal)
	}
}

func TestTokenizeCommentsAreConsumed(t *testing.T) {
	tokens := tokenize(t, "// line comment\ngame /* block\ncomment */ {")
	want := []string{"game", "{"}
	if len(tokens) != len(want)+1 {
		t.Fatalf("expected %d tokens, got %#v", len(want)+1, tokens)
	}
	for i, literal := range want {
		if tokens[i].Literal != literal {
			t.Fatalf("token %d: expected %q, got %q", i, literal, tokens[i].Literal)
		}
	}
}

func TestTokenizeMultiCharOperatorsGreedy(t *testing.T) {
	tokens := tokenize(t, `== != <= >= += -= *= /= && || = < >`)
	want := []string{"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "&&", "||", "=", "<", ">"}
	for i, literal := range want {
		if tokens[i].Kind != tokenOperator || tokens[i].Literal != literal {
			t.Fatalf("token %d: expected operator %q, got %s %q", i, literal, tokens[i].Kind, tokens[i].Literal)
		}
	}
}

func TestTokenizeUnknownRuneBecomesPunct(t *testing.T) {
	tokens := tokenize(t, "@ #")
	if tokens[0].Kind != tokenPunct || tokens[0].Literal != "@" {
		t.Fatalf("expected punct '@', got %s %q", tokens[0].Kind, tokens[0].Literal)
	}
	if tokens[1].Kind != tokenPunct || tokens[1].Literal != "#" {
		t.Fatalf("expected punct '#', got %s %q", tokens[1].Kind, tokens[1].Literal)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens := tokenize(t, "game\n  size")

	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 || tokens[0].Pos.Offset != 0 {
		t.Fatalf("unexpected position for first token: %+v", tokens[0].Pos)
	}
	if tokens[1].Pos.Line != 2 || tokens[1].Pos.Column != 3 {
		t.Fatalf("unexpected position for second token: %+v", tokens[1].Pos)
	}
	if tokens[1].Pos.Offset != 7 {
		t.Fatalf("unexpected offset for second token: %+v", tokens[1].Pos)
	}
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	tokens := tokenize(t, "game { }")
	if tokens[len(tokens)-1].Kind != tokenEOF {
		t.Fatalf("expected trailing EOF token")
	}
	for _, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == tokenEOF {
			t.Fatalf("EOF token before end of sequence: %#v", tokens)
		}
	}
}

func TestTokenizeEmptySource(t *testing.T) {
	tokens := tokenize(t, "")
	if len(tokens) != 1 || tokens[0].Kind != tokenEOF {
		t.Fatalf("expected lone EOF, got %#v", tokens)
	}
}

func TestTokenizeNulByteBecomesPunct(t *testing.T) {
	tokens := tokenize(t, "a\x00b")

	want := []Token{
		{Kind: tokenIdentifier, Literal: "a"},
		{Kind: tokenPunct, Literal: "\x00"},
		{Kind: tokenIdentifier, Literal: "b"},
		{Kind: tokenEOF},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %#v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.Kind || tokens[i].Literal != w.Literal {
			t.Fatalf("token %d: expected %s %q, got %s %q", i, w.Kind, w.Literal, tokens[i].Kind, tokens[i].Literal)
		}
	}
}

func TestTokenizeNulInsideStringKept(t *testing.T) {
	tokens := tokenize(t, "\"a\x00b\"")
	if tokens[0].Kind != tokenString || tokens[0].Literal != "a\x00b" {
		t.Fatalf("expected string literal with NUL kept, got %#v", tokens[0])
	}
}

func TestTokenizeTrailingBackslashDropped(t *testing.T) {
	tokens := tokenize(t, "\"abc\\")

	if len(tokens) != 2 {
		t.Fatalf("expected string + EOF, got %#v", tokens)
	}
	if tokens[0].Kind != tokenString || tokens[0].Literal != "abc" {
		t.Fatalf("expected string %q, got %s %q", "abc", tokens[0].Kind, tokens[0].Literal)
	}
}
