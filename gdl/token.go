package gdl

// TokenKind identifies the lexical category of a token.
type TokenKind string

const (
	tokenIdentifier TokenKind = "IDENT"
	tokenString     TokenKind = "STRING"
	tokenNumber     TokenKind = "NUMBER"
	tokenBoolean    TokenKind = "BOOL"
	tokenKeyword    TokenKind = "KEYWORD"
	tokenOperator   TokenKind = "OP"
	tokenPunct      TokenKind = "PUNCT"
	tokenEOF        TokenKind = "EOF"
)

// Token captures lexical information for the parser. Tokens are immutable
// once produced by the lexer.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}

// Position identifies a location in the source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span covers a contiguous region of source text.
type Span struct {
	Start Position
	End   Position
}

func spanAt(pos Position) Span {
	return Span{Start: pos, End: pos}
}

var keywords = map[string]struct{}{
	"game":       {},
	"entity":     {},
	"behavior":   {},
	"scene":      {},
	"sprite":     {},
	"physics":    {},
	"body":       {},
	"animations": {},
	"properties": {},
	"methods":    {},
	"update":     {},
	"on":         {},
	"when":       {},
	"spawn":      {},
	"at":         {},
	"as":         {},
	"if":         {},
	"else":       {},
	"for":        {},
	"while":      {},
	"null":       {},
	"grid":       {},
	"random":     {},
	"repeat":     {},
	"within":     {},
	"every":      {},
	"after":      {},
	"during":     {},
}

func lookupIdent(ident string) TokenKind {
	switch ident {
	case "true", "false":
		return tokenBoolean
	}
	if _, ok := keywords[ident]; ok {
		return tokenKeyword
	}
	return tokenIdentifier
}

func kindLabel(kind TokenKind) string {
	switch kind {
	case tokenIdentifier:
		return "identifier"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenBoolean:
		return "boolean"
	case tokenKeyword:
		return "keyword"
	case tokenEOF:
		return "end of input"
	default:
		return string(kind)
	}
}

func tokenLabel(tok Token) string {
	switch tok.Kind {
	case tokenEOF:
		return "end of input"
	case tokenIdentifier:
		return "identifier '" + tok.Literal + "'"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenBoolean:
		return "'" + tok.Literal + "'"
	case tokenKeyword:
		return "'" + tok.Literal + "'"
	default:
		return "'" + tok.Literal + "'"
	}
}
