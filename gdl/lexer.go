package gdl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// eofRune marks end of input. It sits outside the valid rune range so a
// literal NUL byte in the source stays an ordinary character.
const eofRune = -1

// lexer performs a single left-to-right scan over one source text. A lexer
// is good for one Tokenize call; build a new one per source.
type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

// Tokenize scans the whole input and returns the token sequence, terminated
// by exactly one EOF token. The lexer never fails: unrecognized characters
// degrade to one-character punctuation tokens and unterminated strings are
// closed at end of input.
func (l *lexer) Tokenize() []Token {
	tokens := make([]Token, 0, 64)
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if tok.Kind == tokenEOF {
			return tokens
		}
	}
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = eofRune
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return eofRune
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	for i := 0; ; i++ {
		if idx >= len(l.input) {
			return eofRune
		}
		r, w := utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.currentOffset()}
}

func (l *lexer) makeToken(kind TokenKind, literal string) Token {
	return Token{Kind: kind, Literal: literal, Pos: l.pos()}
}

func (l *lexer) nextToken() Token {
	l.skipWhitespaceAndComments()

	switch {
	case l.ch == eofRune:
		return Token{Kind: tokenEOF, Pos: l.pos()}
	case l.ch == '"' || l.ch == '\'':
		return l.readString()
	case unicode.IsDigit(l.ch):
		return l.readNumber()
	case l.ch == '-' && unicode.IsDigit(l.peekRune()):
		return l.readNumber()
	case isIdentifierStart(l.ch):
		return l.readIdentifier()
	case isPunct(l.ch):
		tok := l.makeToken(tokenPunct, string(l.ch))
		l.readRune()
		return tok
	case isOperatorRune(l.ch):
		return l.readOperator()
	default:
		// Garbage input never fails the lexer; the parser copes with
		// the stray punctuation token.
		tok := l.makeToken(tokenPunct, string(l.ch))
		l.readRune()
		return tok
	}
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readRune()
		case l.ch == '/' && l.peekRune() == '/':
			for l.ch != eofRune && l.ch != '\n' {
				l.readRune()
			}
		case l.ch == '/' && l.peekRune() == '*':
			l.readRune()
			l.readRune()
			for l.ch != eofRune {
				if l.ch == '*' && l.peekRune() == '/' {
					l.readRune()
					l.readRune()
					break
				}
				l.readRune()
			}
		default:
			return
		}
	}
}

func (l *lexer) readIdentifier() Token {
	tok := l.makeToken(tokenIdentifier, "")
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	tok.Literal = l.input[start:l.offset]
	tok.Kind = lookupIdent(tok.Literal)
	l.readRune()
	return tok
}

func (l *lexer) readNumber() Token {
	tok := l.makeToken(tokenNumber, "")
	var sb strings.Builder

	if l.ch == '-' {
		sb.WriteRune('-')
		l.readRune()
	}
	sb.WriteRune(l.ch)

	for unicode.IsDigit(l.peekRune()) {
		l.readRune()
		sb.WriteRune(l.ch)
	}

	if l.peekRune() == '.' && unicode.IsDigit(l.peekRuneN(1)) {
		l.readRune()
		sb.WriteRune('.')
		for unicode.IsDigit(l.peekRune()) {
			l.readRune()
			sb.WriteRune(l.ch)
		}
	}

	if r := l.peekRune(); r == 'e' || r == 'E' {
		next := l.peekRuneN(1)
		exponentDigit := unicode.IsDigit(next) ||
			((next == '+' || next == '-') && unicode.IsDigit(l.peekRuneN(2)))
		if exponentDigit {
			l.readRune()
			sb.WriteRune(l.ch)
			if next == '+' || next == '-' {
				l.readRune()
				sb.WriteRune(l.ch)
			}
			for unicode.IsDigit(l.peekRune()) {
				l.readRune()
				sb.WriteRune(l.ch)
			}
		}
	}

	tok.Literal = sb.String()
	l.readRune()
	return tok
}

func (l *lexer) readString() Token {
	tok := l.makeToken(tokenString, "")
	quote := l.ch
	var sb strings.Builder

	for {
		l.readRune()
		switch l.ch {
		case eofRune:
			// Unterminated strings are silently closed; the parser
			// sees a best-effort string token.
			tok.Literal = sb.String()
			return tok
		case quote:
			l.readRune()
			tok.Literal = sb.String()
			return tok
		case '\\':
			next := l.peekRune()
			if next == eofRune {
				// Dangling backslash at end of input is dropped
				// along with the closing quote.
				tok.Literal = sb.String()
				l.readRune()
				return tok
			}
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '"', '\'':
				sb.WriteRune(next)
			default:
				sb.WriteRune(next)
			}
			l.readRune()
		default:
			sb.WriteRune(l.ch)
		}
	}
}

var twoRuneOperators = map[string]struct{}{
	"==": {},
	"!=": {},
	"<=": {},
	">=": {},
	"+=": {},
	"-=": {},
	"*=": {},
	"/=": {},
	"&&": {},
	"||": {},
}

func (l *lexer) readOperator() Token {
	combined := string(l.ch) + string(l.peekRune())
	if _, ok := twoRuneOperators[combined]; ok {
		tok := l.makeToken(tokenOperator, combined)
		l.readRune()
		l.readRune()
		return tok
	}
	tok := l.makeToken(tokenOperator, string(l.ch))
	l.readRune()
	return tok
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isPunct(r rune) bool {
	switch r {
	case '{', '}', '(', ')', '[', ']', ',', ':', ';':
		return true
	}
	return false
}

func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '=', '!', '<', '>', '&', '|':
		return true
	}
	return false
}
