// lexer.go — hand-written scanner for dumblang source text.
//
// The scanner is a lazy, forward-only token source: callers pull one token at
// a time via Next and receive exactly one EOF token at the end of input.
// Whitespace separates tokens and is discarded; '#' starts a line comment.
// Identifiers are maximal letter-only runs (keywords such as "while", "if",
// "else" and "return" are ordinary identifiers here and are disambiguated by
// the parser). Number literals are digit runs with at most one decimal point
// and always scan as floating point. String literals are double-quote
// delimited with no escape sequences and may not span lines. A '=' becomes
// '==' when immediately followed by another '='; a lone '=' is the assignment
// token.
//
// The scanner does not have its own error class: malformed input surfaces as
// a *ParseError (see errors.go), so lexical failures degenerate into parse
// failures at the host boundary.
package dumblang

import "fmt"

// TokenType enumerates the token kinds produced by the Lexer.
type TokenType int

const (
	EOF      TokenType = iota // end of input
	OPERATOR                  // + - * / ^ < > ==
	IDENT                     // letter-only identifier
	STRING                    // double-quoted string literal (decoded)
	NUMBER                    // digit run with optional single '.'
	ASSIGN                    // =
	SEMI                      // ;
	LBLOCK                    // {
	RBLOCK                    // }
	LPAREN                    // (
	RPAREN                    // )
	LBRACK                    // [
	RBRACK                    // ]
	COMMA                     // ,
)

// String returns a short human-readable name, used in diagnostics.
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case OPERATOR:
		return "operator"
	case IDENT:
		return "identifier"
	case STRING:
		return "string literal"
	case NUMBER:
		return "number literal"
	case ASSIGN:
		return "'='"
	case SEMI:
		return "';'"
	case LBLOCK:
		return "'{'"
	case RBLOCK:
		return "'}'"
	case LPAREN:
		return "'('"
	case RPAREN:
		return "')'"
	case LBRACK:
		return "'['"
	case RBRACK:
		return "']'"
	case COMMA:
		return "','"
	default:
		return "unknown token"
	}
}

// Token is a lexical token with its raw text and 1-based source position.
// For STRING tokens Lexeme holds the decoded content without the quotes.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

// Lexer scans a dumblang source string. Tokens are produced lazily and
// consumed once; after the input is exhausted Next keeps returning EOF.
type Lexer struct {
	src  string
	cur  int
	line int // 1-based
	col  int // 1-based
}

// NewLexer creates a scanner for the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) atEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.atEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.atEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool  { return b >= '0' && b <= '9' }

// skipBlanks discards whitespace and '#' line comments.
func (l *Lexer) skipBlanks() {
	for {
		ch, ok := l.peek()
		if !ok {
			return
		}
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for {
				c, ok := l.advance()
				if !ok || c == '\n' {
					break
				}
			}
		default:
			return
		}
	}
}

// Next returns the next token, or a *ParseError for malformed input.
func (l *Lexer) Next() (Token, error) {
	l.skipBlanks()

	line, col := l.line, l.col
	ch, ok := l.advance()
	if !ok {
		return Token{Type: EOF, Line: line, Col: col}, nil
	}

	tok := func(tt TokenType, lexeme string) Token {
		return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
	}

	switch {
	case isLetter(ch):
		start := l.cur - 1
		for {
			b, ok := l.peek()
			if !ok || !isLetter(b) {
				break
			}
			l.advance()
		}
		return tok(IDENT, l.src[start:l.cur]), nil

	case isDigit(ch):
		start := l.cur - 1
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
		if b, ok := l.peek(); ok && b == '.' {
			l.advance()
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
		return tok(NUMBER, l.src[start:l.cur]), nil

	case ch == '"':
		start := l.cur
		for {
			c, ok := l.advance()
			if !ok {
				return Token{}, &ParseError{Line: line, Col: col, Msg: "unterminated string literal"}
			}
			if c == '\n' {
				return Token{}, &ParseError{Line: line, Col: col, Msg: "newline in string literal"}
			}
			if c == '"' {
				return tok(STRING, l.src[start:l.cur-1]), nil
			}
		}

	case ch == '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return tok(OPERATOR, "=="), nil
		}
		return tok(ASSIGN, "="), nil

	case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '^' || ch == '<' || ch == '>':
		return tok(OPERATOR, string(ch)), nil

	case ch == ';':
		return tok(SEMI, ";"), nil
	case ch == '{':
		return tok(LBLOCK, "{"), nil
	case ch == '}':
		return tok(RBLOCK, "}"), nil
	case ch == '(':
		return tok(LPAREN, "("), nil
	case ch == ')':
		return tok(RPAREN, ")"), nil
	case ch == '[':
		return tok(LBRACK, "["), nil
	case ch == ']':
		return tok(RBRACK, "]"), nil
	case ch == ',':
		return tok(COMMA, ","), nil

	default:
		return Token{}, &ParseError{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", ch)}
	}
}
