// lexer_test.go
package dumblang

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	lx := NewLexer(src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("scan error for %q: %v", src, err)
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func wantTokens(t *testing.T, src string, want ...Token) {
	t.Helper()
	got := scanAll(t, src)
	got = got[:len(got)-1] // drop trailing EOF
	if len(got) != len(want) {
		t.Fatalf("token count for %q: want %d, got %d (%v)", src, len(want), len(got), got)
	}
	for i := range want {
		if got[i].Type != want[i].Type || got[i].Lexeme != want[i].Lexeme {
			t.Fatalf("token %d of %q: want %v %q, got %v %q",
				i, src, want[i].Type, want[i].Lexeme, got[i].Type, got[i].Lexeme)
		}
	}
}

func scanErr(t *testing.T, src string) error {
	t.Helper()
	lx := NewLexer(src)
	for {
		tok, err := lx.Next()
		if err != nil {
			return err
		}
		if tok.Type == EOF {
			t.Fatalf("expected scan error for %q, got clean EOF", src)
		}
	}
}

// --- tests -----------------------------------------------------------------

func Test_Lexer_Single_Char_Tokens(t *testing.T) {
	wantTokens(t, "( ) { } [ ] ; ,",
		Token{Type: LPAREN, Lexeme: "("},
		Token{Type: RPAREN, Lexeme: ")"},
		Token{Type: LBLOCK, Lexeme: "{"},
		Token{Type: RBLOCK, Lexeme: "}"},
		Token{Type: LBRACK, Lexeme: "["},
		Token{Type: RBRACK, Lexeme: "]"},
		Token{Type: SEMI, Lexeme: ";"},
		Token{Type: COMMA, Lexeme: ","},
	)
}

func Test_Lexer_Operators(t *testing.T) {
	wantTokens(t, "+ - * / ^ < >",
		Token{Type: OPERATOR, Lexeme: "+"},
		Token{Type: OPERATOR, Lexeme: "-"},
		Token{Type: OPERATOR, Lexeme: "*"},
		Token{Type: OPERATOR, Lexeme: "/"},
		Token{Type: OPERATOR, Lexeme: "^"},
		Token{Type: OPERATOR, Lexeme: "<"},
		Token{Type: OPERATOR, Lexeme: ">"},
	)
}

func Test_Lexer_Assign_Vs_Equality(t *testing.T) {
	wantTokens(t, "x = y == z",
		Token{Type: IDENT, Lexeme: "x"},
		Token{Type: ASSIGN, Lexeme: "="},
		Token{Type: IDENT, Lexeme: "y"},
		Token{Type: OPERATOR, Lexeme: "=="},
		Token{Type: IDENT, Lexeme: "z"},
	)
	// three '=' in a row: '==' then '='
	wantTokens(t, "===",
		Token{Type: OPERATOR, Lexeme: "=="},
		Token{Type: ASSIGN, Lexeme: "="},
	)
}

func Test_Lexer_Numbers(t *testing.T) {
	wantTokens(t, "0 42 3.14",
		Token{Type: NUMBER, Lexeme: "0"},
		Token{Type: NUMBER, Lexeme: "42"},
		Token{Type: NUMBER, Lexeme: "3.14"},
	)
	// second '.' ends the number
	wantTokens(t, "1.2.3",
		Token{Type: NUMBER, Lexeme: "1.2"},
	)
}

func Test_Lexer_Identifiers_Are_Letter_Runs(t *testing.T) {
	// digits terminate an identifier rather than joining it
	wantTokens(t, "abc1",
		Token{Type: IDENT, Lexeme: "abc"},
		Token{Type: NUMBER, Lexeme: "1"},
	)
	wantTokens(t, "while return xyz",
		Token{Type: IDENT, Lexeme: "while"},
		Token{Type: IDENT, Lexeme: "return"},
		Token{Type: IDENT, Lexeme: "xyz"},
	)
}

func Test_Lexer_Strings(t *testing.T) {
	wantTokens(t, `"hello" ""`,
		Token{Type: STRING, Lexeme: "hello"},
		Token{Type: STRING, Lexeme: ""},
	)
}

func Test_Lexer_String_Unterminated(t *testing.T) {
	err := scanErr(t, `"abc`)
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if !strings.Contains(pe.Msg, "unterminated") {
		t.Fatalf("unexpected message: %q", pe.Msg)
	}
}

func Test_Lexer_String_Newline(t *testing.T) {
	err := scanErr(t, "\"ab\ncd\"")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if !strings.Contains(pe.Msg, "newline") {
		t.Fatalf("unexpected message: %q", pe.Msg)
	}
}

func Test_Lexer_Comments_And_Lines(t *testing.T) {
	src := "a # trailing comment\n# full line\nb"
	toks := scanAll(t, src)
	if len(toks) != 3 { // a, b, EOF
		t.Fatalf("want 3 tokens, got %d: %v", len(toks), toks)
	}
	if toks[0].Lexeme != "a" || toks[0].Line != 1 {
		t.Fatalf("first token: %+v", toks[0])
	}
	if toks[1].Lexeme != "b" || toks[1].Line != 3 {
		t.Fatalf("second token: %+v", toks[1])
	}
}

func Test_Lexer_Positions(t *testing.T) {
	toks := scanAll(t, "ab cd")
	if toks[0].Line != 1 || toks[0].Col != 1 {
		t.Fatalf("first token position: %+v", toks[0])
	}
	if toks[1].Line != 1 || toks[1].Col != 4 {
		t.Fatalf("second token position: %+v", toks[1])
	}
}

func Test_Lexer_Unexpected_Character(t *testing.T) {
	err := scanErr(t, "a @ b")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if pe.Line != 1 || pe.Col != 3 {
		t.Fatalf("error position: %d:%d", pe.Line, pe.Col)
	}
}

func Test_Lexer_EOF_Repeats(t *testing.T) {
	lx := NewLexer("x")
	if tok, _ := lx.Next(); tok.Type != IDENT {
		t.Fatalf("want identifier, got %v", tok)
	}
	for i := 0; i < 3; i++ {
		tok, err := lx.Next()
		if err != nil || tok.Type != EOF {
			t.Fatalf("call %d after end: tok=%v err=%v", i, tok, err)
		}
	}
}
