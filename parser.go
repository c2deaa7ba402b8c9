// parser.go — recursive-descent parser with precedence climbing.
//
// The parser consumes the lazy token stream from lexer.go with two tokens of
// lookahead (cur/next) and builds the AST defined in ast.go. Binary
// expressions use a binding-power table; assignment is not a separate grammar
// rule but an ordinary binary operator inside the same climbing loop, so it
// may appear wherever a binary operator is legal. '^' and '=' are
// right-associative (the climb recurses at the same level); every other
// operator is left-associative, so '=' captures the whole expression to its
// right while 'a - b - c' still groups leftward.
//
// Grammar:
//
//	program   = function*                        // exactly one must be "main"
//	function  = IDENT "(" [IDENT] ")" block
//	block     = "{" statement* "}"
//	statement = "while" "(" expr ")" block
//	          | "if" "(" expr ")" block "else" block
//	          | expr ";"
//	expr      = atom (binop expr)*               // precedence climbing
//	atom      = "[" atom ("," atom)* "]"
//	          | IDENT "(" [expr] ")"             // call
//	          | IDENT "[" expr "]"               // array access
//	          | "return" [expr]
//	          | IDENT | NUMBER | STRING
//	          | "(" ["+"|"-"] expr ")"           // unary sign only inside parens
//
// A parenthesized expression opening with '+' or '-' is rewritten at parse
// time into a multiplication by ±1.0.
//
// All failures are *ParseError values naming the unexpected token and its
// source line; errors.go renders them with a caret snippet.
package dumblang

import (
	"fmt"
	"strconv"
)

// bindingPower maps binary operators to their precedence; higher binds
// tighter. Assignment shares the lowest level with addition and subtraction.
var bindingPower = map[string]int{
	"==": 5,
	"<":  5,
	">":  5,
	"=":  1,
	"+":  1,
	"-":  1,
	"*":  10,
	"/":  10,
	"^":  30,
}

// Parse scans and parses a complete dumblang program.
func Parse(src string) (*Program, error) {
	p := &Parser{lex: NewLexer(src)}
	p.advance() // prime the lookahead
	return p.program()
}

// Parser holds the two-token lookahead over the lazy scanner. cur is the most
// recently consumed token; next is the token under consideration.
type Parser struct {
	lex  *Lexer
	cur  Token
	next Token
	err  error // first scanner error, surfaced instead of a misleading EOF
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	p.cur = p.next
	t, err := p.lex.Next()
	if err != nil {
		p.err = err
		p.next = Token{Type: EOF, Line: p.cur.Line, Col: p.cur.Col}
		return
	}
	p.next = t
}

// accept consumes and returns the next token iff it has the given type.
func (p *Parser) accept(tt TokenType) (Token, bool) {
	if p.next.Type != tt {
		return Token{}, false
	}
	p.advance()
	return p.cur, true
}

// expect is accept with a syntax error on mismatch.
func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if tok, ok := p.accept(tt); ok {
		return tok, nil
	}
	return Token{}, p.syntaxErrf("expected %s, got %s", what, describeToken(p.next))
}

// syntaxErrf builds a *ParseError at the lookahead position. A pending
// scanner error takes precedence over the synthetic EOF it left behind.
func (p *Parser) syntaxErrf(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	return &ParseError{Line: p.next.Line, Col: p.next.Col, Msg: fmt.Sprintf(format, args...)}
}

func describeToken(t Token) string {
	switch t.Type {
	case EOF:
		return "end of input"
	case STRING:
		return fmt.Sprintf("string %q", t.Lexeme)
	default:
		return fmt.Sprintf("'%s'", t.Lexeme)
	}
}

func (p *Parser) program() (*Program, error) {
	var fns []*Function
	for p.next.Type != EOF {
		fn, err := p.function()
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	if p.err != nil {
		return nil, p.err
	}

	var main *Function
	for _, fn := range fns {
		if fn.Name != "main" {
			continue
		}
		if main != nil {
			return nil, &ParseError{Line: fn.Line, Col: 1, Msg: "duplicate 'main' function"}
		}
		main = fn
	}
	if main == nil {
		return nil, &ParseError{Line: p.next.Line, Col: p.next.Col, Msg: "no 'main' function defined"}
	}
	return &Program{Functions: fns}, nil
}

func (p *Parser) function() (*Function, error) {
	name, err := p.expect(IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	fn := &Function{Name: name.Lexeme, Line: name.Line}
	if param, ok := p.accept(IDENT); ok {
		fn.Param = param.Lexeme
		fn.HasParam = true
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func (p *Parser) block() (*Block, error) {
	if _, err := p.expect(LBLOCK, "'{'"); err != nil {
		return nil, err
	}
	blk := &Block{}
	for p.next.Type != RBLOCK && p.next.Type != EOF {
		if p.next.Type == IDENT && (p.next.Lexeme == "while" || p.next.Lexeme == "if") {
			kw, _ := p.accept(IDENT)
			var (
				st  Node
				err error
			)
			if kw.Lexeme == "while" {
				st, err = p.whileStmt(kw)
			} else {
				st, err = p.ifStmt(kw)
			}
			if err != nil {
				return nil, err
			}
			blk.Statements = append(blk.Statements, st)
			continue
		}

		expr, err := p.expression(1)
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, p.syntaxErrf("expected statement, got %s", describeToken(p.next))
		}
		if _, err := p.expect(SEMI, "';'"); err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, expr)
	}
	if _, err := p.expect(RBLOCK, "'}'"); err != nil {
		return nil, err
	}
	return blk, nil
}

func (p *Parser) whileStmt(kw Token) (Node, error) {
	cond, body, err := p.condAndBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, Line: kw.Line}, nil
}

func (p *Parser) ifStmt(kw Token) (Node, error) {
	cond, then, err := p.condAndBlock()
	if err != nil {
		return nil, err
	}
	elseKw, err := p.expect(IDENT, "'else'")
	if err != nil {
		return nil, err
	}
	if elseKw.Lexeme != "else" {
		return nil, &ParseError{Line: elseKw.Line, Col: elseKw.Col,
			Msg: fmt.Sprintf("expected 'else', got '%s'", elseKw.Lexeme)}
	}
	els, err := p.block()
	if err != nil {
		return nil, err
	}
	return &IfStmt{Cond: cond, Then: then, Else: els, Line: kw.Line}, nil
}

func (p *Parser) condAndBlock() (Node, *Block, error) {
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, nil, err
	}
	cond, err := p.expression(1)
	if err != nil {
		return nil, nil, err
	}
	if cond == nil {
		return nil, nil, p.syntaxErrf("expected condition, got %s", describeToken(p.next))
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// expression climbs binary operators with binding power >= minBP. It returns
// (nil, nil) when the next token cannot start an expression because it closes
// the surrounding construct; callers decide whether that is legal.
func (p *Parser) expression(minBP int) (Node, error) {
	switch p.next.Type {
	case RPAREN, RBLOCK, RBRACK, SEMI, EOF:
		return nil, nil
	}

	left, err := p.atom()
	if err != nil {
		return nil, err
	}

	for {
		op, bp, ok := p.peekBinary()
		if !ok || bp < minBP {
			break
		}
		opTok := p.next
		p.advance()

		// Left-associative by default; '^' and '=' recurse at their own
		// level so exponents nest rightward and an assignment captures
		// everything to its right.
		nextMin := bp + 1
		if op == "^" || op == "=" {
			nextMin = bp
		}
		right, err := p.expression(nextMin)
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, p.syntaxErrf("expected expression after '%s'", op)
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) peekBinary() (op string, bp int, ok bool) {
	switch p.next.Type {
	case ASSIGN:
		return "=", bindingPower["="], true
	case OPERATOR:
		return p.next.Lexeme, bindingPower[p.next.Lexeme], true
	default:
		return "", 0, false
	}
}

func (p *Parser) atom() (Node, error) {
	switch p.next.Type {
	case LBRACK:
		open, _ := p.accept(LBRACK)
		arr := &ArrayLiteral{Line: open.Line}
		for p.next.Type != RBRACK && p.next.Type != EOF {
			elem, err := p.atom()
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, elem)
			if _, ok := p.accept(COMMA); !ok {
				break
			}
		}
		if _, err := p.expect(RBRACK, "']'"); err != nil {
			return nil, err
		}
		return arr, nil

	case IDENT:
		tok, _ := p.accept(IDENT)
		switch {
		case p.next.Type == LPAREN:
			p.accept(LPAREN)
			arg, err := p.expression(1)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RPAREN, "')'"); err != nil {
				return nil, err
			}
			return &CallExpr{Name: tok.Lexeme, Arg: arg, Line: tok.Line}, nil

		case p.next.Type == LBRACK:
			p.accept(LBRACK)
			idx, err := p.expression(1)
			if err != nil {
				return nil, err
			}
			if idx == nil {
				return nil, p.syntaxErrf("expected index expression, got %s", describeToken(p.next))
			}
			if _, err := p.expect(RBRACK, "']'"); err != nil {
				return nil, err
			}
			return &IndexExpr{
				Array: &Identifier{Name: tok.Lexeme, Line: tok.Line},
				Index: idx,
				Line:  tok.Line,
			}, nil

		case tok.Lexeme == "return":
			val, err := p.expression(1) // nil when return carries no value
			if err != nil {
				return nil, err
			}
			return &ReturnStmt{Value: val, Line: tok.Line}, nil

		default:
			return &Identifier{Name: tok.Lexeme, Line: tok.Line}, nil
		}

	case NUMBER:
		tok, _ := p.accept(NUMBER)
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &ParseError{Line: tok.Line, Col: tok.Col,
				Msg: fmt.Sprintf("invalid number literal '%s'", tok.Lexeme)}
		}
		return &NumberLiteral{Value: f, Line: tok.Line}, nil

	case STRING:
		tok, _ := p.accept(STRING)
		return &StringLiteral{Value: tok.Lexeme, Line: tok.Line}, nil

	case LPAREN:
		p.accept(LPAREN)
		if p.next.Type == OPERATOR && (p.next.Lexeme == "+" || p.next.Lexeme == "-") {
			sign, _ := p.accept(OPERATOR)
			factor := 1.0
			if sign.Lexeme == "-" {
				factor = -1.0
			}
			inner, err := p.expression(1)
			if err != nil {
				return nil, err
			}
			if inner == nil {
				return nil, p.syntaxErrf("expected expression after unary '%s'", sign.Lexeme)
			}
			if _, err := p.expect(RPAREN, "')'"); err != nil {
				return nil, err
			}
			return &BinaryExpr{
				Op:    "*",
				Left:  &NumberLiteral{Value: factor, Line: sign.Line},
				Right: inner,
				Line:  sign.Line,
			}, nil
		}
		inner, err := p.expression(1)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, p.syntaxErrf("expected expression, got %s", describeToken(p.next))
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.syntaxErrf("unexpected %s", describeToken(p.next))
	}
}
