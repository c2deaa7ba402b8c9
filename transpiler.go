// transpiler.go — the source-to-source backend.
//
// Transpile renders a parsed Program as a standalone Python module with the
// same observable behavior as evaluating it: a prelude defines the builtin
// surface (including a print shadow that reproduces the evaluator's "DSL> "
// prefix), then every function renders as a def in definition order, and a
// __main__ guard invokes main. Rendering is purely syntax directed — the
// backend never evaluates anything and is never invoked by the evaluator.
//
// Operator mapping: '/' becomes Python floor division '//', '^' becomes
// '**'. Array accesses render as name[int(expr)] so float-valued indices
// behave as they do in the evaluator.
package dumblang

import (
	"fmt"
	"strconv"
	"strings"
)

const pyPrelude = `import builtins
import math

def print(value):
    builtins.print("DSL>", value)

def inpstr():
    builtins.print("DSL<(str)")
    return input()

def inpnum():
    builtins.print("DSL<(num)")
    return float(input())

def sqrt(x):
    return math.sqrt(x)
`

// Transpile renders prog as Python source ending in a trailing newline.
func Transpile(prog *Program) string {
	e := &pyEmitter{}
	e.raw(pyPrelude)
	e.line(0, "")

	var main *Function
	for _, fn := range prog.Functions {
		e.function(fn)
		e.line(0, "")
		if fn.Name == "main" {
			main = fn
		}
	}

	e.line(0, `if __name__ == "__main__":`)
	if main != nil && main.HasParam {
		e.line(1, "main(0)")
	} else {
		e.line(1, "main()")
	}
	return strings.Join(e.lines, "\n") + "\n"
}

type pyEmitter struct {
	lines []string
}

const pyIndent = "    "

func (e *pyEmitter) raw(s string) {
	e.lines = append(e.lines, strings.Split(strings.TrimRight(s, "\n"), "\n")...)
}

func (e *pyEmitter) line(indent int, s string) {
	e.lines = append(e.lines, strings.Repeat(pyIndent, indent)+s)
}

func (e *pyEmitter) function(fn *Function) {
	param := ""
	if fn.HasParam {
		param = fn.Param
	}
	e.line(0, fmt.Sprintf("def %s(%s):", fn.Name, param))
	e.block(fn.Body, 1)
}

func (e *pyEmitter) block(b *Block, indent int) {
	if len(b.Statements) == 0 {
		e.line(indent, "pass")
		return
	}
	for _, st := range b.Statements {
		e.stmt(st, indent)
	}
}

func (e *pyEmitter) stmt(n Node, indent int) {
	switch st := n.(type) {
	case *BinaryExpr:
		if st.Op == "=" {
			e.line(indent, e.assignment(st))
			return
		}
		e.line(indent, e.expr(n))

	case *WhileStmt:
		e.line(indent, fmt.Sprintf("while %s:", e.expr(st.Cond)))
		e.block(st.Body, indent+1)

	case *IfStmt:
		e.line(indent, fmt.Sprintf("if %s:", e.expr(st.Cond)))
		e.block(st.Then, indent+1)
		e.line(indent, "else:")
		e.block(st.Else, indent+1)

	case *ReturnStmt:
		if st.Value == nil {
			e.line(indent, "return")
			return
		}
		e.line(indent, fmt.Sprintf("return %s", e.expr(st.Value)))

	default:
		e.line(indent, e.expr(n))
	}
}

// assignment renders the statement form of '=': a plain name binding or an
// element write, depending on the shape of the left side.
func (e *pyEmitter) assignment(a *BinaryExpr) string {
	rhs := e.expr(a.Right)
	if acc, ok := a.Left.(*IndexExpr); ok {
		return fmt.Sprintf("%s[int(%s)] = %s", e.expr(acc.Array), e.expr(acc.Index), rhs)
	}
	return fmt.Sprintf("%s = %s", e.expr(a.Left), rhs)
}

var pyBinOp = map[string]string{
	"+":  "+",
	"-":  "-",
	"*":  "*",
	"/":  "//",
	"^":  "**",
	"<":  "<",
	">":  ">",
	"==": "==",
}

func (e *pyEmitter) expr(n Node) string {
	switch x := n.(type) {
	case *NumberLiteral:
		return strconv.FormatFloat(x.Value, 'g', -1, 64)

	case *StringLiteral:
		return strconv.Quote(x.Value)

	case *Identifier:
		return x.Name

	case *ArrayLiteral:
		parts := make([]string, len(x.Elements))
		for i, el := range x.Elements {
			parts[i] = e.expr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case *IndexExpr:
		return fmt.Sprintf("%s[int(%s)]", e.expr(x.Array), e.expr(x.Index))

	case *CallExpr:
		arg := ""
		if x.Arg != nil {
			arg = e.expr(x.Arg)
		}
		return fmt.Sprintf("%s(%s)", x.Name, arg)

	case *BinaryExpr:
		if x.Op == "=" {
			// Assignment in expression position: render as a Python
			// expression so the output stays syntactically valid.
			if acc, ok := x.Left.(*IndexExpr); ok {
				return fmt.Sprintf("%s.__setitem__(int(%s), %s)",
					e.expr(acc.Array), e.expr(acc.Index), e.expr(x.Right))
			}
			return fmt.Sprintf("(%s := %s)", e.expr(x.Left), e.expr(x.Right))
		}
		return fmt.Sprintf("(%s %s %s)", e.expr(x.Left), pyBinOp[x.Op], e.expr(x.Right))

	default:
		panic(fmt.Sprintf("transpiler: unexpected node %T", n))
	}
}
