// interpreter_exec.go — private execution core: frames, statement dispatch,
// expression evaluation, operators and call dispatch.
//
// 'return' propagation is explicit data flow: block execution yields a ctrl
// result that either continues or carries the returned value upward through
// every enclosing while/if until the activation ends. No panic/recover is
// involved, so the early-exit path is visible and testable.
package dumblang

import (
	"fmt"
	"math"
)

// frame is one activation: the private variable store of a single call.
// While-loops and if/else run in the frame of their enclosing function.
type frame struct {
	fn   *Function
	vars map[string]Value
}

func newFrame(fn *Function) *frame {
	return &frame{fn: fn, vars: map[string]Value{}}
}

// ctrl threads 'return' through nested blocks: returned=false means continue
// with the next statement, returned=true unwinds the whole activation.
type ctrl struct {
	returned bool
	val      Value
}

// execBody runs a function body to completion or early return.
func (ip *Interpreter) execBody(fn *Function, fr *frame) (Value, error) {
	c, err := ip.execBlock(fn.Body, fr)
	if err != nil {
		return Null, err
	}
	if c.returned {
		return c.val, nil
	}
	return Null, nil
}

func (ip *Interpreter) execBlock(b *Block, fr *frame) (ctrl, error) {
	for _, st := range b.Statements {
		c, err := ip.execStmt(st, fr)
		if err != nil {
			return ctrl{}, err
		}
		if c.returned {
			return c, nil
		}
	}
	return ctrl{}, nil
}

func (ip *Interpreter) execStmt(n Node, fr *frame) (ctrl, error) {
	switch st := n.(type) {
	case *WhileStmt:
		for {
			cond, err := ip.evalExpr(st.Cond, fr)
			if err != nil {
				return ctrl{}, err
			}
			if !isTruthy(cond) {
				return ctrl{}, nil
			}
			c, err := ip.execBlock(st.Body, fr)
			if err != nil {
				return ctrl{}, err
			}
			if c.returned {
				return c, nil
			}
		}

	case *IfStmt:
		cond, err := ip.evalExpr(st.Cond, fr)
		if err != nil {
			return ctrl{}, err
		}
		branch := st.Else
		if isTruthy(cond) {
			branch = st.Then
		}
		return ip.execBlock(branch, fr)

	case *ReturnStmt:
		if st.Value == nil {
			return ctrl{returned: true, val: Null}, nil
		}
		v, err := ip.evalExpr(st.Value, fr)
		if err != nil {
			return ctrl{}, err
		}
		return ctrl{returned: true, val: v}, nil

	default:
		// Expression statement: evaluated for its effect, value discarded.
		_, err := ip.evalExpr(n, fr)
		return ctrl{}, err
	}
}

func (ip *Interpreter) evalExpr(n Node, fr *frame) (Value, error) {
	switch e := n.(type) {
	case *NumberLiteral:
		return Num(e.Value), nil

	case *StringLiteral:
		return Str(e.Value), nil

	case *Identifier:
		v, ok := fr.vars[e.Name]
		if !ok {
			return Null, &RuntimeError{Line: e.Line,
				Msg: fmt.Sprintf("undefined variable '%s' in function '%s'", e.Name, fr.fn.Name)}
		}
		return v, nil

	case *ArrayLiteral:
		elems := make([]Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := ip.evalExpr(el, fr)
			if err != nil {
				return Null, err
			}
			elems = append(elems, v)
		}
		return Arr(elems), nil

	case *CallExpr:
		return ip.call(e, fr)

	case *IndexExpr:
		return ip.evalIndex(e, fr)

	case *BinaryExpr:
		if e.Op == "=" {
			return ip.evalAssign(e, fr)
		}
		l, err := ip.evalExpr(e.Left, fr)
		if err != nil {
			return Null, err
		}
		r, err := ip.evalExpr(e.Right, fr)
		if err != nil {
			return Null, err
		}
		return applyBinary(e.Op, l, r, e.Line)

	case *ReturnStmt:
		return Null, &RuntimeError{Line: e.Line, Msg: "'return' cannot be used inside an expression"}

	default:
		return Null, &RuntimeError{Msg: fmt.Sprintf("cannot evaluate %T as an expression", n)}
	}
}

// evalAssign handles '='. The left operand is never evaluated as a value;
// its shape selects a scalar write or an array element write. The expression
// yields the assigned value.
func (ip *Interpreter) evalAssign(e *BinaryExpr, fr *frame) (Value, error) {
	switch lhs := e.Left.(type) {
	case *Identifier:
		v, err := ip.evalExpr(e.Right, fr)
		if err != nil {
			return Null, err
		}
		fr.vars[lhs.Name] = v
		return v, nil

	case *IndexExpr:
		ident, ok := lhs.Array.(*Identifier)
		if !ok {
			return Null, &RuntimeError{Line: e.Line, Msg: "cannot assign to this expression"}
		}
		arrVal, found := fr.vars[ident.Name]
		if !found {
			return Null, &RuntimeError{Line: ident.Line,
				Msg: fmt.Sprintf("undefined variable '%s' in function '%s'", ident.Name, fr.fn.Name)}
		}
		if arrVal.Tag != VTArray {
			return Null, &RuntimeError{Line: e.Line,
				Msg: fmt.Sprintf("cannot index into %s '%s'", tagName(arrVal), ident.Name)}
		}
		idxVal, err := ip.evalExpr(lhs.Index, fr)
		if err != nil {
			return Null, err
		}
		elems := arrVal.Data.([]Value)
		idx, err := resolveIndex(idxVal, len(elems), e.Line)
		if err != nil {
			return Null, err
		}
		v, err := ip.evalExpr(e.Right, fr)
		if err != nil {
			return Null, err
		}
		elems[idx] = v
		return v, nil

	default:
		return Null, &RuntimeError{Line: e.Line, Msg: "invalid assignment target"}
	}
}

// evalIndex reads an array element, or a one-character string slice when the
// subject is a string. Negative indices count from the end.
func (ip *Interpreter) evalIndex(e *IndexExpr, fr *frame) (Value, error) {
	subject, err := ip.evalExpr(e.Array, fr)
	if err != nil {
		return Null, err
	}
	idxVal, err := ip.evalExpr(e.Index, fr)
	if err != nil {
		return Null, err
	}

	switch subject.Tag {
	case VTArray:
		elems := subject.Data.([]Value)
		idx, err := resolveIndex(idxVal, len(elems), e.Line)
		if err != nil {
			return Null, err
		}
		return elems[idx], nil
	case VTStr:
		s := subject.Data.(string)
		idx, err := resolveIndex(idxVal, len(s), e.Line)
		if err != nil {
			return Null, err
		}
		return Str(s[idx : idx+1]), nil
	default:
		return Null, &RuntimeError{Line: e.Line,
			Msg: fmt.Sprintf("cannot index into %s", tagName(subject))}
	}
}

// resolveIndex turns a runtime value into a bounds-checked element index,
// wrapping negative indices from the end.
func resolveIndex(v Value, length, line int) (int, error) {
	if v.Tag != VTNum {
		return 0, &RuntimeError{Line: line,
			Msg: fmt.Sprintf("array index must be a number, got %s", tagName(v))}
	}
	idx := int(v.Data.(float64))
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, &RuntimeError{Line: line,
			Msg: fmt.Sprintf("index %d out of range for length %d", int(v.Data.(float64)), length)}
	}
	return idx, nil
}

// call dispatches a named call: builtins take precedence, then user
// functions; an unknown name is a name-resolution failure. The argument is
// evaluated in the caller's frame; a user callee gets a fresh frame with the
// argument bound to its declared parameter.
func (ip *Interpreter) call(c *CallExpr, fr *frame) (Value, error) {
	arg := Null
	if c.Arg != nil {
		var err error
		arg, err = ip.evalExpr(c.Arg, fr)
		if err != nil {
			return Null, err
		}
	}

	if b, ok := ip.builtins[c.Name]; ok {
		v, err := b(arg)
		if err != nil {
			return Null, &RuntimeError{Line: c.Line,
				Msg: fmt.Sprintf("builtin '%s': %v", c.Name, err)}
		}
		return v, nil
	}

	fn, ok := ip.funcs[c.Name]
	if !ok {
		return Null, &RuntimeError{Line: c.Line,
			Msg: fmt.Sprintf("unknown function '%s'", c.Name)}
	}
	callee := newFrame(fn)
	if fn.HasParam && c.Arg != nil {
		callee.vars[fn.Param] = arg
	}
	return ip.execBody(fn, callee)
}

// isTruthy: booleans are themselves, zero is the only falsy number, strings
// and arrays are truthy when nonempty, null is falsy.
func isTruthy(v Value) bool {
	switch v.Tag {
	case VTBool:
		return v.Data.(bool)
	case VTNum:
		return v.Data.(float64) != 0
	case VTStr:
		return v.Data.(string) != ""
	case VTArray:
		return len(v.Data.([]Value)) > 0
	default:
		return false
	}
}

// applyBinary evaluates the fixed operator set. '/' is floor division, '^'
// exponentiation; '+' also concatenates strings and arrays; comparisons
// yield booleans. Operand-type mismatches are runtime failures.
func applyBinary(op string, l, r Value, line int) (Value, error) {
	typeErr := func() (Value, error) {
		return Null, &RuntimeError{Line: line,
			Msg: fmt.Sprintf("operator '%s' is not defined for %s and %s", op, tagName(l), tagName(r))}
	}

	switch op {
	case "+":
		switch {
		case l.Tag == VTNum && r.Tag == VTNum:
			return Num(l.Data.(float64) + r.Data.(float64)), nil
		case l.Tag == VTStr && r.Tag == VTStr:
			return Str(l.Data.(string) + r.Data.(string)), nil
		case l.Tag == VTArray && r.Tag == VTArray:
			ls := l.Data.([]Value)
			rs := r.Data.([]Value)
			out := make([]Value, 0, len(ls)+len(rs))
			out = append(out, ls...)
			out = append(out, rs...)
			return Arr(out), nil
		}
		return typeErr()

	case "-", "*", "/", "^":
		if l.Tag != VTNum || r.Tag != VTNum {
			return typeErr()
		}
		a := l.Data.(float64)
		b := r.Data.(float64)
		switch op {
		case "-":
			return Num(a - b), nil
		case "*":
			return Num(a * b), nil
		case "/":
			if b == 0 {
				return Null, &RuntimeError{Line: line, Msg: "division by zero"}
			}
			return Num(math.Floor(a / b)), nil
		default: // "^"
			return Num(math.Pow(a, b)), nil
		}

	case "<", ">":
		switch {
		case l.Tag == VTNum && r.Tag == VTNum:
			if op == "<" {
				return Bool(l.Data.(float64) < r.Data.(float64)), nil
			}
			return Bool(l.Data.(float64) > r.Data.(float64)), nil
		case l.Tag == VTStr && r.Tag == VTStr:
			if op == "<" {
				return Bool(l.Data.(string) < r.Data.(string)), nil
			}
			return Bool(l.Data.(string) > r.Data.(string)), nil
		}
		return typeErr()

	case "==":
		return Bool(equalValues(l, r)), nil

	default:
		return Null, &RuntimeError{Line: line, Msg: fmt.Sprintf("unknown operator '%s'", op)}
	}
}

// equalValues is deep equality; values of different kinds are never equal.
func equalValues(l, r Value) bool {
	if l.Tag != r.Tag {
		return false
	}
	switch l.Tag {
	case VTNull:
		return true
	case VTBool:
		return l.Data.(bool) == r.Data.(bool)
	case VTNum:
		return l.Data.(float64) == r.Data.(float64)
	case VTStr:
		return l.Data.(string) == r.Data.(string)
	case VTArray:
		ls := l.Data.([]Value)
		rs := r.Data.([]Value)
		if len(ls) != len(rs) {
			return false
		}
		for i := range ls {
			if !equalValues(ls[i], rs[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
