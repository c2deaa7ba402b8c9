// errors.go — diagnostics surfaced to the embedding host.
//
// dumblang has two failure classes: syntax errors (*ParseError, which also
// absorbs malformed lexical input) and execution failures (*RuntimeError:
// name resolution, operand-type mismatches, index errors, builtin I/O
// failures). Both are fatal to the run; there is no catch inside the DSL.
// Every failure reaches the host as a Go error carrying message and source
// line where known.
//
// WrapErrorWithSource upgrades either kind into a caret-annotated snippet:
//
//	SYNTAX ERROR at 3:14: expected ';', got '}'
//
//	   2 |     x = 1
//	   3 |     y = x + 2 }
//	     |              ^
//	   4 | }
//
// Other errors pass through unchanged.
package dumblang

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError is a syntax failure naming the offending token's 1-based
// position. Lexical failures use the same type.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// RuntimeError is an execution-time failure. Line is the 1-based source line
// of the node being evaluated, or 0 when unknown.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("RUNTIME ERROR at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("RUNTIME ERROR: %s", e.Msg)
}

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src when err is a *ParseError or *RuntimeError; any other error is returned
// unchanged.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *ParseError:
		return errors.New(prettyErrorString(src, "SYNTAX ERROR", e.Line, e.Col, e.Msg))
	case *RuntimeError:
		if e.Line == 0 {
			return err
		}
		return errors.New(prettyErrorString(src, "RUNTIME ERROR", e.Line, 1, e.Msg))
	default:
		return err
	}
}

// prettyErrorString builds the snippet: header, one context line either side
// when available, and a caret under the 1-based column. Out-of-range
// coordinates are clamped so rendering never fails.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
