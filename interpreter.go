// interpreter.go — the public surface of the dumblang runtime.
//
// This file holds everything an embedding host touches: the runtime value
// model (Value, with constructors Num/Str/Arr/Bool and the Null singleton),
// the Builtin function type, the Interpreter with its entry points, and the
// package-level Evaluate helper that covers the common embedding shape in one
// call. Execution internals live in interpreter_exec.go.
//
// EXECUTION MODEL
// ---------------
// A run is single-threaded, synchronous and non-reentrant: plain nested
// evaluation, no suspension, no background work. Builtins that request input
// block the whole run. The function table is assembled once per run and never
// mutated while the program executes; concurrent runs require independent
// Interpreter instances.
//
// Every call gets a private activation frame, so parameters and locals are
// per-call and recursion behaves. While-loops and if/else share the enclosing
// frame (no block scope). Reading a name before it has been written in the
// current frame is a name-resolution error.
//
// The entry value is bound to main's declared parameter when it has one, and
// under the conventional name "env" otherwise.
//
// VALUES
// ------
// dumblang values are numbers (float64), strings, one-dimensional arrays,
// booleans (produced by comparisons) and null ("no value"). Arrays are the
// only reference-shared mutable values: assigning an array-valued variable to
// another aliases the same backing sequence, so element writes through one
// name are visible through every other.
//
// BUILTINS
// --------
// The default builtin table (print, inpstr, inpnum, sqrt — see builtins.go)
// is constructed once per Interpreter; host tables passed to Evaluate overlay
// it without mutating it. RegisterBuiltin extends an instance before a run.
package dumblang

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull  ValueTag = iota // no value
	VTBool                  // bool
	VTNum                   // float64
	VTStr                   // string
	VTArray                 // []Value, reference-shared
)

// Value is the tagged runtime carrier. Tag determines the dynamic type of
// Data: nil, bool, float64, string or []Value.
type Value struct {
	Tag  ValueTag
	Data any
}

// Null is the singleton "no value".
var Null = Value{Tag: VTNull}

// Bool wraps a Go bool.
func Bool(b bool) Value { return Value{Tag: VTBool, Data: b} }

// Num wraps a float64; all dumblang numbers are floating point.
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }

// Str wraps a Go string.
func Str(s string) Value { return Value{Tag: VTStr, Data: s} }

// Arr wraps a slice without copying; the caller shares the backing array.
func Arr(xs []Value) Value { return Value{Tag: VTArray, Data: xs} }

// String renders a debug representation (strings are quoted).
func (v Value) String() string {
	if v.Tag == VTStr {
		return strconv.Quote(v.Data.(string))
	}
	return FormatValue(v)
}

// FormatValue renders v the way print shows it: bare strings, numbers in
// shortest form, arrays bracketed with ", " separators.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTArray:
		elems := v.Data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<unknown>"
	}
}

// Builtin is a host-provided callable reachable by name from DSL source.
// It receives the evaluated argument (Null when the call site passes none),
// may perform I/O, and must be total over the value domain: it either returns
// a Value or an error that is fatal to the run.
type Builtin func(arg Value) (Value, error)

// Interpreter evaluates dumblang programs. Stdout and Stdin are the streams
// the default builtins talk to; hosts (and tests) may replace them before a
// run. The zero value is not usable; call NewInterpreter.
type Interpreter struct {
	Stdout io.Writer
	Stdin  io.Reader

	builtins map[string]Builtin
	funcs    map[string]*Function // user functions, rebuilt per run

	in *lineReader // lazy wrapper over Stdin
}

// NewInterpreter returns an engine wired to os.Stdout/os.Stdin with the
// default builtin table installed.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
	}
	ip.builtins = defaultBuiltins(ip)
	return ip
}

// RegisterBuiltin installs (or shadows) a builtin on this instance. It must
// not be called while a program is executing.
func (ip *Interpreter) RegisterBuiltin(name string, fn Builtin) {
	ip.builtins[name] = fn
}

// Run executes prog's main function with the given entry value and returns
// its result (Null when main returns no value). The function table is built
// from prog's definitions once, up front.
func (ip *Interpreter) Run(prog *Program, entry Value) (Value, error) {
	ip.funcs = make(map[string]*Function, len(prog.Functions))
	for _, fn := range prog.Functions {
		ip.funcs[fn.Name] = fn
	}
	main := ip.funcs["main"] // guaranteed by the parser

	fr := newFrame(main)
	if main.HasParam {
		fr.vars[main.Param] = entry
	} else {
		fr.vars["env"] = entry
	}
	return ip.execBody(main, fr)
}

// RunSource parses and runs src in one step. Diagnostics come back enriched
// with a caret snippet of src.
func (ip *Interpreter) RunSource(src string, entry Value) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	v, err := ip.Run(prog, entry)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	return v, nil
}

// Evaluate is the one-call embedding interface: parse src, overlay the host's
// builtins on the defaults, run main with the entry value, return its result.
// Pass Num(0) as the conventional entry when the host has nothing to inject.
func Evaluate(src string, entry Value, builtins map[string]Builtin) (Value, error) {
	ip := NewInterpreter()
	for name, fn := range builtins {
		ip.builtins[name] = fn
	}
	return ip.RunSource(src, entry)
}

func tagName(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return "bool"
	case VTNum:
		return "number"
	case VTStr:
		return "string"
	case VTArray:
		return "array"
	default:
		return fmt.Sprintf("tag(%d)", int(v.Tag))
	}
}
