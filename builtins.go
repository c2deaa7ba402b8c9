// builtins.go — the always-present builtin table.
//
// Builtins are opaque to the evaluator's control flow: they receive one
// evaluated argument (Null when the call site passes none) and return a value
// or a fatal error. The default table is assembled once per Interpreter over
// its configured streams; hosts overlay their own entries per run and never
// mutate the defaults of another instance.
//
// The fixed set:
//
//	print(v)   write "DSL> <v>" to stdout, returns no value
//	inpstr()   prompt "DSL<(str)", read one line, return it as a string
//	inpnum()   prompt "DSL<(num)", read one line, parse it as a number;
//	           a line that is not a number is a fatal host-level error
//	sqrt(x)    square root of a number
package dumblang

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

func defaultBuiltins(ip *Interpreter) map[string]Builtin {
	return map[string]Builtin{
		"print": func(arg Value) (Value, error) {
			_, err := fmt.Fprintf(ip.Stdout, "DSL> %s\n", FormatValue(arg))
			return Null, err
		},

		"inpstr": func(Value) (Value, error) {
			fmt.Fprintln(ip.Stdout, "DSL<(str)")
			line, err := ip.readLine()
			if err != nil {
				return Null, err
			}
			return Str(line), nil
		},

		"inpnum": func(Value) (Value, error) {
			fmt.Fprintln(ip.Stdout, "DSL<(num)")
			line, err := ip.readLine()
			if err != nil {
				return Null, err
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
			if err != nil {
				return Null, fmt.Errorf("not a number: %q", line)
			}
			return Num(f), nil
		},

		"sqrt": func(arg Value) (Value, error) {
			if arg.Tag != VTNum {
				return Null, fmt.Errorf("sqrt expects a number, got %s", tagName(arg))
			}
			return Num(math.Sqrt(arg.Data.(float64))), nil
		},
	}
}

// lineReader wraps Stdin in a buffered reader exactly once, so consecutive
// input builtins within a run do not lose buffered bytes.
type lineReader struct {
	r *bufio.Reader
}

func (ip *Interpreter) readLine() (string, error) {
	if ip.in == nil {
		ip.in = &lineReader{r: bufio.NewReader(ip.Stdin)}
	}
	line, err := ip.in.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
