// Command dumblang runs DSL programs, renders them as Python, and hosts a
// small interactive embedding demo.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/peterh/liner"
	"github.com/xyproto/env/v2"

	dumblang "github.com/artur-augustyniak/dumb-larklang"
)

const appName = "dumblang"

// demoScript is the fixed program run by `dumblang demo`: every input line
// becomes the entry value, and the host contributes a strlen builtin.
const demoScript = `
main(){
    print(env);
    if(strlen(env) > 0){
        print(env[0]);
    }else{
        print("just enter?");
    }

    return strlen(env);
}
`

var cli struct {
	Run     runCmd     `cmd:"" help:"Parse a source file and run its main function."`
	Demo    demoCmd    `cmd:"" help:"Interactive embedding demo: each input line is fed to a fixed script as the entry value."`
	Version versionCmd `cmd:"" help:"Print the version."`
}

type runCmd struct {
	File       string `arg:"" help:"DSL source file." type:"existingfile"`
	EmitSource bool   `help:"Print the Python rendering instead of executing."`
	Entry      string `help:"Entry value handed to main (default: $DUMBLANG_ENTRY, else 0)."`
}

type demoCmd struct{}

type versionCmd struct{}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name(appName),
		kong.Description("An embeddable procedural DSL: scanner, parser, tree-walking evaluator and a Python backend."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func (c *runCmd) Run() error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", c.File, err)
	}
	src := string(raw)

	prog, perr := dumblang.Parse(src)
	if perr != nil {
		fmt.Fprintln(os.Stderr, dumblang.WrapErrorWithSource(perr, src))
		os.Exit(1)
	}

	if c.EmitSource {
		fmt.Print(dumblang.Transpile(prog))
		return nil
	}

	ip := dumblang.NewInterpreter()
	v, rerr := ip.Run(prog, entryValue(c.Entry))
	if rerr != nil {
		fmt.Fprintln(os.Stderr, dumblang.WrapErrorWithSource(rerr, src))
		os.Exit(1)
	}
	if v.Tag != dumblang.VTNull {
		fmt.Println(dumblang.FormatValue(v))
	}
	return nil
}

// entryValue resolves the entry value for main: the --entry flag, then the
// DUMBLANG_ENTRY environment variable, then the number 0. Numeric strings
// become numbers, everything else stays a string.
func entryValue(flag string) dumblang.Value {
	s := flag
	if s == "" {
		s = env.Str("DUMBLANG_ENTRY", "")
	}
	if s == "" {
		return dumblang.Num(0)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return dumblang.Num(f)
	}
	return dumblang.Str(s)
}

func (c *demoCmd) Run() error {
	builtins := map[string]dumblang.Builtin{
		"strlen": func(arg dumblang.Value) (dumblang.Value, error) {
			switch arg.Tag {
			case dumblang.VTStr:
				return dumblang.Num(float64(len(arg.Data.(string)))), nil
			case dumblang.VTArray:
				return dumblang.Num(float64(len(arg.Data.([]dumblang.Value)))), nil
			default:
				return dumblang.Null, fmt.Errorf("strlen expects a string or array")
			}
		},
	}

	fmt.Printf("dumblang %s embedding demo. Ctrl+D exits.\n", dumblang.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	for {
		line, err := ln.Prompt("demo> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		v, derr := dumblang.Evaluate(demoScript, dumblang.Str(line), builtins)
		if derr != nil {
			fmt.Fprintln(os.Stderr, derr)
			continue
		}
		fmt.Println(dumblang.FormatValue(v))
		fmt.Println(strings.Repeat("#", 80))
		if line != "" {
			ln.AppendHistory(line)
		}
	}
}

func (c *versionCmd) Run() error {
	fmt.Println(dumblang.Version)
	return nil
}
