package dumblang

import (
	"errors"
	"strings"
	"testing"
)

func Test_ParseError_Message(t *testing.T) {
	e := &ParseError{Line: 3, Col: 14, Msg: "expected ';', got '}'"}
	if got := e.Error(); got != "SYNTAX ERROR at 3:14: expected ';', got '}'" {
		t.Fatalf("got %q", got)
	}
}

func Test_RuntimeError_Message(t *testing.T) {
	e := &RuntimeError{Line: 2, Msg: "division by zero"}
	if got := e.Error(); got != "RUNTIME ERROR at line 2: division by zero" {
		t.Fatalf("got %q", got)
	}
	e = &RuntimeError{Msg: "no line"}
	if got := e.Error(); got != "RUNTIME ERROR: no line" {
		t.Fatalf("got %q", got)
	}
}

func Test_WrapErrorWithSource_Caret_Snippet(t *testing.T) {
	src := "main(){\n  x = ;\n}"
	_, perr := Parse(src)
	if perr == nil {
		t.Fatal("expected parse error")
	}
	wrapped := WrapErrorWithSource(perr, src)
	out := wrapped.Error()

	if !strings.Contains(out, "SYNTAX ERROR at 2:") {
		t.Fatalf("missing header in:\n%s", out)
	}
	// context lines either side plus a caret line
	for _, frag := range []string{"   1 | main(){", "   2 |   x = ;", "   3 | }"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("missing %q in:\n%s", frag, out)
		}
	}
	caret := false
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "     | ") && strings.HasSuffix(line, "^") {
			caret = true
		}
	}
	if !caret {
		t.Fatalf("missing caret line in:\n%s", out)
	}
}

func Test_WrapErrorWithSource_Runtime_Line(t *testing.T) {
	src := "main(){\n  return 1 / 0;\n}"
	ip := NewInterpreter()
	_, err := ip.RunSource(src, Num(0))
	if err == nil {
		t.Fatal("expected runtime error")
	}
	out := err.Error()
	if !strings.Contains(out, "RUNTIME ERROR at 2:1: division by zero") {
		t.Fatalf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "   2 |   return 1 / 0;") {
		t.Fatalf("missing source line in:\n%s", out)
	}
}

func Test_WrapErrorWithSource_Passthrough(t *testing.T) {
	plain := errors.New("not a dumblang error")
	if got := WrapErrorWithSource(plain, "main(){}"); got != plain {
		t.Fatalf("plain error was rewritten: %v", got)
	}
}

func Test_WrapErrorWithSource_Clamps_Coordinates(t *testing.T) {
	e := &ParseError{Line: 99, Col: 99, Msg: "off the end"}
	out := WrapErrorWithSource(e, "one line only").Error()
	if !strings.Contains(out, "one line only") {
		t.Fatalf("missing clamped line in:\n%s", out)
	}
}
