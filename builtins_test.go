package dumblang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Builtin_Sqrt(t *testing.T) {
	v, err := Evaluate("main(){ return sqrt(9); }", Num(0), nil)
	require.NoError(t, err)
	assert.Equal(t, Num(3), v)
}

func Test_Builtin_Sqrt_Type_Check(t *testing.T) {
	_, err := Evaluate(`main(){ return sqrt("nine"); }`, Num(0), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqrt expects a number")
}

func Test_Builtin_Error_Names_The_Builtin(t *testing.T) {
	ip := NewInterpreter()
	ip.Stdout = &bytes.Buffer{}
	_, err := ip.Run(mustParse(t, `main(){ return sqrt([1]); }`), Num(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "builtin 'sqrt'")
}

func Test_Builtin_Print_Returns_Null(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreter()
	ip.Stdout = &out
	v, err := ip.RunSource(`main(){ return print("x"); }`, Num(0))
	require.NoError(t, err)
	assert.Equal(t, Null, v)
	assert.Equal(t, "DSL> x\n", out.String())
}

func Test_ReadLine_Preserves_Buffer_Across_Calls(t *testing.T) {
	// consecutive input builtins share one buffered reader; the second call
	// must see the second line, not a drained stream
	ip := NewInterpreter()
	ip.Stdout = &bytes.Buffer{}
	ip.Stdin = strings.NewReader("first\nsecond\n")
	v, err := ip.RunSource(`main(){ a = inpstr(); b = inpstr(); return a + b; }`, Num(0))
	require.NoError(t, err)
	assert.Equal(t, Str("firstsecond"), v)
}

func Test_ReadLine_Tolerates_Missing_Final_Newline(t *testing.T) {
	ip := NewInterpreter()
	ip.Stdout = &bytes.Buffer{}
	ip.Stdin = strings.NewReader("no newline")
	v, err := ip.RunSource("main(){ return inpstr(); }", Num(0))
	require.NoError(t, err)
	assert.Equal(t, Str("no newline"), v)
}

func Test_ReadLine_Strips_CRLF(t *testing.T) {
	ip := NewInterpreter()
	ip.Stdout = &bytes.Buffer{}
	ip.Stdin = strings.NewReader("windows\r\n")
	v, err := ip.RunSource("main(){ return inpstr(); }", Num(0))
	require.NoError(t, err)
	assert.Equal(t, Str("windows"), v)
}

func Test_FormatValue(t *testing.T) {
	assert.Equal(t, "null", FormatValue(Null))
	assert.Equal(t, "true", FormatValue(Bool(true)))
	assert.Equal(t, "3.5", FormatValue(Num(3.5)))
	assert.Equal(t, "3", FormatValue(Num(3)))
	assert.Equal(t, "plain", FormatValue(Str("plain")))
	assert.Equal(t, "[1, x, [2]]", FormatValue(Arr([]Value{
		Num(1), Str("x"), Arr([]Value{Num(2)}),
	})))
}

func Test_Value_String_Quotes_Strings(t *testing.T) {
	assert.Equal(t, `"x"`, Str("x").String())
	assert.Equal(t, "42", Num(42).String())
}
