package dumblang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transpileSrc(t *testing.T, src string) string {
	t.Helper()
	return Transpile(mustParse(t, src))
}

func Test_Transpile_Prelude_And_Main_Guard(t *testing.T) {
	out := transpileSrc(t, "main(){ }")
	assert.Contains(t, out, "import builtins")
	assert.Contains(t, out, "import math")
	assert.Contains(t, out, `builtins.print("DSL>", value)`)
	assert.Contains(t, out, `if __name__ == "__main__":`)
	assert.Contains(t, out, "\n    main()\n")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func Test_Transpile_Main_With_Parameter_Gets_Default_Entry(t *testing.T) {
	out := transpileSrc(t, "main(env){ return env; }")
	assert.Contains(t, out, "def main(env):")
	assert.Contains(t, out, "\n    main(0)\n")
}

func Test_Transpile_Empty_Body_Emits_Pass(t *testing.T) {
	out := transpileSrc(t, "noop(){ } main(){ noop(); }")
	assert.Contains(t, out, "def noop():\n    pass")
}

func Test_Transpile_Operator_Mapping(t *testing.T) {
	out := transpileSrc(t, "main(){ return 7 / 2 + 2 ^ 10; }")
	assert.Contains(t, out, "(7 // 2)")
	assert.Contains(t, out, "(2 ** 10)")
}

func Test_Transpile_Index_Coerces_To_Int(t *testing.T) {
	out := transpileSrc(t, "main(){ a = [1, 2]; return a[1.5]; }")
	assert.Contains(t, out, "a[int(1.5)]")
}

func Test_Transpile_Element_Assignment(t *testing.T) {
	out := transpileSrc(t, "main(){ a = [1]; a[0] = 9; }")
	assert.Contains(t, out, "a[int(0)] = 9")
}

func Test_Transpile_Control_Flow(t *testing.T) {
	src := `main(){
		i = 10;
		while(i > 0){
			if(i == 5){ print(i); }else{ x = 0; }
			i = i - 1;
		}
	}`
	out := transpileSrc(t, src)
	assert.Contains(t, out, "while (i > 0):")
	assert.Contains(t, out, "if (i == 5):")
	assert.Contains(t, out, "else:")
	assert.Contains(t, out, "print(i)")
}

func Test_Transpile_Assignment_In_Expression_Uses_Walrus(t *testing.T) {
	out := transpileSrc(t, "main(){ return (x = 5); }")
	assert.Contains(t, out, "return (x := 5)")
}

func Test_Transpile_Element_Write_In_Expression_Uses_Setitem(t *testing.T) {
	out := transpileSrc(t, "main(){ a = [1]; return (a[0] = 9); }")
	assert.Contains(t, out, "a.__setitem__(int(0), 9)")
}

func Test_Transpile_Golden_Countdown(t *testing.T) {
	src := `main(){
		x = 3;
		y = x + 4;
		while(y > 0){ y = y - 1; }
		return y;
	}`
	out := transpileSrc(t, src)
	want := strings.Join([]string{
		"def main():",
		"    x = 3",
		"    y = (x + 4)",
		"    while (y > 0):",
		"        y = (y - 1)",
		"    return y",
	}, "\n")
	require.Contains(t, out, want)
}

func Test_Transpile_String_Literals_Are_Quoted(t *testing.T) {
	out := transpileSrc(t, `main(){ print("he said \ nothing"); }`)
	assert.Contains(t, out, `print("he said \\ nothing")`)
}

func Test_Transpile_Definition_Order_Preserved(t *testing.T) {
	out := transpileSrc(t, "b(){ return 2; } a(){ return 1; } main(){ a(); }")
	bi := strings.Index(out, "def b():")
	ai := strings.Index(out, "def a():")
	mi := strings.Index(out, "def main():")
	require.True(t, bi >= 0 && ai >= 0 && mi >= 0)
	assert.Less(t, bi, ai)
	assert.Less(t, ai, mi)
}
