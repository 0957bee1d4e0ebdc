package arraymod_test

import (
	"bytes"
	"testing"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/parser"
	"github.com/pixelthegreat/emerald/internal/stdlib/arraymod"
)

func run(t *testing.T, src string) (string, bool) {
	t.Helper()
	var out bytes.Buffer
	c := evaluator.New(&out, "", nil)
	arraymod.Register(c)
	prog, err := parser.ParseFile("t.em", src)
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	_, ok := c.Eval(prog)
	return out.String(), ok
}

func TestArrayModeConstantsDistinct(t *testing.T) {
	src := `
puts __module_array.char != __module_array.unsignedChar
puts __module_array.short != __module_array.long
`
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "1\n1\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n1\n")
	}
}

func TestArrayRejectsInvalidMode(t *testing.T) {
	_, ok := run(t, "__module_array.Array(4, 999)\n")
	if ok {
		t.Fatal("expected an out-of-range mode to raise")
	}
}

func TestArrayUnsignedCharWraps(t *testing.T) {
	src := `
let a = __module_array.Array(1, __module_array.unsignedChar)
let a[0] = 255
puts a[0]
`
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "255\n" {
		t.Errorf("stdout = %q, want %q", out, "255\n")
	}
}

func TestArraySignedCharRange(t *testing.T) {
	src := `
let a = __module_array.Array(1, __module_array.char)
let a[0] = -1
puts a[0]
`
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "-1\n" {
		t.Errorf("stdout = %q, want %q", out, "-1\n")
	}
}
