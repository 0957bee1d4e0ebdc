package strmod_test

import (
	"bytes"
	"testing"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/parser"
	"github.com/pixelthegreat/emerald/internal/stdlib/strmod"
)

func run(t *testing.T, src string) (string, bool) {
	t.Helper()
	var out bytes.Buffer
	c := evaluator.New(&out, "", nil)
	strmod.Register(c)
	prog, err := parser.ParseFile("t.em", src)
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	_, ok := c.Eval(prog)
	return out.String(), ok
}

func TestFormatAutoIncrementingIndex(t *testing.T) {
	out, ok := run(t, `puts __module_string.format("{} {} {}", "a", "b", "c")`+"\n")
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "a b c\n" {
		t.Errorf("stdout = %q, want %q", out, "a b c\n")
	}
}

func TestFormatExplicitIndexResumesAutoIncrementAfter(t *testing.T) {
	out, ok := run(t, `puts __module_string.format("{1} {}", "a", "b", "c")`+"\n")
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "b c\n" {
		t.Errorf("stdout = %q, want %q", out, "b c\n")
	}
}

func TestFormatRejectsOutOfRangeIndex(t *testing.T) {
	_, ok := run(t, `puts __module_string.format("{5}", "a")`+"\n")
	if ok {
		t.Fatal("expected an out-of-range format index to raise")
	}
}

func TestFormatRejectsUnclosedSpecifier(t *testing.T) {
	_, ok := run(t, `puts __module_string.format("{", "a")`+"\n")
	if ok {
		t.Fatal("expected an unclosed format specifier to raise")
	}
}

func TestFormatConvertsNonStringArgs(t *testing.T) {
	out, ok := run(t, `puts __module_string.format("n={}", 42)`+"\n")
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "n=42\n" {
		t.Errorf("stdout = %q, want %q", out, "n=42\n")
	}
}
