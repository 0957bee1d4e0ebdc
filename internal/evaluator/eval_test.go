package evaluator_test

import (
	"bytes"
	"testing"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/parser"
	"github.com/pixelthegreat/emerald/internal/stdlib/site"
)

// run parses and evaluates src against a fresh Context with the site
// bindings (lengthOf/puts-adjacent machinery) wired in, returning
// stdout and whether evaluation completed without an uncaught error.
func run(t *testing.T, src string) (string, bool) {
	t.Helper()
	var out bytes.Buffer
	c := evaluator.New(&out, "", nil)
	site.Register(c)

	prog, err := parser.ParseFile("t.em", src)
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	_, ok := c.Eval(prog)
	return out.String(), ok
}

func TestScenarioArithmeticPuts(t *testing.T) {
	out, ok := run(t, "puts 1 + 2 * 3\n")
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "7\n" {
		t.Errorf("stdout = %q, want %q", out, "7\n")
	}
}

func TestScenarioForLoopOverList(t *testing.T) {
	src := "let xs = [1,2,3]\nfor i = 0 to lengthOf(xs) then\n  puts xs[i]\nend\n"
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "1\n2\n3\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n2\n3\n")
	}
}

func TestScenarioRecursiveFunction(t *testing.T) {
	src := "func fact(n) then\n  if n <= 1 then return 1 end\n  return n * fact(n - 1)\nend\nputs fact(6)\n"
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "720\n" {
		t.Errorf("stdout = %q, want %q", out, "720\n")
	}
}

func TestScenarioClassInitAndMethod(t *testing.T) {
	src := "class A then\n  func _initialize(self, x) then let self.x = x end\n  func get(self) then return self.x end\nend\nlet a = A(42)\nputs a.get()\n"
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "42\n" {
		t.Errorf("stdout = %q, want %q", out, "42\n")
	}
}

func TestScenarioRaiseStringSugarCaughtByError(t *testing.T) {
	src := "try then raise \"boom\" catch e = Error then puts e end\n"
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "boom\n" {
		t.Errorf("stdout = %q, want %q", out, "boom\n")
	}
}

func TestScenarioForeachOverString(t *testing.T) {
	src := "let s = \"\"\nforeach c in \"abc\" then let s = s + c end\nputs s\n"
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "abc\n" {
		t.Errorf("stdout = %q, want %q", out, "abc\n")
	}
}

func TestForZeroIterations(t *testing.T) {
	out, ok := run(t, "for i = 5 to 5 then puts i end\n")
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty (zero iterations)", out)
	}
}

func TestArityTooFewArguments(t *testing.T) {
	_, ok := run(t, "func f(x, y) then end\nf(1)\n")
	if ok {
		t.Fatal("expected a raised error for too few arguments")
	}
}

func TestArityTooManyArguments(t *testing.T) {
	_, ok := run(t, "func f(x, y) then end\nf(1, 2, 3)\n")
	if ok {
		t.Fatal("expected a raised error for too many arguments")
	}
}

func TestBreakExitsLoop(t *testing.T) {
	out, ok := run(t, "let i = 0\nwhile true then\n  if i >= 3 then break end\n  puts i\n  let i = i + 1\nend\n")
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "0\n1\n2\n" {
		t.Errorf("stdout = %q, want %q", out, "0\n1\n2\n")
	}
}
