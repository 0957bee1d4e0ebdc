package stdlib_test

import (
	"bytes"
	"testing"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/parser"
	"github.com/pixelthegreat/emerald/internal/stdlib/arraymod"
	"github.com/pixelthegreat/emerald/internal/stdlib/osmod"
	"github.com/pixelthegreat/emerald/internal/stdlib/posixmod"
	"github.com/pixelthegreat/emerald/internal/stdlib/site"
	"github.com/pixelthegreat/emerald/internal/stdlib/strmod"
	"github.com/pixelthegreat/emerald/internal/stdlib/utf8mod"
)

// runWithAllModules mirrors evaluator_test.run, but wires every stdlib
// module in (the full Register set cmd/emerald builds), so scripts can
// reach __module_os/__module_string/__module_utf8/__module_array/
// __module_posix alongside the site bindings.
func runWithAllModules(t *testing.T, src string, argv []string) (string, bool) {
	t.Helper()
	var out bytes.Buffer
	c := evaluator.New(&out, "", argv)
	osmod.Register(c)
	strmod.Register(c)
	utf8mod.Register(c)
	arraymod.Register(c)
	posixmod.Register(c)
	site.Register(c)

	prog, err := parser.ParseFile("t.em", src)
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	_, ok := c.Eval(prog)
	return out.String(), ok
}

func TestSiteLengthOfAndToString(t *testing.T) {
	out, ok := runWithAllModules(t, "puts lengthOf([1,2,3,4])\nputs toString(42)\n", nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "4\n42\n" {
		t.Errorf("stdout = %q, want %q", out, "4\n42\n")
	}
}

func TestSiteAppendMutatesInPlace(t *testing.T) {
	out, ok := runWithAllModules(t, "let xs = [1]\nappend(xs, 2)\nappend(xs, 3)\nputs lengthOf(xs)\nputs xs[2]\n", nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "3\n3\n" {
		t.Errorf("stdout = %q, want %q", out, "3\n3\n")
	}
}

func TestSitePrintAndPrintln(t *testing.T) {
	out, ok := runWithAllModules(t, "print(\"a\")\nprintln(\"b\", \"c\")\n", nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "ab c\n" {
		t.Errorf("stdout = %q, want %q", out, "ab c\n")
	}
}

func TestSiteExitSetsCodeAndStopsExecution(t *testing.T) {
	var out bytes.Buffer
	c := evaluator.New(&out, "", nil)
	site.Register(c)
	prog, err := parser.ParseFile("t.em", "exit(3)\nputs \"unreachable\"\n")
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	c.Eval(prog)
	if !c.Exiting || c.ExitCode != 3 {
		t.Errorf("Exiting=%v ExitCode=%d, want true/3", c.Exiting, c.ExitCode)
	}
	if out.String() != "" {
		t.Errorf("stdout = %q, want empty (exit should stop before the puts)", out.String())
	}
}

func TestSiteArgvBinding(t *testing.T) {
	out, ok := runWithAllModules(t, "puts lengthOf(argv)\nputs argv[0]\n", []string{"script.em", "x"})
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "2\nscript.em\n" {
		t.Errorf("stdout = %q, want %q", out, "2\nscript.em\n")
	}
}

func TestModuleStringFormat(t *testing.T) {
	src := "puts __module_string.format(\"{0} and {1}, then {}\", \"a\", \"b\", \"c\")\n"
	out, ok := runWithAllModules(t, src, nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "a and b, then c\n" {
		t.Errorf("stdout = %q, want %q", out, "a and b, then c\n")
	}
}

func TestModuleStringFormatEscapedBrace(t *testing.T) {
	out, ok := runWithAllModules(t, "puts __module_string.format(\"{{literal}}\")\n", nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "{literal}}\n" {
		t.Errorf("stdout = %q, want %q", out, "{literal}}\n")
	}
}

func TestModuleArrayModesAndRoundTrip(t *testing.T) {
	src := "let a = __module_array.Array(4, __module_array.int)\n" +
		"let a[0] = -7\n" +
		"puts a[0]\n"
	out, ok := runWithAllModules(t, src, nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "-7\n" {
		t.Errorf("stdout = %q, want %q", out, "-7\n")
	}
}

func TestModuleArrayRejectsTooSmallSize(t *testing.T) {
	_, ok := runWithAllModules(t, "__module_array.Array(0, __module_array.char)\n", nil)
	if ok {
		t.Fatal("expected Array(0, ...) to raise")
	}
}

func TestModuleUtf8EncodeDecodeRoundTrip(t *testing.T) {
	src := "let a = __module_array.Array(8, __module_array.unsignedChar)\n" +
		"let n = __module_utf8.encode(a, \"hé\")\n" +
		"let s = \"  \"\n" +
		"__module_utf8.decode(s, a)\n" +
		"puts s\n"
	out, ok := runWithAllModules(t, src, nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "hé\n" {
		t.Errorf("stdout = %q, want %q", out, "hé\n")
	}
}

func TestModuleUtf8ValidateBytes(t *testing.T) {
	src := "let a = __module_array.Array(4, __module_array.unsignedChar)\n" +
		"__module_utf8.encode(a, \"a\")\n" +
		"puts __module_utf8.validateBytes(a)\n"
	out, ok := runWithAllModules(t, src, nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "1\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n")
	}
}

func TestModuleOSExists(t *testing.T) {
	src := "puts __module_os.exists(\"/\")\nputs __module_os.exists(\"/no/such/path/xyz\")\n"
	out, ok := runWithAllModules(t, src, nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "1\n0\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n0\n")
	}
}

func TestModulePosixStrerror(t *testing.T) {
	out, ok := runWithAllModules(t, "puts lengthOf(__module_posix.strerror(0)) > 0\n", nil)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "1\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n")
	}
}

func TestRestoreStdinNoopWhenUnmodified(t *testing.T) {
	posixmod.RestoreStdin()
}
