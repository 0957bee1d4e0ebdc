package osmod_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/parser"
	"github.com/pixelthegreat/emerald/internal/stdlib/osmod"
	"github.com/pixelthegreat/emerald/internal/stdlib/site"
)

func run(t *testing.T, src string) (string, bool) {
	t.Helper()
	var out bytes.Buffer
	c := evaluator.New(&out, "", nil)
	osmod.Register(c)
	site.Register(c)
	prog, err := parser.ParseFile("t.em", src)
	if err != nil {
		t.Fatalf("ParseFile error: %s", err)
	}
	_, ok := c.Eval(prog)
	return out.String(), ok
}

func TestOSWriteThenReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	src := `
let wf = __module_os.openFile("` + path + `", __module_os.write)
__module_os.writeFile(wf, "hi there")
__module_os.closeFile(wf)

let rf = __module_os.openFile("` + path + `", __module_os.read)
let s = "        "
__module_os.readFile(rf, s)
__module_os.closeFile(rf)
puts s
`
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "hi there\n" {
		t.Errorf("stdout = %q, want %q", out, "hi there\n")
	}
}

func TestOSExistsReflectsFilesystem(t *testing.T) {
	dir := t.TempDir()
	out, ok := run(t, `puts __module_os.exists("`+dir+`")`+"\n")
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "1\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n")
	}
}

func TestOSReadFileRejectsWriteOnlyHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.txt")
	src := `
let wf = __module_os.openFile("` + path + `", __module_os.write)
let s = " "
__module_os.readFile(wf, s)
`
	_, ok := run(t, src)
	if ok {
		t.Fatal("expected readFile on a write-only handle to raise")
	}
}

func TestOSSeekFileReportsNewPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seek.txt")
	src := `
let wf = __module_os.openFile("` + path + `", __module_os.write)
__module_os.writeFile(wf, "0123456789")
__module_os.closeFile(wf)

let rf = __module_os.openFile("` + path + `", __module_os.read)
puts __module_os.seekFile(rf, __module_os.start, 3)
`
	out, ok := run(t, src)
	if !ok {
		t.Fatal("evaluation failed unexpectedly")
	}
	if out != "3\n" {
		t.Errorf("stdout = %q, want %q", out, "3\n")
	}
}
