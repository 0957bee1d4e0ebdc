// Command emerald is the interpreter entry point: it wires the six
// stdlib modules into a fresh evaluator.Context, then either runs a
// source file or drops into a REPL. Grounded on
// funvibe-funxy/cmd/funxy/main.go's manual os.Args scanning (no flag
// package) and its use of github.com/mattn/go-isatty
// (internal/evaluator/builtins_term.go) to decide whether the REPL
// prompt is printed (only when stdin is a terminal).
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/pixelthegreat/emerald/internal/config"
	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/parser"
	"github.com/pixelthegreat/emerald/internal/stdlib/arraymod"
	"github.com/pixelthegreat/emerald/internal/stdlib/osmod"
	"github.com/pixelthegreat/emerald/internal/stdlib/posixmod"
	"github.com/pixelthegreat/emerald/internal/stdlib/site"
	"github.com/pixelthegreat/emerald/internal/stdlib/strmod"
	"github.com/pixelthegreat/emerald/internal/stdlib/utf8mod"
)

const usage = `usage: emerald [options] [filename] [script args...]

  -h, --help            print this message and exit
  -li, --log-info        accepted; has no effect
  -lw, --log-warning      accepted; has no effect
  -lf, --log-fatal        accepted; has no effect
  --no-exit-free          accepted; has no effect
  --no-print-allocs        accepted; has no effect
  --print-alloc-traffic    accepted; has no effect

With no filename, emerald reads statements from stdin as a REPL.
`

func main() {
	args := os.Args[1:]
	var filename string
	var scriptArgs []string

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch a {
		case "-h", "--help":
			fmt.Print(usage)
			os.Exit(0)
		case "-li", "--log-info", "-lw", "--log-warning", "-lf", "--log-fatal":
			// accepted, no-op: emerald has no severity-filtered logger.
		case "--no-exit-free", "--no-print-allocs", "--print-alloc-traffic":
			// accepted, no-op: emerald has no refcounted heap to debug.
		default:
			filename = a
			scriptArgs = args[i+1:]
			i = len(args)
		}
	}

	stdlibDir := resolveStdlibDir(os.Getenv(config.StdlibDirEnv))

	if filename == "" {
		os.Exit(runREPL(stdlibDir))
	}
	os.Exit(runFile(filename, scriptArgs, stdlibDir))
}

func newInterpreter(argv []string, stdlibDir string) *evaluator.Context {
	c := evaluator.New(os.Stdout, stdlibDir, argv)
	osmod.Register(c)
	strmod.Register(c)
	utf8mod.Register(c)
	arraymod.Register(c)
	posixmod.Register(c)
	site.Register(c)
	return c
}

// runFile executes filename once and maps the interpreter's terminal
// state to a process exit code (§6: 0 clean or SystemExit(0), the int
// carried by SystemExit(N) otherwise, non-zero on any uncaught error).
func runFile(filename string, scriptArgs []string, stdlibDir string) int {
	argv := append([]string{filename}, scriptArgs...)
	c := newInterpreter(argv, stdlibDir)
	defer posixmod.RestoreStdin()

	err := c.RunFile(filename)
	if c.Exiting {
		return c.ExitCode
	}
	if err != nil {
		if msg := c.Diag.Flush(); msg != "" {
			fmt.Fprint(os.Stderr, msg)
		}
		return 1
	}
	return 0
}

// runREPL reads statements from stdin one line at a time, parsing and
// evaluating each as its own tiny program against the same persistent
// Context so `let` bindings survive across lines.
func runREPL(stdlibDir string) int {
	c := newInterpreter([]string{"emerald"}, stdlibDir)
	defer posixmod.RestoreStdin()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			fmt.Fprint(os.Stdout, ">>> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		prog, err := parser.ParseFile("<stdin>", line+"\n")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error (<stdin>):\n  %s\n", err)
			continue
		}
		if _, ok := c.Eval(prog); !ok {
			if c.Exiting {
				return c.ExitCode
			}
			if msg := c.Diag.Flush(); msg != "" {
				fmt.Fprint(os.Stderr, msg)
			}
		}
	}
	return 0
}

// resolveStdlibDir is kept separate from config.StdlibDirEnv's plain
// getenv so a future `--stdlib-dir` flag has a single place to extend;
// currently it just normalizes an empty/relative value.
func resolveStdlibDir(raw string) string {
	if raw == "" {
		return ""
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return raw
	}
	return abs
}
