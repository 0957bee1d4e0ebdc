package evaluator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/config"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/parser"
	"github.com/pixelthegreat/emerald/internal/token"
)

// evalInclude implements spec.md §4.9's Include: evaluate the path
// expression (must be a String), resolve it against the directory
// search stack, and run the file through RunFile.
func (c *Context) evalInclude(n *ast.IncludeStatement) (object.Value, bool) {
	pv, ok := c.Eval(n.Path)
	if !ok {
		return pv, false
	}
	s, ok := pv.(*object.String)
	if !ok {
		return c.fail(n.Pos(), "include requires a String path, got %s", pv.TypeName())
	}
	if err := c.RunFile(s.Value); err != nil {
		if err == errRaised {
			return object.None, false
		}
		return c.fail(n.Pos(), "%s", err)
	}
	return object.None, true
}

// searchDirs returns the directories a relative include path is tried
// against, in order: the top of the directory stack (most recently
// entered file's own directory) down to the bottom, then cwd and the
// stdlib directory (spec.md §6: "resolve against {cwd, stdlib}").
func (c *Context) searchDirs() []string {
	dirs := make([]string, 0, len(c.DirStack)+2)
	for i := len(c.DirStack) - 1; i >= 0; i-- {
		dirs = append(dirs, c.DirStack[i])
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if c.StdlibDir != "" {
		dirs = append(dirs, c.StdlibDir)
	}
	return dirs
}

func withSourceExt(path string) string {
	if config.HasSourceExt(path) {
		return path
	}
	return path + config.SourceFileExt
}

// resolveInclude finds the first candidate directory that actually has
// the file, returning its resolved absolute path.
func (c *Context) resolveInclude(path string) (string, error) {
	candidate := withSourceExt(path)
	if filepath.IsAbs(candidate) {
		if _, err := os.Stat(candidate); err == nil {
			abs, _ := filepath.Abs(candidate)
			return abs, nil
		}
		return "", fmt.Errorf("cannot find file '%s'", path)
	}
	for _, dir := range c.searchDirs() {
		full := filepath.Join(dir, candidate)
		if _, err := os.Stat(full); err == nil {
			abs, err := filepath.Abs(full)
			if err != nil {
				return "", err
			}
			return abs, nil
		}
	}
	return "", fmt.Errorf("cannot find file '%s'", path)
}

// RunFile resolves path, runs it once, and records it by resolved
// absolute path so a later `include` of the same file (even spelled
// differently) is a no-op — SPEC_FULL.md §5's supplemented
// include-once-by-resolved-path behavior, grounded on
// original_source/src/emerald/context.c's rec_first/rec_last list.
func (c *Context) RunFile(path string) error {
	abs, err := c.resolveInclude(path)
	if err != nil {
		return c.RuntimeError(token.Position{}, "%s", err)
	}
	if c.Included[abs] {
		return nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return c.RuntimeError(token.Position{}, "cannot read file '%s': %s", abs, err)
	}

	if len(c.DirStack) >= config.MaxDirStackDepth {
		return c.RuntimeError(token.Position{}, "directory stack overflow including '%s'", path)
	}
	c.Included[abs] = true
	c.DirStack = append(c.DirStack, filepath.Dir(abs))
	defer func() { c.DirStack = c.DirStack[:len(c.DirStack)-1] }()

	prog, err := parser.ParseFile(abs, string(data))
	if err != nil {
		return c.RuntimeError(token.Position{}, "%s", err)
	}

	_, ok := c.Eval(prog)
	if !ok {
		return errRaised
	}
	return nil
}
