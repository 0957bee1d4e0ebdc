package evaluator

import (
	"github.com/pixelthegreat/emerald/internal/config"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/token"
)

// pushScope pushes a fresh empty scope, enforcing spec.md §5's 128-deep
// bound on the scope stack.
func (c *Context) pushScope() error {
	if len(c.Scopes) >= config.MaxScopeDepth {
		return c.Fail(token.Position{}, "scope stack overflow")
	}
	c.Scopes = append(c.Scopes, object.NewMap())
	return nil
}

func (c *Context) popScope() {
	c.Scopes = c.Scopes[:len(c.Scopes)-1]
}

// getVar searches top-to-bottom (spec.md §4.9: "lexical, not dynamic").
func (c *Context) getVar(name string) (object.Value, bool) {
	for i := len(c.Scopes) - 1; i >= 0; i-- {
		if v, ok := c.Scopes[i].GetStr(name); ok {
			return v, true
		}
	}
	return nil, false
}

// setVar updates name in whichever scope already holds it, or creates it
// in the topmost (current) scope if unbound — spec.md §4.9's `let`
// semantics: "if the identifier is not yet bound, the assignment creates
// it in the current scope."
func (c *Context) setVar(name string, v object.Value) {
	for i := len(c.Scopes) - 1; i >= 0; i-- {
		if _, ok := c.Scopes[i].GetStr(name); ok {
			c.Scopes[i].Set(object.NewString(name), v)
			return
		}
	}
	c.Scopes[len(c.Scopes)-1].Set(object.NewString(name), v)
}

// defineVar always binds in the current (topmost) scope, used for
// function-argument binding where shadowing an outer name is expected
// rather than updating it.
func (c *Context) defineVar(name string, v object.Value) {
	c.Scopes[len(c.Scopes)-1].Set(object.NewString(name), v)
}

// withBlockScope pushes a scope, runs fn, and always pops — used by
// if/for/foreach/while/try bodies (spec.md §4.9: "nested class and
// control-flow constructs push/pop scopes too").
func (c *Context) withBlockScope(fn func() (object.Value, bool)) (object.Value, bool) {
	if err := c.pushScope(); err != nil {
		return object.None, false
	}
	defer c.popScope()
	return fn()
}
