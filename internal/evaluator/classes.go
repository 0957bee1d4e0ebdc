package evaluator

import (
	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/object"
)

// evalClassExpr builds a *object.Class from a class declaration (spec.md
// §4.8): an optional base-class expression, evaluated once at
// declaration time, and a flat set of member functions stored unbound —
// instantiation (object.Instantiate) is what rebinds them per instance.
func (c *Context) evalClassExpr(n *ast.ClassExpr) (object.Value, bool) {
	var base *object.Class
	if n.Base != nil {
		bv, ok := c.Eval(n.Base)
		if !ok {
			return bv, false
		}
		bc, ok := bv.(*object.Class)
		if !ok {
			return c.fail(n.Pos(), "class base must be a Class, got %s", bv.TypeName())
		}
		base = bc
	}

	class := object.NewClass(n.Name, base)
	for _, m := range n.Members {
		name := m.Name
		class.Members[name] = &object.Function{Name: name, ArgNames: m.ArgNames, Body: m.Body}
	}
	if n.Name != "" {
		c.defineVar(n.Name, class)
	}
	return class, true
}
