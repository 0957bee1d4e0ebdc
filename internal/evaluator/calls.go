package evaluator

import (
	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/token"
)

// CallFunction implements spec.md §4.8's function call: exact arity,
// a fresh scope holding only the arguments, the body evaluated, and the
// scope popped. Per spec.md §3, a call sees *only* the root scope plus
// this fresh local scope — never the caller's intermediate scopes — so
// the whole stack is swapped out and restored rather than pushed onto.
func (c *Context) CallFunction(fn *object.Function, args []object.Value, pos token.Position) (object.Value, error) {
	if len(args) < len(fn.ArgNames) {
		return nil, c.RuntimeError(pos, "Too few arguments to function %s", fnLabel(fn))
	}
	if len(args) > len(fn.ArgNames) {
		return nil, c.RuntimeError(pos, "Too many arguments to function %s", fnLabel(fn))
	}

	saved := c.Scopes
	root := saved[0]
	local := object.NewMap()
	c.Scopes = []*object.Map{root, local}
	for i, name := range fn.ArgNames {
		c.defineVar(name, args[i])
	}

	_, ok := c.evalStatements(fn.Body.Statements)
	c.Scopes = saved

	if !ok {
		if c.Diag.Catch(c.Classes.SystemReturn) {
			ret := c.Pass
			c.Diag.Clear()
			c.Pass = nil
			if ret == nil {
				ret = object.None
			}
			return ret, nil
		}
		return nil, errRaised
	}
	return object.None, nil
}

func fnLabel(fn *object.Function) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "<anonymous>"
}

func (c *Context) evalFuncExpr(n *ast.FuncExpr) (object.Value, bool) {
	fn := &object.Function{Name: n.Name, ArgNames: n.ArgNames, Body: n.Body}
	if n.Name != "" {
		c.defineVar(n.Name, fn)
	}
	return fn, true
}

func (c *Context) evalCall(n *ast.CallExpr) (object.Value, bool) {
	callee, ok := c.Eval(n.Callee)
	if !ok {
		return callee, false
	}
	args := make([]object.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, ok := c.Eval(a)
		if !ok {
			return v, false
		}
		args = append(args, v)
	}
	v, err := object.CallValue(c, callee, args, n.Pos())
	if err != nil {
		if err == errRaised {
			return object.None, false
		}
		return c.fail(n.Pos(), "%s", err)
	}
	return v, true
}

// memberHolder is implemented by both *object.Map and *object.Instance
// (which embeds *object.Map), giving member access a single dispatch
// point instead of a type switch per access.
type memberHolder interface {
	GetStr(name string) (object.Value, bool)
	Set(key, val object.Value) error
}

func (c *Context) evalMember(n *ast.MemberExpr) (object.Value, bool) {
	x, ok := c.Eval(n.X)
	if !ok {
		return x, false
	}
	switch v := x.(type) {
	case *object.Class:
		if m, ok := v.Members[n.Name]; ok {
			return m, true
		}
		return c.fail(n.Pos(), "Class '%s' has no member '%s'", v.Name, n.Name)
	case memberHolder:
		if m, ok := v.GetStr(n.Name); ok {
			return m, true
		}
		return c.fail(n.Pos(), "'%s' has no member '%s'", x.TypeName(), n.Name)
	}
	return c.fail(n.Pos(), "'%s' has no members", x.TypeName())
}

func (c *Context) evalIndex(n *ast.IndexExpr) (object.Value, bool) {
	x, ok := c.Eval(n.X)
	if !ok {
		return x, false
	}
	idx, ok := c.Eval(n.Index)
	if !ok {
		return idx, false
	}
	v, err := object.GetIndex(x, idx)
	if err != nil {
		return c.fail(n.Pos(), "%s", err)
	}
	return v, true
}

// evalLet implements spec.md §4.9's assignment: a dotted/indexed path
// `a.b.c[i] = v`. All segments but the last are member lookups; the
// last segment (or a trailing index) performs the set. A bare `let a =
// v` with no path goes through setVar, which creates `a` in the current
// scope if it's not already bound anywhere visible.
func (c *Context) evalLet(n *ast.LetExpr) (object.Value, bool) {
	val, ok := c.Eval(n.Value)
	if !ok {
		return val, false
	}

	if len(n.Path) == 0 && n.Index == nil {
		c.setVar(n.Name, val)
		return val, true
	}

	root, ok := c.getVar(n.Name)
	if !ok {
		return c.fail(n.Pos(), "Name '%s' is not defined", n.Name)
	}

	cur := root
	for i, seg := range n.Path {
		last := i == len(n.Path)-1 && n.Index == nil
		holder, ok := cur.(memberHolder)
		if !ok {
			return c.fail(n.Pos(), "'%s' has no member '%s'", cur.TypeName(), seg)
		}
		if last {
			if err := holder.Set(object.NewString(seg), val); err != nil {
				return c.fail(n.Pos(), "%s", err)
			}
			return val, true
		}
		next, ok := holder.GetStr(seg)
		if !ok {
			return c.fail(n.Pos(), "'%s' has no member '%s'", cur.TypeName(), seg)
		}
		cur = next
	}

	if n.Index != nil {
		idx, ok := c.Eval(n.Index)
		if !ok {
			return idx, false
		}
		if err := object.SetIndex(cur, idx, val); err != nil {
			return c.fail(n.Pos(), "%s", err)
		}
		return val, true
	}
	return val, true
}
