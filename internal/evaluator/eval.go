package evaluator

import (
	"fmt"
	"strings"

	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Eval walks one AST node and returns its value, or (_, false) if an
// error/signal is now pending on c.Diag — the Go shape of spec.md §7's
// "typed sentinel failure value".
func (c *Context) Eval(n ast.Node) (object.Value, bool) {
	switch n := n.(type) {
	case *ast.Program:
		return c.evalStatements(n.Statements)

	case *ast.ExpressionStatement:
		return c.Eval(n.X)
	case *ast.ContinueStatement:
		c.RaiseSignal(c.Classes.SystemContinue, n.Pos())
		return object.None, false
	case *ast.BreakStatement:
		c.RaiseSignal(c.Classes.SystemBreak, n.Pos())
		return object.None, false
	case *ast.ReturnStatement:
		return c.evalReturn(n)
	case *ast.RaiseStatement:
		return c.evalRaise(n)
	case *ast.IncludeStatement:
		return c.evalInclude(n)

	case *ast.IntLiteral:
		return object.Int(n.Value), true
	case *ast.FloatLiteral:
		return object.Float(n.Value), true
	case *ast.StringLiteral:
		return object.NewString(n.Value), true
	case *ast.Identifier:
		if v, ok := c.getVar(n.Name); ok {
			return v, true
		}
		return c.fail(n.Pos(), "Name '%s' is not defined", n.Name)
	case *ast.ListLiteral:
		return c.evalListLiteral(n)
	case *ast.MapLiteral:
		return c.evalMapLiteral(n)

	case *ast.UnaryExpr:
		return c.evalUnary(n)
	case *ast.BinaryExpr:
		return c.evalBinary(n)

	case *ast.CallExpr:
		return c.evalCall(n)
	case *ast.MemberExpr:
		return c.evalMember(n)
	case *ast.IndexExpr:
		return c.evalIndex(n)
	case *ast.LetExpr:
		return c.evalLet(n)

	case *ast.FuncExpr:
		return c.evalFuncExpr(n)
	case *ast.ClassExpr:
		return c.evalClassExpr(n)

	case *ast.TryExpr:
		return c.evalTry(n)
	case *ast.IfExpr:
		return c.evalIf(n)
	case *ast.ForExpr:
		return c.evalFor(n)
	case *ast.ForeachExpr:
		return c.evalForeach(n)
	case *ast.WhileExpr:
		return c.evalWhile(n)

	case *ast.PutsExpr:
		return c.evalPuts(n)
	}
	return c.fail(n.Pos(), "cannot evaluate %T", n)
}

func (c *Context) fail(pos token.Position, format string, args ...any) (object.Value, bool) {
	c.Raise(c.Classes.RuntimeError, pos, format, args...)
	return object.None, false
}

// evalStatements runs a flat statement list in order, as both Program
// and (indirectly) evalBlock do — the value is the last statement's
// value, none for an empty list (spec.md §4.9's visit_block).
func (c *Context) evalStatements(stmts []ast.Statement) (object.Value, bool) {
	var last object.Value = object.None
	for _, s := range stmts {
		v, ok := c.Eval(s)
		if !ok {
			return v, false
		}
		last = v
	}
	return last, true
}

// evalBlock runs a block's statements in its own pushed scope (spec.md
// §4.9: "nested class and control-flow constructs push/pop scopes too").
func (c *Context) evalBlock(b *ast.Block) (object.Value, bool) {
	return c.withBlockScope(func() (object.Value, bool) {
		return c.evalStatements(b.Statements)
	})
}

func (c *Context) evalReturn(n *ast.ReturnStatement) (object.Value, bool) {
	var v object.Value = object.None
	if n.Value != nil {
		var ok bool
		v, ok = c.Eval(n.Value)
		if !ok {
			return v, false
		}
	}
	c.Pass = v
	c.RaiseSignal(c.Classes.SystemReturn, n.Pos())
	return object.None, false
}

// evalRaise implements `raise EXPR` (spec.md §4.9), where EXPR must
// evaluate to a Class, a String, or an error Instance. A String is
// auto-wrapped into a RuntimeError instance carrying it as `_message`
// (SPEC_FULL.md §4, resolved Open Question 2).
func (c *Context) evalRaise(n *ast.RaiseStatement) (object.Value, bool) {
	v, ok := c.Eval(n.Value)
	if !ok {
		return v, false
	}
	switch val := v.(type) {
	case *object.Class:
		c.Raise(val, n.Pos(), "%s", val.Name)
		return object.None, false
	case *object.String:
		c.Raise(c.Classes.RuntimeError, n.Pos(), "%s", val.Value)
		return object.None, false
	case *object.Instance:
		// Re-raising an already-instantiated error (e.g. caught, then
		// `raise e` again): reuse its own _class/_message if present.
		class := c.Classes.RuntimeError
		if cv, ok := val.GetStr("_class"); ok {
			if cl, ok := cv.(*object.Class); ok {
				class = cl
			}
		}
		msg := val.Class.Name
		if mv, ok := val.GetStr("_message"); ok {
			if s, ok := mv.(*object.String); ok {
				msg = s.Value
			}
		}
		c.Raise(class, n.Pos(), "%s", msg)
		return object.None, false
	}
	return c.fail(n.Pos(), "raise requires a Class, String, or error instance")
}

func (c *Context) evalListLiteral(n *ast.ListLiteral) (object.Value, bool) {
	elems := make([]object.Value, 0, len(n.Elements))
	for _, e := range n.Elements {
		v, ok := c.Eval(e)
		if !ok {
			return v, false
		}
		elems = append(elems, v)
	}
	return object.NewList(elems), true
}

func (c *Context) evalMapLiteral(n *ast.MapLiteral) (object.Value, bool) {
	m := object.NewMap()
	for _, entry := range n.Entries {
		k, ok := c.Eval(entry.Key)
		if !ok {
			return k, false
		}
		v, ok := c.Eval(entry.Value)
		if !ok {
			return v, false
		}
		if err := m.Set(k, v); err != nil {
			return c.fail(n.Pos(), "%s", err)
		}
	}
	return m, true
}

func (c *Context) evalUnary(n *ast.UnaryExpr) (object.Value, bool) {
	v, ok := c.Eval(n.X)
	if !ok {
		return v, false
	}
	switch n.Op {
	case "not":
		return object.Int(boolToInt(!v.Truthy())), true
	case "-":
		switch x := v.(type) {
		case object.Int:
			return -x, true
		case object.Float:
			return -x, true
		}
		return c.fail(n.Pos(), "invalid operand for unary -: %s", v.TypeName())
	case "+":
		switch v.(type) {
		case object.Int, object.Float:
			return v, true
		}
		return c.fail(n.Pos(), "invalid operand for unary +: %s", v.TypeName())
	case "~":
		if x, ok := v.(object.Int); ok {
			return ^x, true
		}
		return c.fail(n.Pos(), "invalid operand for ~: %s", v.TypeName())
	}
	return c.fail(n.Pos(), "unknown unary operator %q", n.Op)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// evalBinary implements spec.md §4.6/§5: arithmetic/bitwise/comparison
// through object's uniform dispatch, and non-short-circuit `and`/`or`
// (both operands always evaluated, truth-coerced to Int 0/1).
func (c *Context) evalBinary(n *ast.BinaryExpr) (object.Value, bool) {
	left, ok := c.Eval(n.Left)
	if !ok {
		return left, false
	}
	right, ok := c.Eval(n.Right)
	if !ok {
		return right, false
	}

	if n.LogicAnd {
		return object.Int(boolToInt(left.Truthy() && right.Truthy())), true
	}
	if n.LogicOr {
		return object.Int(boolToInt(left.Truthy() || right.Truthy())), true
	}

	var result object.Value
	var err error
	switch n.Op {
	case "+":
		result, err = object.Add(left, right)
	case "-":
		result, err = object.Sub(left, right)
	case "*":
		result, err = object.Mul(left, right)
	case "/":
		result, err = object.Div(left, right)
	case "%":
		result, err = object.Mod(left, right)
	case "|":
		result, err = object.Or(left, right)
	case "&":
		result, err = object.And(left, right)
	case "<<":
		result, err = object.Shl(left, right)
	case ">>":
		result, err = object.Shr(left, right)
	case "==":
		return object.Int(boolToInt(object.Equal(left, right))), true
	case "!=":
		return object.Int(boolToInt(!object.Equal(left, right))), true
	case "<":
		var b bool
		b, err = object.Less(left, right)
		result = object.Int(boolToInt(b))
	case ">":
		var b bool
		b, err = object.Greater_(left, right)
		result = object.Int(boolToInt(b))
	case "<=":
		var b bool
		b, err = object.Greater_(left, right)
		result = object.Int(boolToInt(!b))
	case ">=":
		var b bool
		b, err = object.Less(left, right)
		result = object.Int(boolToInt(!b))
	default:
		return c.fail(n.Pos(), "unknown binary operator %q", n.Op)
	}
	if err != nil {
		return c.fail(n.Pos(), "%s", err)
	}
	return result, true
}

// evalPuts implements spec.md §4.9's Puts: each argument converted via
// value.to_string and written space-separated, newline-terminated.
func (c *Context) evalPuts(n *ast.PutsExpr) (object.Value, bool) {
	parts := make([]string, 0, len(n.Args))
	for _, a := range n.Args {
		v, ok := c.Eval(a)
		if !ok {
			return v, false
		}
		s, err := object.ToString(c, v)
		if err != nil {
			return c.fail(n.Pos(), "%s", err)
		}
		parts = append(parts, s)
	}
	fmt.Fprintln(c.Out, strings.Join(parts, " "))
	return object.None, true
}
