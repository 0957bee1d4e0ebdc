package evaluator

import (
	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/object"
)

// evalIf implements spec.md §4.9's if/elif/else: evaluate guards
// top-to-bottom until one is truthy, run its block, skip the rest.
func (c *Context) evalIf(n *ast.IfExpr) (object.Value, bool) {
	for _, branch := range n.Branches {
		cond, ok := c.Eval(branch.Cond)
		if !ok {
			return cond, false
		}
		if cond.Truthy() {
			return c.evalBlock(branch.Body)
		}
	}
	if n.Else != nil {
		return c.evalBlock(n.Else)
	}
	return object.None, true
}

// loopSignal catches break/continue on the channel, reporting whether
// the loop should stop entirely (break) vs. just skip to the next
// iteration (continue). Any other pending error propagates unhandled.
func (c *Context) loopSignal() (brk bool, cont bool, other bool) {
	if c.Diag.Catch(c.Classes.SystemBreak) {
		c.Diag.Clear()
		return true, false, false
	}
	if c.Diag.Catch(c.Classes.SystemContinue) {
		c.Diag.Clear()
		return false, true, false
	}
	return false, false, true
}

// evalFor implements `for IDENT = START to END then … end` (spec.md
// §4.9): START/END must be Int; IDENT is rebound each iteration and
// re-read from scope after the body so the body may mutate the counter.
func (c *Context) evalFor(n *ast.ForExpr) (object.Value, bool) {
	startV, ok := c.Eval(n.Start)
	if !ok {
		return startV, false
	}
	endV, ok := c.Eval(n.End)
	if !ok {
		return endV, false
	}
	start, ok := startV.(object.Int)
	if !ok {
		return c.fail(n.Pos(), "for-loop start must be Int, got %s", startV.TypeName())
	}
	end, ok := endV.(object.Int)
	if !ok {
		return c.fail(n.Pos(), "for-loop end must be Int, got %s", endV.TypeName())
	}

	c.defineVar(n.Var, start)
	for {
		cur, _ := c.getVar(n.Var)
		i, ok := cur.(object.Int)
		if !ok || i >= end {
			break
		}
		_, ok = c.evalBlock(n.Body)
		if !ok {
			brk, cont, other := c.loopSignal()
			if other {
				return object.None, false
			}
			if brk {
				break
			}
			if cont {
				// fall through to increment below
			}
		}
		cur, _ = c.getVar(n.Var)
		i, _ = cur.(object.Int)
		c.setVar(n.Var, i+1)
	}
	return object.None, true
}

// evalForeach implements `foreach IDENT in EXPR then … end` (spec.md
// §4.9): indexes 0..length_of(EXPR).
func (c *Context) evalForeach(n *ast.ForeachExpr) (object.Value, bool) {
	seq, ok := c.Eval(n.Seq)
	if !ok {
		return seq, false
	}
	length, err := object.LengthOf(seq)
	if err != nil {
		return c.fail(n.Pos(), "%s", err)
	}

	for i := 0; i < length; i++ {
		elem, err := object.GetIndex(seq, object.Int(i))
		if err != nil {
			return c.fail(n.Pos(), "%s", err)
		}
		c.defineVar(n.Var, elem)
		_, ok := c.evalBlock(n.Body)
		if !ok {
			brk, cont, other := c.loopSignal()
			if other {
				return object.None, false
			}
			if brk {
				break
			}
			_ = cont
		}
	}
	return object.None, true
}

// evalWhile implements `while COND then … end` (spec.md §4.9): COND is
// re-evaluated every iteration.
func (c *Context) evalWhile(n *ast.WhileExpr) (object.Value, bool) {
	for {
		cond, ok := c.Eval(n.Cond)
		if !ok {
			return cond, false
		}
		if !cond.Truthy() {
			break
		}
		_, ok = c.evalBlock(n.Body)
		if !ok {
			brk, cont, other := c.loopSignal()
			if other {
				return object.None, false
			}
			if brk {
				break
			}
			_ = cont
		}
	}
	return object.None, true
}

// evalTry implements spec.md §4.9's try/catch: evaluate the try block;
// if it raised, check the catch clause's class (if any) against the
// raised class via inheritance; on match, bind the optional identifier
// to the raised error object and run the catch body; on mismatch, leave
// the error raised for an outer frame.
func (c *Context) evalTry(n *ast.TryExpr) (object.Value, bool) {
	v, ok := c.evalBlock(n.Try)
	if ok {
		return v, true
	}

	var matchClass *object.Class
	if n.CatchClass != nil {
		cv, ok := c.Eval(n.CatchClass)
		if !ok {
			return cv, false
		}
		cc, ok := cv.(*object.Class)
		if !ok {
			return c.fail(n.Pos(), "catch clause class must be a Class, got %s", cv.TypeName())
		}
		matchClass = cc
	}

	raised := c.Diag.Pending()
	if raised == nil {
		return object.None, false // nothing actually pending (shouldn't happen)
	}
	if matchClass != nil {
		rc, ok := raised.Class.(*object.Class)
		if !ok || !rc.Inherits(matchClass) {
			return object.None, false // mismatch: leave raised for an outer frame
		}
	}

	errVal := payloadValue(raised)
	c.Diag.Clear()

	return c.withBlockScope(func() (object.Value, bool) {
		if n.CatchName != "" {
			c.defineVar(n.CatchName, errVal)
		}
		return c.evalStatements(n.Catch.Statements)
	})
}
