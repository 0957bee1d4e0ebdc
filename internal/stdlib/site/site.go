// Package site implements the `site` bindings (spec.md §6): the handful
// of functions and constants bound directly into the root scope rather
// than behind a `__module_*` namespace. lengthOf/toString/true/false/none
// are grounded on original_source/src/emerald/module/site.c; append/exit/
// print/println/argv are supplements (spec.md §6 names them but
// original_source's site.c predates them — they live alongside the
// language's List/SystemExit/Out machinery instead).
package site

import (
	"fmt"

	"github.com/pixelthegreat/emerald/internal/evaluator"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/stdlib"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Register binds the site functions/constants directly into c's root
// scope (no __module_site wrapper, matching site.c's em_util_set_value
// calls against the context itself rather than a sub-map).
func Register(c *evaluator.Context) {
	root := c.Scopes[0]

	root.Set(object.NewString("lengthOf"), object.NewBuiltin("lengthOf", lengthOf))
	root.Set(object.NewString("toString"), object.NewBuiltin("toString", toStringFn))
	root.Set(object.NewString("append"), object.NewBuiltin("append", appendFn))
	root.Set(object.NewString("exit"), object.NewBuiltin("exit", exitFn))
	root.Set(object.NewString("print"), object.NewBuiltin("print", printFn))
	root.Set(object.NewString("println"), object.NewBuiltin("println", printlnFn))

	root.Set(object.NewString("true"), object.Int(1))
	root.Set(object.NewString("false"), object.Int(0))
	root.Set(object.NewString("none"), object.None)

	argv := make([]object.Value, 0, len(c.Argv))
	for _, a := range c.Argv {
		argv = append(argv, object.NewString(a))
	}
	root.Set(object.NewString("argv"), object.NewList(argv))
}

func lengthOf(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "lengthOf", args, 1); err != nil {
		return nil, err
	}
	n, err := object.LengthOf(args[0])
	if err != nil {
		return nil, ev.RuntimeError(pos, "%s", err)
	}
	return object.Int(n), nil
}

func toStringFn(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "toString", args, 1); err != nil {
		return nil, err
	}
	s, err := object.ToString(ev, args[0])
	if err != nil {
		return nil, ev.RuntimeError(pos, "%s", err)
	}
	return object.NewString(s), nil
}

// appendFn implements `append(list, value)`, growing list in place and
// returning none — List is a reference type (spec.md §3), so this is
// the language-level face of *object.List.Append.
func appendFn(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	if err := stdlib.Arity(ev, pos, "append", args, 2); err != nil {
		return nil, err
	}
	list, ok := args[0].(*object.List)
	if !ok {
		return nil, ev.RuntimeError(pos, "append: argument 1 must be a List, got %s", args[0].TypeName())
	}
	list.Append(args[1])
	return object.None, nil
}

// exitFn implements `exit(code)`: sets the interpreter's exit-code slot
// and raises SystemExit, unwinding every frame up to the top level
// (spec.md §6/§7: "the integer carried by SystemExit(N)" becomes the
// process exit code).
func exitFn(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	c, ok := ev.(*evaluator.Context)
	if !ok {
		return nil, ev.RuntimeError(pos, "exit is only callable from the top-level interpreter")
	}
	code := int64(0)
	if len(args) > 0 {
		n, err := stdlib.Int(ev, pos, "exit", args, 0)
		if err != nil {
			return nil, err
		}
		code = n
	}
	c.ExitCode = int(code)
	c.Exiting = true
	c.RaiseSignal(c.Classes.SystemExit, pos)
	return nil, c.Raised()
}

func printFn(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	c, ok := ev.(*evaluator.Context)
	if !ok {
		return nil, ev.RuntimeError(pos, "print is only callable from the top-level interpreter")
	}
	for _, a := range args {
		s, err := object.ToString(ev, a)
		if err != nil {
			return nil, ev.RuntimeError(pos, "%s", err)
		}
		fmt.Fprint(c.Out, s)
	}
	return object.None, nil
}

func printlnFn(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
	c, ok := ev.(*evaluator.Context)
	if !ok {
		return nil, ev.RuntimeError(pos, "println is only callable from the top-level interpreter")
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		s, err := object.ToString(ev, a)
		if err != nil {
			return nil, ev.RuntimeError(pos, "%s", err)
		}
		parts = append(parts, s)
	}
	fmt.Fprintln(c.Out, join(parts))
	return object.None, nil
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}
