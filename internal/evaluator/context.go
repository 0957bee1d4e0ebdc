// Package evaluator implements Emerald's tree-walking evaluator (spec.md
// §4.9): a Context owning the scope stack, directory search stack,
// include log, and raised-error channel, plus the Eval dispatcher that
// walks internal/ast nodes.
//
// Grounded on funvibe-funxy/internal/evaluator/evaluator.go's Evaluator
// struct shape, simplified from its Accept(Visitor) double-dispatch to a
// plain type switch in eval.go — Emerald has one tree-walker and no
// planned second backend, so the visitor indirection buys nothing here.
package evaluator

import (
	"fmt"
	"io"

	"github.com/pixelthegreat/emerald/internal/diag"
	"github.com/pixelthegreat/emerald/internal/object"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Classes holds the seven builtin error/signal classes (spec.md §4.2).
type Classes struct {
	Error          *object.Class
	SyntaxError    *object.Class
	RuntimeError   *object.Class
	SystemBreak    *object.Class
	SystemContinue *object.Class
	SystemReturn   *object.Class
	SystemExit     *object.Class
}

// Context is the interpreter's per-instance mutable state: scope stack,
// directory stack, include log and pass slot. It holds no lexer or
// parser; RunFile parses each file through parser.ParseFile. The
// raised-error channel is a field here rather than process
// global state, per SPEC_FULL.md §4's resolved Open Question 4.
type Context struct {
	Scopes    []*object.Map
	DirStack  []string
	Included  map[string]bool
	Diag      diag.Channel
	Pass      object.Value // carries a `return` value across SystemReturn
	ExitCode  int
	Exiting   bool
	Classes   Classes
	Out       io.Writer
	Argv      []string
	StdlibDir string
}

// New builds a Context with its root scope and builtin classes ready.
func New(out io.Writer, stdlibDir string, argv []string) *Context {
	c := &Context{
		Scopes:    []*object.Map{object.NewMap()},
		Included:  map[string]bool{},
		Out:       out,
		Argv:      argv,
		StdlibDir: stdlibDir,
	}
	c.Classes = newBuiltinClasses()
	c.bindBuiltinClasses()
	return c
}

func newBuiltinClasses() Classes {
	errClass := object.NewClass("Error", nil)
	return Classes{
		Error:          errClass,
		SyntaxError:    object.NewClass("SyntaxError", errClass),
		RuntimeError:   object.NewClass("RuntimeError", errClass),
		SystemBreak:    object.NewClass("SystemBreak", errClass),
		SystemContinue: object.NewClass("SystemContinue", errClass),
		SystemReturn:   object.NewClass("SystemReturn", errClass),
		SystemExit:     object.NewClass("SystemExit", errClass),
	}
}

// bindBuiltinClasses makes the seven error/signal classes reachable as
// plain identifiers (spec.md §7's taxonomy table — `catch e = Error`,
// `raise SystemExit`, and the like all resolve a bare name to a Class
// value the same way a user `class` statement would bind one).
func (c *Context) bindBuiltinClasses() {
	root := c.Scopes[0]
	for _, cls := range []*object.Class{
		c.Classes.Error,
		c.Classes.SyntaxError,
		c.Classes.RuntimeError,
		c.Classes.SystemBreak,
		c.Classes.SystemContinue,
		c.Classes.SystemReturn,
		c.Classes.SystemExit,
	} {
		root.Set(object.NewString(cls.Name), cls)
	}
}

// errRaised is returned by Context methods that satisfy object.Evaluator
// (CallFunction, RuntimeError) to signal "an error is pending on the
// diag channel, unwind" — the Go equivalent of spec.md §7's "sentinel
// failure value".
var errRaised = fmt.Errorf("emerald: raised")

// newErrorInstance builds the `{_class, _message, _toString}` object
// spec.md §4.2/§7 describes: an Instance of class whose `_toString`
// closes over message directly, since the message is already known at
// construction time and doesn't need a bound-method receiver lookup.
func newErrorInstance(class *object.Class, message string) *object.Instance {
	inst := object.NewInstance(class)
	inst.Set(object.NewString("_class"), class)
	inst.Set(object.NewString("_message"), object.NewString(message))
	inst.Set(object.NewString("_toString"), object.NewBuiltin("_toString",
		func(ev object.Evaluator, args []object.Value, pos token.Position) (object.Value, error) {
			return object.NewString(message), nil
		}))
	return inst
}

// Raise queues class with a formatted message, wrapping it in an
// `{_class,_message,_toString}` instance so `try/catch` has something to
// bind (spec.md §4.9's try/catch paragraph).
func (c *Context) Raise(class *object.Class, pos token.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	inst := newErrorInstance(class, msg)
	c.Diag.RaiseValue(&diag.Raised{Class: class, Message: msg, Pos: pos, Payload: inst})
}

// RaiseSignal queues one of the control-flow signal classes with no
// message payload (break/continue/return) — still wrapped as an
// instance so the channel's payload shape is uniform.
func (c *Context) RaiseSignal(class *object.Class, pos token.Position) {
	c.Diag.RaiseValue(&diag.Raised{Class: class, Pos: pos, Payload: newErrorInstance(class, "")})
}

// RuntimeError raises a c.Classes.RuntimeError error and returns
// errRaised, satisfying object.Evaluator so builtins can
// `return nil, ev.RuntimeError(pos, ...)`.
func (c *Context) RuntimeError(pos token.Position, format string, args ...any) error {
	c.Raise(c.Classes.RuntimeError, pos, format, args...)
	return errRaised
}

// Fail is an evaluator-internal alias of RuntimeError, used where the
// call site wants the plain `error` return shape (e.g. pushScope).
func (c *Context) Fail(pos token.Position, format string, args ...any) error {
	return c.RuntimeError(pos, format, args...)
}

// Raised returns the sentinel error a Builtin returns after it has
// already queued something on the diag channel itself (e.g. site.exit
// calling RaiseSignal directly) — the call site (evalCall) recognizes
// this sentinel and unwinds without raising a second, competing error.
func (c *Context) Raised() error { return errRaised }

// payloadValue extracts the object.Value carried by a diag.Raised built
// through Raise/RaiseSignal above.
func payloadValue(r *diag.Raised) object.Value {
	if r == nil {
		return object.None
	}
	if v, ok := r.Payload.(object.Value); ok {
		return v
	}
	return object.None
}
