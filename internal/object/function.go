package object

import (
	"fmt"

	"github.com/pixelthegreat/emerald/internal/ast"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Function is a user-defined Emerald function (spec.md §4.8). It carries
// no captured environment: per spec.md §3, a call only ever sees the
// root scope plus its own fresh local scope, never the caller's
// intermediate scopes — there is nothing here to close over.
type Function struct {
	Name     string // "" if anonymous
	ArgNames []string
	Body     *ast.Block
}

func (*Function) TypeName() string { return "Function" }
func (*Function) Truthy() bool     { return true }
func (f *Function) Str() string {
	if f.Name != "" {
		return fmt.Sprintf("<function %s>", f.Name)
	}
	return "<function>"
}

// Call delegates to the evaluator, which owns scope push/pop and AST
// walking; Function itself is inert data, matching the "call" slot in
// spec.md §4.6's vtable rather than containing tree-walking logic.
func (f *Function) Call(ev Evaluator, args []Value, pos token.Position) (Value, error) {
	return ev.CallFunction(f, args, pos)
}

// BuiltinHandler is the Go-native implementation behind a Builtin.
type BuiltinHandler func(ev Evaluator, args []Value, pos token.Position) (Value, error)

// Builtin wraps a stdlib-provided native function (spec.md §4.8's
// "native" callable kind, e.g. os.sleep, array.Array, site.print).
type Builtin struct {
	Name    string
	Handler BuiltinHandler
}

func NewBuiltin(name string, h BuiltinHandler) *Builtin { return &Builtin{Name: name, Handler: h} }

func (*Builtin) TypeName() string { return "Builtin" }
func (*Builtin) Truthy() bool     { return true }
func (b *Builtin) Str() string    { return fmt.Sprintf("<builtin %s>", b.Name) }

func (b *Builtin) Call(ev Evaluator, args []Value, pos token.Position) (Value, error) {
	return b.Handler(ev, args, pos)
}

// BoundMethod pairs a callable with a receiver, prepending the receiver
// to the argument list on invocation (spec.md §4.8/§4.7: class
// instantiation re-binds each method's receiver to the new instance).
type BoundMethod struct {
	Receiver Value
	Method   Callable
}

func (*BoundMethod) TypeName() string { return "BoundMethod" }
func (*BoundMethod) Truthy() bool     { return true }
func (m *BoundMethod) Str() string    { return "<bound method>" }

func (m *BoundMethod) Call(ev Evaluator, args []Value, pos token.Position) (Value, error) {
	full := make([]Value, 0, len(args)+1)
	full = append(full, m.Receiver)
	full = append(full, args...)
	return m.Method.Call(ev, full, pos)
}
