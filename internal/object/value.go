// Package object implements Emerald's value model (spec.md §3/§4.6): a
// tagged value {NONE, INT, FLOAT, OBJECT} whose operations are reached
// through a uniform dispatch surface rather than a type-test ladder at
// each call site.
//
// Shaped on funvibe-funxy/internal/evaluator/object.go's Object interface
// (Type()/Inspect()/Hash()), generalized from a single tag+stringify pair
// into the richer optional-capability surface spec.md §4.6 requires:
// arithmetic, bitwise, comparison, indexing, call, and length are each a
// small interface a Value may or may not implement. A missing capability
// is "operation not supported" — the same meaning as a nil vtable slot in
// the C original — and dispatch is a single type assertion, not a switch
// over every concrete kind.
package object

import (
	"fmt"
	"math"

	"github.com/pixelthegreat/emerald/internal/token"
)

// Value is implemented by every Emerald runtime value: the two numeric
// primitives, the None singleton, and every heap object kind.
type Value interface {
	TypeName() string
	Truthy() bool
	Str() string // to_string default; overridden by CustomStringer when present
}

// Evaluator is the capability surface object values need from the
// interpreter to perform a call (spec.md §4.8) — calling a user function
// means pushing a scope and walking its body, which only the evaluator
// package can do. Kept minimal and structural so internal/object never
// imports internal/evaluator.
type Evaluator interface {
	CallFunction(fn *Function, args []Value, pos token.Position) (Value, error)
	RuntimeError(pos token.Position, format string, args ...any) error
}

// ---- capability interfaces (the "vtable") ----

type Adder interface {
	Add(Value) (Value, error)
}
type Suber interface {
	Sub(Value) (Value, error)
}
type Muler interface {
	Mul(Value) (Value, error)
}
type Diver interface {
	Div(Value) (Value, error)
}
type Moder interface {
	Mod(Value) (Value, error)
}
type Orer interface {
	Or(Value) (Value, error)
}
type Ander interface {
	And(Value) (Value, error)
}
type Shler interface {
	Shl(Value) (Value, error)
}
type Shrer interface {
	Shr(Value) (Value, error)
}
type Eqer interface {
	Eq(Value) bool
}
type Lesser interface {
	Lt(Value) (bool, error)
}
type Greater interface {
	Gt(Value) (bool, error)
}
type Hasher interface {
	Hash() (uint32, bool)
}
type Indexable interface {
	GetIndex(Value) (Value, error)
	SetIndex(Value, Value) error
}
type Lengthable interface {
	Len() int
}
type Callable interface {
	Call(ev Evaluator, args []Value, pos token.Position) (Value, error)
}
type CustomStringer interface {
	CustomStr(ev Evaluator) (string, error)
}

// ---- generic dispatch helpers ----

func invalidOp(op string) error { return fmt.Errorf("invalid operation: %s", op) }

func Add(a, b Value) (Value, error) {
	if v, ok := a.(Adder); ok {
		return v.Add(b)
	}
	return nil, invalidOp("+")
}
func Sub(a, b Value) (Value, error) {
	if v, ok := a.(Suber); ok {
		return v.Sub(b)
	}
	return nil, invalidOp("-")
}
func Mul(a, b Value) (Value, error) {
	if v, ok := a.(Muler); ok {
		return v.Mul(b)
	}
	return nil, invalidOp("*")
}
func Div(a, b Value) (Value, error) {
	if v, ok := a.(Diver); ok {
		return v.Div(b)
	}
	return nil, invalidOp("/")
}
func Mod(a, b Value) (Value, error) {
	if v, ok := a.(Moder); ok {
		return v.Mod(b)
	}
	return nil, invalidOp("%")
}
func Or(a, b Value) (Value, error) {
	if v, ok := a.(Orer); ok {
		return v.Or(b)
	}
	return nil, invalidOp("|")
}
func And(a, b Value) (Value, error) {
	if v, ok := a.(Ander); ok {
		return v.And(b)
	}
	return nil, invalidOp("&")
}
func Shl(a, b Value) (Value, error) {
	if v, ok := a.(Shler); ok {
		return v.Shl(b)
	}
	return nil, invalidOp("<<")
}
func Shr(a, b Value) (Value, error) {
	if v, ok := a.(Shrer); ok {
		return v.Shr(b)
	}
	return nil, invalidOp(">>")
}

// Equal implements spec.md §4.6's default: identity when no vtable entry
// exists. Pointer-identity concrete types (all heap objects) compare
// equal by Go's `==` on the interface when they're the same pointer;
// numeric/string types implement Eqer explicitly for value equality and
// cross-kind (Int/Float) promotion.
func Equal(a, b Value) bool {
	if v, ok := a.(Eqer); ok {
		return v.Eq(b)
	}
	return a == b
}

func Less(a, b Value) (bool, error) {
	if v, ok := a.(Lesser); ok {
		return v.Lt(b)
	}
	return false, invalidOp("<")
}
func Greater_(a, b Value) (bool, error) {
	if v, ok := a.(Greater); ok {
		return v.Gt(b)
	}
	return false, invalidOp(">")
}

// HashOf returns a value's hash and whether it is hashable at all.
func HashOf(v Value) (uint32, bool) {
	if h, ok := v.(Hasher); ok {
		return h.Hash()
	}
	return 0, false
}

func GetIndex(v, key Value) (Value, error) {
	if ix, ok := v.(Indexable); ok {
		return ix.GetIndex(key)
	}
	return nil, invalidOp("index")
}
func SetIndex(v, key, val Value) error {
	if ix, ok := v.(Indexable); ok {
		return ix.SetIndex(key, val)
	}
	return invalidOp("index assignment")
}

func LengthOf(v Value) (int, error) {
	if l, ok := v.(Lengthable); ok {
		return l.Len(), nil
	}
	return 0, invalidOp("length")
}

// ToString dispatches to CustomStr when implemented (e.g. Map/Instance
// looking up a user `_toString` method), otherwise falls back to Str().
func ToString(ev Evaluator, v Value) (string, error) {
	if cs, ok := v.(CustomStringer); ok {
		return cs.CustomStr(ev)
	}
	return v.Str(), nil
}

func CallValue(ev Evaluator, callee Value, args []Value, pos token.Position) (Value, error) {
	if c, ok := callee.(Callable); ok {
		return c.Call(ev, args, pos)
	}
	return nil, invalidOp("call")
}

// ---- None ----

type noneValue struct{}

// None is the single shared NONE value (spec.md §3: "sentinel; one shared
// heap object").
var None Value = noneValue{}

func (noneValue) TypeName() string { return "None" }
func (noneValue) Truthy() bool     { return false }
func (noneValue) Str() string      { return "(None)" }
func (noneValue) Eq(v Value) bool  { _, ok := v.(noneValue); return ok }
func (noneValue) Hash() (uint32, bool) { return 0, true }

// ---- Int ----

type Int int64

func (Int) TypeName() string { return "Int" }
func (i Int) Truthy() bool   { return i != 0 }
func (i Int) Str() string    { return fmt.Sprintf("%d", int64(i)) }

func (i Int) Add(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return i + o, nil
	case Float:
		return Float(i) + o, nil
	}
	return nil, invalidOp("+")
}
func (i Int) Sub(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return i - o, nil
	case Float:
		return Float(i) - o, nil
	}
	return nil, invalidOp("-")
}
func (i Int) Mul(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return i * o, nil
	case Float:
		return Float(i) * o, nil
	}
	return nil, invalidOp("*")
}
func (i Int) Div(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		if o == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return i / o, nil
	case Float:
		return Float(i) / o, nil
	}
	return nil, invalidOp("/")
}
func (i Int) Mod(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		if o == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return i % o, nil
	case Float:
		return Float(math.Mod(float64(i), float64(o))), nil
	}
	return nil, invalidOp("%")
}
func (i Int) Or(b Value) (Value, error) {
	if o, ok := b.(Int); ok {
		return i | o, nil
	}
	return nil, invalidOp("|")
}
func (i Int) And(b Value) (Value, error) {
	if o, ok := b.(Int); ok {
		return i & o, nil
	}
	return nil, invalidOp("&")
}
func (i Int) Shl(b Value) (Value, error) {
	if o, ok := b.(Int); ok {
		return i << uint(o), nil
	}
	return nil, invalidOp("<<")
}
func (i Int) Shr(b Value) (Value, error) {
	if o, ok := b.(Int); ok {
		return i >> uint(o), nil
	}
	return nil, invalidOp(">>")
}
func (i Int) Eq(b Value) bool {
	switch o := b.(type) {
	case Int:
		return i == o
	case Float:
		return Float(i) == o
	}
	return false
}
func (i Int) Lt(b Value) (bool, error) {
	switch o := b.(type) {
	case Int:
		return i < o, nil
	case Float:
		return Float(i) < o, nil
	}
	return false, invalidOp("<")
}
func (i Int) Gt(b Value) (bool, error) {
	switch o := b.(type) {
	case Int:
		return i > o, nil
	case Float:
		return Float(i) > o, nil
	}
	return false, invalidOp(">")
}

// Hash for Int is the integer bit pattern (spec.md §4.6).
func (i Int) Hash() (uint32, bool) { return uint32(uint64(i)), true }

// ---- Float ----

type Float float64

func (Float) TypeName() string { return "Float" }
func (f Float) Truthy() bool   { return f != 0 }
func (f Float) Str() string    { return fmt.Sprintf("%g", float64(f)) }

func (f Float) Add(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return f + Float(o), nil
	case Float:
		return f + o, nil
	}
	return nil, invalidOp("+")
}
func (f Float) Sub(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return f - Float(o), nil
	case Float:
		return f - o, nil
	}
	return nil, invalidOp("-")
}
func (f Float) Mul(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return f * Float(o), nil
	case Float:
		return f * o, nil
	}
	return nil, invalidOp("*")
}
func (f Float) Div(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return f / Float(o), nil
	case Float:
		return f / o, nil
	}
	return nil, invalidOp("/")
}
func (f Float) Mod(b Value) (Value, error) {
	switch o := b.(type) {
	case Int:
		return Float(math.Mod(float64(f), float64(o))), nil
	case Float:
		return Float(math.Mod(float64(f), float64(o))), nil
	}
	return nil, invalidOp("%")
}
func (f Float) Eq(b Value) bool {
	switch o := b.(type) {
	case Int:
		return f == Float(o)
	case Float:
		return f == o
	}
	return false
}
func (f Float) Lt(b Value) (bool, error) {
	switch o := b.(type) {
	case Int:
		return f < Float(o), nil
	case Float:
		return f < o, nil
	}
	return false, invalidOp("<")
}
func (f Float) Gt(b Value) (bool, error) {
	switch o := b.(type) {
	case Int:
		return f > Float(o), nil
	case Float:
		return f > o, nil
	}
	return false, invalidOp(">")
}

// Hash for Float aliases the IEEE-754 bit pattern (spec.md §4.6,
// SPEC_FULL.md §4.3: NaN shares a hash with any bit-identical NaN but is
// never Eq to itself).
func (f Float) Hash() (uint32, bool) {
	bits := math.Float64bits(float64(f))
	return uint32(bits) ^ uint32(bits>>32), true
}
