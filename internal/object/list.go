package object

import "strings"

// List is Emerald's mutable growable array (spec.md §3/§4.7). Backed
// directly by a Go slice: the original's manual capacity-doubling
// small-vector is exactly what append() already does, so there is no
// separate grow/shrink bookkeeping to reproduce.
type List struct {
	Elements []Value
}

func NewList(elems []Value) *List { return &List{Elements: elems} }

func (*List) TypeName() string { return "List" }
func (l *List) Truthy() bool   { return len(l.Elements) > 0 }

func (l *List) Str() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Str())
	}
	b.WriteByte(']')
	return b.String()
}

// Add concatenates two lists into a new one (spec.md §4.7).
func (l *List) Add(b Value) (Value, error) {
	o, ok := b.(*List)
	if !ok {
		return nil, invalidOp("+")
	}
	out := make([]Value, 0, len(l.Elements)+len(o.Elements))
	out = append(out, l.Elements...)
	out = append(out, o.Elements...)
	return NewList(out), nil
}

func (l *List) Len() int { return len(l.Elements) }

func (l *List) normIndex(i int) int {
	if i < 0 {
		i += len(l.Elements)
	}
	return i
}

func (l *List) GetIndex(key Value) (Value, error) {
	idx, ok := key.(Int)
	if !ok {
		return nil, invalidOp("index")
	}
	i := l.normIndex(int(idx))
	if i < 0 || i >= len(l.Elements) {
		return nil, invalidOp("index out of range")
	}
	return l.Elements[i], nil
}

func (l *List) SetIndex(key, val Value) error {
	idx, ok := key.(Int)
	if !ok {
		return invalidOp("index")
	}
	i := l.normIndex(int(idx))
	if i < 0 || i >= len(l.Elements) {
		return invalidOp("index out of range")
	}
	l.Elements[i] = val
	return nil
}

// Append adds a value to the end, growing the backing slice (the
// user-facing `append` builtin operates through this).
func (l *List) Append(v Value) { l.Elements = append(l.Elements, v) }
