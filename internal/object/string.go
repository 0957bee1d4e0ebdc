package object

import (
	"strings"
)

// String is Emerald's immutable string object (spec.md §3/§4.7).
type String struct {
	Value string
}

func NewString(s string) *String { return &String{Value: s} }

func (*String) TypeName() string  { return "String" }
func (s *String) Truthy() bool    { return len(s.Value) > 0 }
func (s *String) Str() string     { return s.Value }

func (s *String) Add(b Value) (Value, error) {
	if o, ok := b.(*String); ok {
		return NewString(s.Value + o.Value), nil
	}
	return nil, invalidOp("+")
}

// Mul repeats the string n times, 0 <= n < 1024 (spec.md §4.7/§8: "string *
// N repeats N times, 0 ≤ N < 1024 (RuntimeError otherwise)").
func (s *String) Mul(b Value) (Value, error) {
	n, ok := b.(Int)
	if !ok || n < 0 || n >= 1024 {
		return nil, invalidOp("*")
	}
	return NewString(strings.Repeat(s.Value, int(n))), nil
}

func (s *String) Eq(b Value) bool {
	o, ok := b.(*String)
	return ok && s.Value == o.Value
}

func (s *String) Lt(b Value) (bool, error) {
	o, ok := b.(*String)
	if !ok {
		return false, invalidOp("<")
	}
	return s.Value < o.Value, nil
}
func (s *String) Gt(b Value) (bool, error) {
	o, ok := b.(*String)
	if !ok {
		return false, invalidOp(">")
	}
	return s.Value > o.Value, nil
}

func (s *String) Len() int { return len([]rune(s.Value)) }

// GetIndex returns the single-character substring at a rune index,
// supporting negative indices from the end (spec.md §4.7).
func (s *String) GetIndex(key Value) (Value, error) {
	idx, ok := key.(Int)
	if !ok {
		return nil, invalidOp("index")
	}
	r := []rune(s.Value)
	i := int(idx)
	if i < 0 {
		i += len(r)
	}
	if i < 0 || i >= len(r) {
		return nil, invalidOp("index out of range")
	}
	return NewString(string(r[i])), nil
}

// SetIndex is unsupported: strings are immutable (spec.md §3).
func (s *String) SetIndex(key, val Value) error {
	return invalidOp("string is immutable")
}

// Hash reproduces original_source/src/emerald/hash.c's em_wchar_strhash: a
// base-31 polynomial hash over Unicode code points, computed modulo 2^32
// (the uint32 multiply/add simply wraps). The empty string hashes to 0.
func (s *String) Hash() (uint32, bool) {
	var h uint32
	for _, r := range s.Value {
		h = h*31 + uint32(r)
	}
	return h, true
}
