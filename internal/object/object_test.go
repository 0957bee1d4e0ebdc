package object_test

import (
	"testing"

	"github.com/pixelthegreat/emerald/internal/object"
)

func TestStringAddLength(t *testing.T) {
	a, b := object.NewString("foo"), object.NewString("bar")
	sum, err := object.Add(a, b)
	if err != nil {
		t.Fatalf("Add error: %s", err)
	}
	s, ok := sum.(*object.String)
	if !ok {
		t.Fatalf("expected *object.String, got %T", sum)
	}
	if s.Value != "foobar" {
		t.Errorf("got %q, want %q", s.Value, "foobar")
	}
	if s.Len() != len(a.Value)+len(b.Value) {
		t.Errorf("length mismatch: %d != %d+%d", s.Len(), len(a.Value), len(b.Value))
	}
}

func TestStringMulBounds(t *testing.T) {
	s := object.NewString("ab")
	if v, err := object.Mul(s, object.Int(0)); err != nil || v.(*object.String).Value != "" {
		t.Errorf("string*0 should be empty, got %v, err %v", v, err)
	}
	if _, err := object.Mul(s, object.Int(1024)); err == nil {
		t.Errorf("string*1024 should raise, got nil error")
	}
}

func TestIntHashDeterministic(t *testing.T) {
	h1, ok1 := object.HashOf(object.Int(42))
	h2, ok2 := object.HashOf(object.Int(42))
	if !ok1 || !ok2 || h1 != h2 {
		t.Errorf("int_hash(42) not deterministic: %d/%v vs %d/%v", h1, ok1, h2, ok2)
	}
}

func TestStringHashIdentical(t *testing.T) {
	h1, _ := object.HashOf(object.NewString("hello"))
	h2, _ := object.HashOf(object.NewString("hello"))
	if h1 != h2 {
		t.Errorf("identical strings hashed differently: %d vs %d", h1, h2)
	}
}

func TestListAppendLength(t *testing.T) {
	l := object.NewList(nil)
	for i := 0; i < 5; i++ {
		l.Append(object.Int(i))
	}
	if n, _ := object.LengthOf(l); n != 5 {
		t.Errorf("length after 5 appends = %d, want 5", n)
	}
}

func TestListNegativeIndex(t *testing.T) {
	l := object.NewList([]object.Value{object.Int(1), object.Int(2), object.Int(3)})
	v, err := object.GetIndex(l, object.Int(-3))
	if err != nil {
		t.Fatalf("index -length should be valid: %s", err)
	}
	if v != object.Int(1) {
		t.Errorf("l[-3] = %v, want 1", v)
	}
	if _, err := object.GetIndex(l, object.Int(-4)); err == nil {
		t.Errorf("index -length-1 should raise, got nil error")
	}
}

func TestMapSetGet(t *testing.T) {
	m := object.NewMap()
	k := object.NewString("key")
	if err := object.SetIndex(m, k, object.Int(7)); err != nil {
		t.Fatalf("SetIndex error: %s", err)
	}
	v, err := object.GetIndex(m, object.NewString("key"))
	if err != nil {
		t.Fatalf("GetIndex error: %s", err)
	}
	if v != object.Int(7) {
		t.Errorf("map[k] = %v, want 7", v)
	}
}

func TestByteArrayModes(t *testing.T) {
	a := object.NewByteArray(object.ModeI32, 4)
	if err := a.SetIndex(object.Int(0), object.Int(-1)); err != nil {
		t.Fatalf("SetIndex error: %s", err)
	}
	v, err := a.GetIndex(object.Int(0))
	if err != nil {
		t.Fatalf("GetIndex error: %s", err)
	}
	if v != object.Int(-1) {
		t.Errorf("signed int32 round-trip of -1 got %v", v)
	}
}

func TestByteArrayUnsignedMode(t *testing.T) {
	a := object.NewByteArray(object.ModeU8, 2)
	a.SetIndex(object.Int(0), object.Int(255))
	v, _ := a.GetIndex(object.Int(0))
	if v != object.Int(255) {
		t.Errorf("unsignedChar 255 round-trip got %v, want 255", v)
	}
}

func TestClassInherits(t *testing.T) {
	base := object.NewClass("Error", nil)
	derived := object.NewClass("RuntimeError", base)
	if !derived.Inherits(base) {
		t.Error("RuntimeError should inherit from Error")
	}
	if base.Inherits(derived) {
		t.Error("Error should not inherit from RuntimeError")
	}
}
