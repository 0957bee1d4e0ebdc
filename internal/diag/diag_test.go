package diag_test

import (
	"testing"

	"github.com/pixelthegreat/emerald/internal/diag"
	"github.com/pixelthegreat/emerald/internal/token"
)

type fakeClass struct {
	name string
	base *fakeClass
}

func (c *fakeClass) ClassName() string { return c.name }
func (c *fakeClass) Inherits(other diag.ClassRef) bool {
	for cur := c; cur != nil; cur = cur.base {
		if diag.ClassRef(cur) == other {
			return true
		}
	}
	return false
}

func TestRaiseAndCatch(t *testing.T) {
	var ch diag.Channel
	errClass := &fakeClass{name: "Error"}
	runtimeClass := &fakeClass{name: "RuntimeError", base: errClass}

	ch.Raise(runtimeClass, token.Position{}, "boom %d", 1)
	if !ch.Catch(errClass) {
		t.Error("RuntimeError should be caught by its ancestor Error")
	}
	if ch.Pending().Message != "boom 1" {
		t.Errorf("message = %q, want %q", ch.Pending().Message, "boom 1")
	}
	ch.Clear()
	if ch.Pending() != nil {
		t.Error("Pending() should be nil after Clear")
	}
}

func TestRaiseIsOneSlot(t *testing.T) {
	var ch diag.Channel
	c1 := &fakeClass{name: "First"}
	c2 := &fakeClass{name: "Second"}
	ch.Raise(c1, token.Position{}, "one")
	ch.Raise(c2, token.Position{}, "two")
	if ch.Pending().Class != diag.ClassRef(c1) {
		t.Error("second Raise while pending should be a no-op")
	}
}

func TestCatchNilMatchesAnything(t *testing.T) {
	var ch diag.Channel
	ch.Raise(&fakeClass{name: "X"}, token.Position{}, "msg")
	if !ch.Catch(nil) {
		t.Error("Catch(nil) should match any pending error")
	}
}

func TestFlushFormat(t *testing.T) {
	var ch diag.Channel
	pos := token.Position{Path: "t.em", Line: 2, Column: 1}
	ch.Raise(&fakeClass{name: "RuntimeError"}, pos, "bad thing")
	msg := ch.Flush()
	want := "Error (File 't.em', Line 2, Column 1):\n  bad thing\n"
	if msg != want {
		t.Errorf("Flush() = %q, want %q", msg, want)
	}
	if ch.Pending() != nil {
		t.Error("Flush should clear the channel")
	}
}

func TestFlushEmpty(t *testing.T) {
	var ch diag.Channel
	if msg := ch.Flush(); msg != "" {
		t.Errorf("Flush() on empty channel = %q, want empty", msg)
	}
}
