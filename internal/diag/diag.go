// Package diag implements the raised-error channel described in spec.md
// §4.2: a one-slot queue holding at most one pending error (class identity
// + formatted message) until something catches or flushes it.
//
// The channel is per-interpreter state (a field on evaluator.Context), not
// process-wide global state — see SPEC_FULL.md §4, resolved Open Question 4.
package diag

import (
	"fmt"

	"github.com/pixelthegreat/emerald/internal/token"
)

// ClassRef is the minimal surface a raised error's "class" must expose.
// internal/object's *Class implements this; diag does not depend on
// internal/object to avoid an import cycle (object needs to raise errors,
// and diag needs to identify what was raised).
type ClassRef interface {
	ClassName() string
	Inherits(other ClassRef) bool
}

// Raised is a single pending error: a class identity, a formatted message,
// and the source position it occurred at.
type Raised struct {
	Class   ClassRef
	Message string
	Pos     token.Position
	// Payload is the language-visible error object (an *object.Instance)
	// bound to a `try/catch` clause's identifier. Typed `any` rather than
	// object.Value so this package never imports internal/object.
	Payload any
}

// Channel is the raised-error channel. Zero value is ready to use.
type Channel struct {
	pending *Raised
}

// Raise queues an error. Raising when one is already pending is a no-op
// (spec.md §3 invariant: "holds at most one error at a time").
func (c *Channel) Raise(class ClassRef, pos token.Position, format string, args ...any) {
	if c.pending != nil {
		return
	}
	c.pending = &Raised{Class: class, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// RaiseValue queues an already-built Raised value (used when `raise EXPR`
// evaluates to a class value directly rather than a formatted message).
func (c *Channel) RaiseValue(r *Raised) {
	if c.pending != nil {
		return
	}
	c.pending = r
}

// Pending returns the currently-raised error, or nil.
func (c *Channel) Pending() *Raised {
	return c.pending
}

// Catch reports whether the pending error matches class (by identity or
// inheritance chain; a nil class matches anything pending). It does not
// clear the channel — call Clear after handling.
func (c *Channel) Catch(class ClassRef) bool {
	if c.pending == nil {
		return false
	}
	if class == nil {
		return true
	}
	return c.pending.Class == class || c.pending.Class.Inherits(class)
}

// Clear discards the pending error, if any.
func (c *Channel) Clear() {
	c.pending = nil
}

// Flush renders the pending error as the top-level diagnostic format from
// spec.md §7 and clears the channel. Returns "" if nothing was pending.
func (c *Channel) Flush() string {
	if c.pending == nil {
		return ""
	}
	r := c.pending
	c.pending = nil
	msg := fmt.Sprintf("Error (%s):\n  %s\n", r.Pos, r.Message)
	if line := r.Pos.SourceLine(); line != "" {
		msg += fmt.Sprintf(" -> %s\n", line)
	}
	return msg
}
