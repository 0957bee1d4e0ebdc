package object

import (
	"fmt"

	"github.com/pixelthegreat/emerald/internal/diag"
	"github.com/pixelthegreat/emerald/internal/token"
)

// Class is a user-defined (or builtin-error) class (spec.md §4.7). Member
// functions are stored unbound; instantiation copies them into a fresh
// Instance and rebinds each as a BoundMethod to that instance.
type Class struct {
	Name    string
	Base    *Class // nil for a root class
	Members map[string]Value
}

func NewClass(name string, base *Class) *Class {
	return &Class{Name: name, Base: base, Members: map[string]Value{}}
}

func (*Class) TypeName() string { return "Class" }
func (*Class) Truthy() bool     { return true }
func (c *Class) Str() string    { return fmt.Sprintf("<class %s>", c.Name) }

// ClassName and Inherits implement diag.ClassRef, so a *Class can be
// raised and caught through the diag channel.
func (c *Class) ClassName() string { return c.Name }

// Inherits walks the base chain leaf-to-root looking for other (spec.md
// §4.7's class-hierarchy check, used by `catch` clauses to match raised
// error classes against a caught class).
func (c *Class) Inherits(other diag.ClassRef) bool {
	oc, ok := other.(*Class)
	if !ok {
		return false
	}
	for cur := c; cur != nil; cur = cur.Base {
		if cur == oc {
			return true
		}
	}
	return false
}

// Instance is a live object built from a Class (spec.md §4.7). Its
// members (copied data fields and bound methods) share Map's ordered
// storage and its `_toString`/`_call` delegation, since an instance's
// member-lookup protocol is identical to a map's.
type Instance struct {
	Class *Class
	*Map
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Map: NewMap()}
}

func (*Instance) TypeName() string { return "Instance" }
func (i *Instance) Str() string    { return fmt.Sprintf("<instance of %s>", i.Class.Name) }

// Instantiate builds a new Instance of class: walking the base chain
// root-to-leaf, copying each class's members into the instance (so a
// subclass's members shadow its base's), rebinding every Function/Builtin
// member as a BoundMethod to the new instance, then invoking
// `_initialize` with args if the resulting instance has one (spec.md
// §4.7).
func Instantiate(ev Evaluator, class *Class, args []Value, pos token.Position) (*Instance, error) {
	chain := []*Class{}
	for cur := class; cur != nil; cur = cur.Base {
		chain = append(chain, cur)
	}
	inst := NewInstance(class)
	for i := len(chain) - 1; i >= 0; i-- {
		for name, member := range chain[i].Members {
			if callable, ok := member.(Callable); ok {
				inst.Set(NewString(name), &BoundMethod{Receiver: inst, Method: callable})
				continue
			}
			inst.Set(NewString(name), member)
		}
	}

	if init, ok := inst.GetStr("_initialize"); ok {
		if _, err := CallValue(ev, init, args, pos); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Call makes a Class itself callable: `Class(args...)` instantiates it
// (spec.md §4.7).
func (c *Class) Call(ev Evaluator, args []Value, pos token.Position) (Value, error) {
	return Instantiate(ev, c, args, pos)
}
