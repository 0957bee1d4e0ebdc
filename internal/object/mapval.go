package object

import "github.com/pixelthegreat/emerald/internal/token"

// mapEntry is one ordered slot in a Map. Keys are compared by hash first,
// falling back to Equal on collision (spec.md §4.7: "ordered map, linear
// search by hashed key" — small maps don't warrant real hash buckets).
type mapEntry struct {
	key   Value
	hash  uint32
	value Value
}

// Map is Emerald's ordered associative object. Iteration order is
// insertion order, matching the original's doubly-linked entry list.
type Map struct {
	entries []*mapEntry
}

func NewMap() *Map { return &Map{} }

func (*Map) TypeName() string { return "Map" }
func (m *Map) Truthy() bool   { return len(m.entries) > 0 }

// Str is the fallback shown when no `_toString` member exists (spec.md
// §4.7: "absence of _toString yields the literal '{...}'").
func (m *Map) Str() string { return "{...}" }

func (m *Map) find(key Value) (*mapEntry, int) {
	h, ok := HashOf(key)
	if !ok {
		return nil, -1
	}
	for i, e := range m.entries {
		if e.hash == h && Equal(e.key, key) {
			return e, i
		}
	}
	return nil, -1
}

// Get looks up key, returning (value, true) if present.
func (m *Map) Get(key Value) (Value, bool) {
	e, _ := m.find(key)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// GetStr is a convenience lookup for member-style string keys (_call,
// _toString, _initialize, _message, ...).
func (m *Map) GetStr(key string) (Value, bool) {
	return m.Get(NewString(key))
}

// Set inserts or updates key, appending to the end on first insert so
// iteration order matches insertion order.
func (m *Map) Set(key, val Value) error {
	h, ok := HashOf(key)
	if !ok {
		return invalidOp("unhashable key")
	}
	if e, _ := m.find(key); e != nil {
		e.value = val
		return nil
	}
	m.entries = append(m.entries, &mapEntry{key: key, hash: h, value: val})
	return nil
}

// Delete removes key if present, reporting whether anything was removed.
func (m *Map) Delete(key Value) bool {
	_, i := m.find(key)
	if i < 0 {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return true
}

// Keys and Values return snapshots in insertion order.
func (m *Map) Keys() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.key
	}
	return out
}
func (m *Map) Values() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.value
	}
	return out
}

func (m *Map) Len() int { return len(m.entries) }

func (m *Map) GetIndex(key Value) (Value, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, invalidOp("key not found")
	}
	return v, nil
}
func (m *Map) SetIndex(key, val Value) error { return m.Set(key, val) }

// CustomStr delegates to a user `_toString` member when present, matching
// spec.md §4.7's member-driven dispatch: maps and instances are the same
// kind of "object with members," and both resolve to_string this way.
func (m *Map) CustomStr(ev Evaluator) (string, error) {
	fn, ok := m.GetStr("_toString")
	if !ok {
		return "{...}", nil
	}
	v, err := CallValue(ev, fn, nil, token.Position{})
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// Call delegates to a user `_call` member when present, matching spec.md
// §4.7's "maps may be called if they expose a _call member."
func (m *Map) Call(ev Evaluator, args []Value, pos token.Position) (Value, error) {
	fn, ok := m.GetStr("_call")
	if !ok {
		return nil, ev.RuntimeError(pos, "Map has no _call member")
	}
	return CallValue(ev, fn, args, pos)
}
