package value

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an ordered, string-keyed collection of Value with unique keys.
// Iteration order is insertion order (spec.md §3) — the underlying
// orderedmap.OrderedMap gives us that without a separate key-order slice to
// keep in sync by hand.
type Map struct {
	om *orderedmap.OrderedMap[string, Value]
}

// NewMap builds an empty Map.
func NewMap() *Map {
	return &Map{om: orderedmap.New[string, Value]()}
}

// Set inserts or updates key. Updating an existing key keeps its original
// position in iteration order (this is the orderedmap library's behavior and
// matches spec.md §3's "keys unique; iteration order is insertion order").
func (m *Map) Set(key string, v Value) {
	m.om.Set(key, v)
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	return m.om.Get(key)
}

// Delete removes key, if present.
func (m *Map) Delete(key string) {
	m.om.Delete(key)
}

// Len returns the number of entries.
func (m *Map) Len() int { return m.om.Len() }

// Each visits entries in insertion order, stopping early if fn returns false.
func (m *Map) Each(fn func(key string, v Value) bool) {
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Copy returns a deep, independent clone.
func (m *Map) Copy() *Map {
	cp := NewMap()
	m.Each(func(k string, v Value) bool {
		cp.Set(k, v.Copy())
		return true
	})
	return cp
}

// Equal reports structural equality: same keys, same insertion-independent
// values (order does not affect equality, only re-encoding does).
func (m *Map) Equal(o *Map) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Len() != o.Len() {
		return false
	}
	equal := true
	m.Each(func(k string, v Value) bool {
		ov, present := o.Get(k)
		if !present || !v.Equal(ov) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.Each(func(k string, v Value) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteByte('\'')
		sb.WriteString(k)
		sb.WriteString("': ")
		if v.Kind() == KindString {
			sb.WriteByte('\'')
			sb.WriteString(v.s)
			sb.WriteByte('\'')
		} else {
			sb.WriteString(v.String())
		}
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
