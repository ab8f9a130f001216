package value

import "strings"

// List is an ordered, mutable sequence of Value. The zero value is not
// usable; construct with NewList.
type List struct {
	items []Value
}

// NewList builds a List from the given items, copying the slice header but
// not the items themselves (scalars are independent anyway; if items
// contains lists/maps, alias them deliberately or Copy first).
func NewList(items ...Value) *List {
	l := &List{items: make([]Value, len(items))}
	copy(l.items, items)
	return l
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Get returns the element at i and whether i was in bounds.
func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(l.items) {
		return Value{}, false
	}
	return l.items[i], true
}

// Set replaces the element at i. Returns false if i is out of bounds.
func (l *List) Set(i int, v Value) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

// Append adds v to the end of the list.
func (l *List) Append(v Value) {
	l.items = append(l.items, v)
}

// Each calls fn for every element in order, stopping early if fn returns false.
func (l *List) Each(fn func(index int, item Value) bool) {
	for i, item := range l.items {
		if !fn(i, item) {
			return
		}
	}
}

// Copy returns a deep, independent clone: mutating the copy never affects l.
func (l *List) Copy() *List {
	cp := make([]Value, len(l.items))
	for i, item := range l.items {
		cp[i] = item.Copy()
	}
	return &List{items: cp}
}

// Equal reports structural, element-wise equality.
func (l *List) Equal(o *List) bool {
	if l == nil || o == nil {
		return l == o
	}
	if len(l.items) != len(o.items) {
		return false
	}
	for i, item := range l.items {
		if !item.Equal(o.items[i]) {
			return false
		}
	}
	return true
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range l.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		if item.Kind() == KindString {
			sb.WriteByte('\'')
			sb.WriteString(item.s)
			sb.WriteByte('\'')
		} else {
			sb.WriteString(item.String())
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
