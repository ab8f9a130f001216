// Package value implements the self-describing data model shared by every
// other package in this module: a tagged union of null, bool, int, float,
// string, list and map, with structural equality and explicit deep copies.
//
// A Value is a small value type (pass it around by value). List and Map are
// reference types: copying a Value that wraps one of them shares the
// underlying storage until Copy is called, at which point the copy becomes
// independent. This gives copy-on-write-shaped semantics without requiring
// any actual COW bookkeeping — see Copy.
package value

import "fmt"

// Kind identifies which variant a Value currently holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is the tagged union. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list *List
	mp   *Map
}

// Null returns the null Value. It is also the zero value of Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a signed integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a float64.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// FromList wraps a *List. A nil list is treated as an empty list.
func FromList(l *List) Value {
	if l == nil {
		l = NewList()
	}
	return Value{kind: KindList, list: l}
}

// FromMap wraps a *Map. A nil map is treated as an empty map.
func FromMap(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, mp: m}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean payload and whether v is a bool.
func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

// IntValue returns the integer payload and whether v is an int.
func (v Value) IntValue() (int64, bool) { return v.i, v.kind == KindInt }

// FloatValue returns the float payload and whether v is a float.
func (v Value) FloatValue() (float64, bool) { return v.f, v.kind == KindFloat }

// StringValue returns the string payload and whether v is a string.
func (v Value) StringValue() (string, bool) { return v.s, v.kind == KindString }

// ListValue returns the underlying *List and whether v is a list.
// The returned *List aliases v's storage; mutate a Copy if independence is needed.
func (v Value) ListValue() (*List, bool) { return v.list, v.kind == KindList }

// MapValue returns the underlying *Map and whether v is a map.
// The returned *Map aliases v's storage; mutate a Copy if independence is needed.
func (v Value) MapValue() (*Map, bool) { return v.mp, v.kind == KindMap }

// Copy returns a logically independent Value: scalars are already
// independent (Go value types), List and Map are deep-cloned recursively.
func (v Value) Copy() Value {
	switch v.kind {
	case KindList:
		return FromList(v.list.Copy())
	case KindMap:
		return FromMap(v.mp.Copy())
	default:
		return v
	}
}

// Equal reports structural equality. Per spec.md §3, Int and Float never
// cross-compare equal even when numerically identical.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindList:
		return v.list.Equal(other.list)
	case KindMap:
		return v.mp.Equal(other.mp)
	default:
		return false
	}
}

// Unwrap converts v into native Go data: nil, bool, int64, float64, string,
// []any, or the ordered key/value pairs of a Map flattened into a
// map[string]any (key order is not preserved by the returned map — use
// Map.Each directly when order matters). This exists for binding-layer
// convenience, the Go analogue of the Python bindings' Value.get().
func (v Value) Unwrap() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, 0, v.list.Len())
		v.list.Each(func(_ int, item Value) bool {
			out = append(out, item.Unwrap())
			return true
		})
		return out
	case KindMap:
		out := make(map[string]any, v.mp.Len())
		v.mp.Each(func(k string, item Value) bool {
			out[k] = item.Unwrap()
			return true
		})
		return out
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindList:
		return v.list.String()
	case KindMap:
		return v.mp.String()
	default:
		return "<invalid value>"
	}
}

// FromNative builds a Value from a native Go value: nil, bool, any integer
// kind, any float kind, string, []any (or []Value), and map[string]any.
// Unsupported types return an error.
func FromNative(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case []any:
		l := NewList()
		for _, item := range t {
			iv, err := FromNative(item)
			if err != nil {
				return Value{}, err
			}
			l.Append(iv)
		}
		return FromList(l), nil
	case []Value:
		return FromList(NewList(t...)), nil
	case map[string]any:
		m := NewMap()
		for k, item := range t {
			iv, err := FromNative(item)
			if err != nil {
				return Value{}, err
			}
			m.Set(k, iv)
		}
		return FromMap(m), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported native type %T", in)
	}
}
