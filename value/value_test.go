package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tigrux/traeger-go/value"
)

// TestListCopySemantics reproduces spec.md §8 scenario 6 (value-semantics).
func TestListCopySemantics(t *testing.T) {
	list1 := value.FromList(value.NewList(value.Int(2), value.Int(3), value.Int(5)))

	l1, _ := list1.ListValue()

	list2 := list1.Copy()
	l2, _ := list2.ListValue()
	l2.Set(0, value.Int(1))
	l2.Append(value.Int(7))

	list3 := list1.Copy()
	l3, _ := list3.ListValue()
	l3.Append(value.Int(7))

	require.True(t, l1.Equal(value.NewList(value.Int(2), value.Int(3), value.Int(5))))
	require.True(t, l2.Equal(value.NewList(value.Int(1), value.Int(3), value.Int(5), value.Int(7))))
	require.True(t, l3.Equal(value.NewList(value.Int(2), value.Int(3), value.Int(5), value.Int(7))))
}

func TestMapInsertionOrderPreserved(t *testing.T) {
	m := value.NewMap()
	m.Set("name", value.String("John"))
	m.Set("age", value.Int(30))
	m.Set("married", value.Bool(true))

	var keys []string
	m.Each(func(k string, _ value.Value) bool {
		keys = append(keys, k)
		return true
	})

	require.Equal(t, []string{"name", "age", "married"}, keys)
}

func TestIntFloatDoNotCrossCompare(t *testing.T) {
	require.False(t, value.Int(1).Equal(value.Float(1.0)))
	require.True(t, value.Int(1).Equal(value.Int(1)))
	require.True(t, value.Float(1.0).Equal(value.Float(1.0)))
}

func TestCopyIsIndependentAcrossNesting(t *testing.T) {
	inner := value.NewMap()
	inner.Set("x", value.Int(1))
	outer := value.NewList(value.FromMap(inner))
	original := value.FromList(outer)

	dup := original.Copy()
	dupList, _ := dup.ListValue()
	innerDup, _ := dupList.Get(0)
	innerDupMap, _ := innerDup.MapValue()
	innerDupMap.Set("x", value.Int(99))

	originalList, _ := original.ListValue()
	originalInner, _ := originalList.Get(0)
	originalInnerMap, _ := originalInner.MapValue()
	got, _ := originalInnerMap.Get("x")
	gotInt, _ := got.IntValue()
	require.Equal(t, int64(1), gotInt)
}

func TestFromNative(t *testing.T) {
	v, err := value.FromNative(map[string]any{
		"name":    "John",
		"age":     30,
		"married": true,
	})
	require.NoError(t, err)
	m, ok := v.MapValue()
	require.True(t, ok)
	require.Equal(t, 3, m.Len())
}
