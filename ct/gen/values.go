package gen

import (
	"bytes"
	"reflect"

	"github.com/Zeegaths/keth/ct/st"
)

// EqualValues is the domain equality used for dynamically generated values:
// structural for containers and tries, value-based for scalars. It is the
// dynamic counterpart of the typed Eq methods in the st package.
func EqualValues(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case *st.Account:
		y, ok := b.(*st.Account)
		return ok && x.Eq(y)
	case *st.Trie[any, any]:
		y, ok := b.(*st.Trie[any, any])
		return ok && x.Eq(y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !EqualValues(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[any]any:
		y, ok := b.(map[any]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for key, value := range x {
			other, found := y[key]
			if !found || !EqualValues(value, other) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// CloneValue deeply duplicates a dynamically generated value so that the copy
// shares no mutable container with the original. Plain values are returned
// as-is.
func CloneValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return bytes.Clone(x)
	case *st.Account:
		return x.Clone()
	case *st.Trie[any, any]:
		return x.Copy()
	case []any:
		res := make([]any, len(x))
		for i, elem := range x {
			res[i] = CloneValue(elem)
		}
		return res
	case map[any]any:
		res := make(map[any]any, len(x))
		for key, value := range x {
			res[key] = CloneValue(value)
		}
		return res
	default:
		return v
	}
}
