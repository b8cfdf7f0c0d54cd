package st

import (
	"fmt"

	. "github.com/Zeegaths/keth/ct/common"
)

// ValueOps supplies the value-type operations a Trie needs: equality between
// values (also used against the default) and deep duplication. Clone may be
// nil for plain value types.
type ValueOps[V any] struct {
	Equal func(a, b V) bool
	Clone func(V) V
}

// Trie models a secured key/value trie as a flat mapping with an explicit
// default value. A key bound to the default value is absent; such entries are
// never stored, keeping the mapping free of default-valued entries by
// construction.
type Trie[K comparable, V any] struct {
	secured bool
	def     V
	data    map[K]V
	ops     ValueOps[V]
}

func NewTrie[K comparable, V any](def V, ops ValueOps[V]) *Trie[K, V] {
	if ops.Equal == nil {
		panic("trie requires a value equality")
	}
	return &Trie[K, V]{
		secured: true,
		def:     def,
		data:    map[K]V{},
		ops:     ops,
	}
}

func (t *Trie[K, V]) Secured() bool {
	return t.secured
}

func (t *Trie[K, V]) Default() V {
	return t.def
}

// Get returns the value bound to the given key, or the trie's default value
// for absent keys.
func (t *Trie[K, V]) Get(key K) V {
	if value, found := t.data[key]; found {
		return value
	}
	return t.def
}

// Put binds the given key to the given value. Binding a key to the default
// value removes it.
func (t *Trie[K, V]) Put(key K, value V) {
	if t.ops.Equal(value, t.def) {
		delete(t.data, key)
		return
	}
	t.data[key] = value
}

// Contains checks whether the key is bound to a non-default value.
func (t *Trie[K, V]) Contains(key K) bool {
	_, found := t.data[key]
	return found
}

// Len returns the number of non-default entries.
func (t *Trie[K, V]) Len() int {
	return len(t.data)
}

func (t *Trie[K, V]) Keys() []K {
	keys := make([]K, 0, len(t.data))
	for key := range t.data {
		keys = append(keys, key)
	}
	return keys
}

func (t *Trie[K, V]) ForEach(op func(K, V)) {
	for key, value := range t.data {
		op(key, value)
	}
}

// Copy creates a deep, alias-free duplicate of the trie. Mutating either side
// afterwards must not be observable on the other.
func (t *Trie[K, V]) Copy() *Trie[K, V] {
	data := make(map[K]V, len(t.data))
	for key, value := range t.data {
		if t.ops.Clone != nil {
			value = t.ops.Clone(value)
		}
		data[key] = value
	}
	return &Trie[K, V]{
		secured: t.secured,
		def:     t.def,
		data:    data,
		ops:     t.ops,
	}
}

// Eq compares two tries for structural equality: same secured flag, same
// default, and the same set of non-default entries.
func (t *Trie[K, V]) Eq(other *Trie[K, V]) bool {
	if t.secured != other.secured || !t.ops.Equal(t.def, other.def) {
		return false
	}
	if len(t.data) != len(other.data) {
		return false
	}
	for key, value := range t.data {
		otherValue, found := other.data[key]
		if !found || !t.ops.Equal(value, otherValue) {
			return false
		}
	}
	return true
}

func (t *Trie[K, V]) Diff(other *Trie[K, V], label string) (res []string) {
	if t.secured != other.secured {
		res = append(res, fmt.Sprintf("Different %s secured flag: %t vs %t", label, t.secured, other.secured))
	}
	for key, value := range t.data {
		otherValue, found := other.data[key]
		if !found {
			res = append(res, fmt.Sprintf("Different %s entry:\n\t[%v]=%v\n\tvs\n\tmissing", label, key, value))
		} else if !t.ops.Equal(value, otherValue) {
			res = append(res, fmt.Sprintf("Different %s entry:\n\t[%v]=%v\n\tvs\n\t[%v]=%v", label, key, value, key, otherValue))
		}
	}
	for key, otherValue := range other.data {
		if _, found := t.data[key]; !found {
			res = append(res, fmt.Sprintf("Different %s entry:\n\tmissing\n\tvs\n\t[%v]=%v", label, key, otherValue))
		}
	}
	return
}

// AccountTrie is the main trie mapping addresses to accounts; a nil account
// marks an absent address.
type AccountTrie = Trie[Address, *Account]

// StorageTrie maps storage keys to 256-bit words with a zero default.
type StorageTrie = Trie[Bytes32, U256]

func NewAccountTrie() *AccountTrie {
	return NewTrie[Address](nil, ValueOps[*Account]{
		Equal: (*Account).Eq,
		Clone: (*Account).Clone,
	})
}

func NewStorageTrie() *StorageTrie {
	return NewTrie[Bytes32](NewU256(), ValueOps[U256]{
		Equal: U256.Eq,
	})
}
