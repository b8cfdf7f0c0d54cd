package gen

import (
	"fmt"

	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// TrieShape configures one invariant-preserving trie generation: the trie's
// default value with its value operations, element samplers, and size bounds.
// Sampled values equal to the default are rejected and resampled, so the
// produced trie never stores a default-valued entry.
type TrieShape[K comparable, V any] struct {
	Default V
	Ops     st.ValueOps[V]
	Key     func(*rand.Rand) (K, error)
	Value   func(*rand.Rand) (V, error)
	MinSize int
	MaxSize int
	Retries int
}

// GenerateTrie samples a trie honoring the given shape. Exhausting the retry
// budget while looking for a fresh key or a non-default value returns
// ErrUnsatisfiable.
func GenerateTrie[K comparable, V any](rnd *rand.Rand, shape TrieShape[K, V]) (*st.Trie[K, V], error) {
	trie := st.NewTrie[K](shape.Default, shape.Ops)
	size := shape.MinSize
	if shape.MaxSize > shape.MinSize {
		size += rnd.Intn(shape.MaxSize - shape.MinSize + 1)
	}
	for trie.Len() < size {
		key, err := freshKey(rnd, trie, shape)
		if err != nil {
			return nil, err
		}
		value, err := nonDefaultValue(rnd, shape)
		if err != nil {
			return nil, err
		}
		trie.Put(key, value)
	}
	return trie, nil
}

func freshKey[K comparable, V any](rnd *rand.Rand, trie *st.Trie[K, V], shape TrieShape[K, V]) (K, error) {
	for i := 0; i < shape.Retries; i++ {
		key, err := shape.Key(rnd)
		if err != nil {
			var zero K
			return zero, err
		}
		if !trie.Contains(key) {
			return key, nil
		}
	}
	var zero K
	return zero, fmt.Errorf("%w, no unused trie key found within %d samples", ErrUnsatisfiable, shape.Retries)
}

func nonDefaultValue[K comparable, V any](rnd *rand.Rand, shape TrieShape[K, V]) (V, error) {
	for i := 0; i < shape.Retries; i++ {
		value, err := shape.Value(rnd)
		if err != nil {
			var zero V
			return zero, err
		}
		if !shape.Ops.Equal(value, shape.Default) {
			return value, nil
		}
	}
	var zero V
	return zero, fmt.Errorf("%w, no non-default trie value found within %d samples", ErrUnsatisfiable, shape.Retries)
}
