package gen

import (
	"fmt"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// Generator produces one random value of a declared type.
type Generator func(rnd *rand.Rand) (any, error)

const resolutionCacheSize = 256

// Registry maps type descriptors to value generators. It is an explicit
// object constructed once per test run and passed to its consumers; there is
// no process-wide instance.
type Registry struct {
	limits Limits
	named  map[string]Generator
	cache  *lru.Cache[string, Generator]
}

func NewRegistry(limits Limits) *Registry {
	cache, err := lru.New[string, Generator](resolutionCacheSize)
	if err != nil {
		panic(err) // only possible for a non-positive size
	}
	return &Registry{
		limits: limits,
		named:  map[string]Generator{},
		cache:  cache,
	}
}

// Register installs or overrides the generator for the exact described type.
// Registration is idempotent; the last registration wins.
func (r *Registry) Register(desc TypeDesc, gen Generator) {
	r.named[desc.Key()] = gen
	// Composed generators may embed the replaced registration.
	r.cache.Purge()
}

// Resolve returns a generator for the described type. Parameterized types are
// composed by recursively resolving their element types and wrapping them
// with the matching structural combinator. Resolution is deterministic given
// the registry contents and performs no sampling itself.
func (r *Registry) Resolve(desc TypeDesc) (Generator, error) {
	key := desc.Key()
	if gen, found := r.named[key]; found {
		return gen, nil
	}
	if gen, found := r.cache.Get(key); found {
		return gen, nil
	}
	gen, err := r.compose(desc)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, gen)
	return gen, nil
}

func (r *Registry) compose(desc TypeDesc) (Generator, error) {
	switch desc.Kind() {
	case KindNamed:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, desc.Name())
	case KindOption:
		return r.composeOption(desc)
	case KindTrie:
		return r.composeTrie(desc)
	case KindStack:
		return r.composeSequence(desc, r.limits.MaxStackSize)
	case KindFixedTuple:
		return r.composeFixedTuple(desc)
	case KindVarTuple:
		return r.composeSequence(desc, r.limits.MaxTupleSize)
	case KindMapping:
		return r.composeMapping(desc)
	case KindRecursive:
		return r.composeRecursive(desc)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownType, desc)
}

func (r *Registry) composeOption(desc TypeDesc) (Generator, error) {
	elem, err := r.Resolve(desc.Elems()[0])
	if err != nil {
		return nil, err
	}
	return func(rnd *rand.Rand) (any, error) {
		if rnd.Intn(2) == 0 {
			return nil, nil
		}
		return elem(rnd)
	}, nil
}

func (r *Registry) composeTrie(desc TypeDesc) (Generator, error) {
	keyGen, err := r.Resolve(desc.Elems()[0])
	if err != nil {
		return nil, err
	}
	defaultValue, valueGen, err := r.trieValuePolicy(desc.Elems()[1])
	if err != nil {
		return nil, err
	}
	shape := TrieShape[any, any]{
		Default: defaultValue,
		Ops:     st.ValueOps[any]{Equal: EqualValues, Clone: CloneValue},
		Key:     comparableKeys(keyGen),
		Value:   valueGen,
		MaxSize: r.limits.MaxTrieSize,
		Retries: r.limits.MaxRetries,
	}
	return func(rnd *rand.Rand) (any, error) {
		return GenerateTrie(rnd, shape)
	}, nil
}

// numericZeros lists the value types whose canonical zero serves as a trie
// default. This is a closed set; widening it means widening the
// default-selection policy.
var numericZeros = map[string]any{
	Named("u64").Key():  uint64(0),
	Named("u256").Key(): NewU256(0),
}

// trieValuePolicy selects the default value for a trie's value type: absent
// (nil) for optional types, the canonical zero for numeric types, and a hard
// ErrUnsupportedDefault otherwise. The returned generator produces candidate
// non-default values.
func (r *Registry) trieValuePolicy(value TypeDesc) (any, Generator, error) {
	if value.Kind() == KindOption {
		gen, err := r.Resolve(value.Elems()[0])
		if err != nil {
			return nil, nil, err
		}
		return nil, gen, nil
	}
	if zero, found := numericZeros[value.Key()]; found {
		gen, err := r.Resolve(value)
		if err != nil {
			return nil, nil, err
		}
		return zero, gen, nil
	}
	return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedDefault, value)
}

func (r *Registry) composeSequence(desc TypeDesc, maxSize int) (Generator, error) {
	elem, err := r.Resolve(desc.Elems()[0])
	if err != nil {
		return nil, err
	}
	return func(rnd *rand.Rand) (any, error) {
		values := make([]any, rnd.Intn(maxSize+1))
		for i := range values {
			value, err := elem(rnd)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}, nil
}

func (r *Registry) composeFixedTuple(desc TypeDesc) (Generator, error) {
	elems := make([]Generator, len(desc.Elems()))
	for i, elemDesc := range desc.Elems() {
		elem, err := r.Resolve(elemDesc)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return func(rnd *rand.Rand) (any, error) {
		values := make([]any, len(elems))
		for i, elem := range elems {
			value, err := elem(rnd)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}, nil
}

// composeMapping builds a mapping generator. Mapping keys must resolve to
// values that are comparable at runtime; uncomparable keys are reported as
// ErrUncomparableKey at generation time. An untyped mapping descriptor
// yields empty mappings; the resolver never invents element types.
func (r *Registry) composeMapping(desc TypeDesc) (Generator, error) {
	if len(desc.Elems()) == 0 {
		return func(*rand.Rand) (any, error) {
			return map[any]any{}, nil
		}, nil
	}
	keyGen, err := r.Resolve(desc.Elems()[0])
	if err != nil {
		return nil, err
	}
	keyGen = comparableKeys(keyGen)
	valueGen, err := r.Resolve(desc.Elems()[1])
	if err != nil {
		return nil, err
	}
	maxSize, retries := r.limits.MaxTupleSize, r.limits.MaxRetries
	return func(rnd *rand.Rand) (any, error) {
		mapping := map[any]any{}
		size := rnd.Intn(maxSize + 1)
		for len(mapping) < size {
			key, err := freshMappingKey(rnd, keyGen, mapping, retries)
			if err != nil {
				return nil, err
			}
			value, err := valueGen(rnd)
			if err != nil {
				return nil, err
			}
			mapping[key] = value
		}
		return mapping, nil
	}, nil
}

func freshMappingKey(rnd *rand.Rand, keyGen Generator, mapping map[any]any, retries int) (any, error) {
	for i := 0; i < retries; i++ {
		key, err := keyGen(rnd)
		if err != nil {
			return nil, err
		}
		if _, found := mapping[key]; !found {
			return key, nil
		}
	}
	return nil, fmt.Errorf("%w, no unused mapping key found within %d samples", ErrUnsatisfiable, retries)
}

// comparableKeys guards a dynamically resolved key generator. Descriptors
// leave the produced Go type unknown until a value is sampled, so the check
// cannot happen at resolution time. A nil key is a valid map key and passes.
func comparableKeys(keyGen Generator) Generator {
	return func(rnd *rand.Rand) (any, error) {
		key, err := keyGen(rnd)
		if err != nil {
			return nil, err
		}
		if t := reflect.TypeOf(key); t != nil && !t.Comparable() {
			return nil, fmt.Errorf("%w: %s", ErrUncomparableKey, t)
		}
		return key, nil
	}
}

func (r *Registry) composeRecursive(desc TypeDesc) (Generator, error) {
	leaf, err := r.Resolve(desc.Elems()[0])
	if err != nil {
		return nil, err
	}
	shape := RecursiveShape{
		Leaf:        leaf,
		MaxDepth:    r.limits.MaxRecursionDepth,
		LeafChance:  50,
		MaxChildren: 3,
	}
	return func(rnd *rand.Rand) (any, error) {
		return GenerateRecursive(rnd, shape)
	}, nil
}
