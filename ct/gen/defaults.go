package gen

import (
	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// NewDefaultRegistry creates a registry with generators installed for every
// primitive and domain type, mirroring the modeled engine's declared types.
func NewDefaultRegistry(limits Limits) *Registry {
	r := NewRegistry(limits)

	r.Register(Named("bool"), func(rnd *rand.Rand) (any, error) {
		return rnd.Intn(2) == 1, nil
	})
	r.Register(Named("u64"), func(rnd *rand.Rand) (any, error) {
		return rnd.Uint64(), nil
	})
	r.Register(Named("u256"), func(rnd *rand.Rand) (any, error) {
		return RandU256(rnd), nil
	})
	r.Register(Named("address"), func(rnd *rand.Rand) (any, error) {
		return RandomAddress(rnd), nil
	})
	r.Register(Named("bytes32"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes32(rnd), nil
	})
	r.Register(Named("bytes4"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes4(rnd), nil
	})
	r.Register(Named("bytes8"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes8(rnd), nil
	})
	r.Register(Named("bytes20"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes20(rnd), nil
	})
	r.Register(Named("bytes64"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes64(rnd), nil
	})
	r.Register(Named("bytes256"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes256(rnd), nil
	})
	r.Register(Named("bytes"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes(rnd, 256), nil
	})
	r.Register(Named("code"), func(rnd *rand.Rand) (any, error) {
		return RandomBytes(rnd, limits.MaxCodeSize), nil
	})
	r.Register(Named("memory"), func(rnd *rand.Rand) (any, error) {
		return st.NewMemory(RandomBytes(rnd, limits.MaxMemorySize)...), nil
	})
	r.Register(Named("field_element"), func(rnd *rand.Rand) (any, error) {
		return RandomFieldElement(rnd, limits.MaxRetries)
	})
	r.Register(Named("curve_point"), func(rnd *rand.Rand) (any, error) {
		return RandomCurvePoint(rnd, limits.MaxRetries)
	})
	r.Register(Named("private_key"), func(rnd *rand.Rand) (any, error) {
		return RandomPrivateKey(rnd, limits.MaxRetries)
	})
	r.Register(Named("account"), func(rnd *rand.Rand) (any, error) {
		return RandomAccount(rnd, limits), nil
	})

	stateGen := NewStateGenerator(limits)
	r.Register(Named("state"), func(rnd *rand.Rand) (any, error) {
		return stateGen.Generate(rnd)
	})
	transientGen := NewTransientStorageGenerator(limits)
	r.Register(Named("transient_storage"), func(rnd *rand.Rand) (any, error) {
		return transientGen.Generate(rnd)
	})
	evmGen := NewEvmGenerator(limits)
	r.Register(Named("evm"), func(rnd *rand.Rand) (any, error) {
		return evmGen.Generate(rnd), nil
	})

	// Forward-referenced recursive value shapes: byte-string trees, and the
	// richer variant whose leaves mix byte strings, integers, and booleans.
	registerResolved(r, Named("simple"), RecursiveOf(Named("bytes")))
	r.Register(Named("extended_leaf"), func(rnd *rand.Rand) (any, error) {
		switch rnd.Intn(3) {
		case 0:
			return RandomBytes(rnd, 256), nil
		case 1:
			return rnd.Uint64(), nil
		default:
			return rnd.Intn(2) == 1, nil
		}
	})
	registerResolved(r, Named("extended"), RecursiveOf(Named("extended_leaf")))

	return r
}

// registerResolved installs a named alias for a structurally resolved
// descriptor. Composition over a freshly populated registry cannot fail.
func registerResolved(r *Registry, name, desc TypeDesc) {
	gen, err := r.Resolve(desc)
	if err != nil {
		panic(err)
	}
	r.Register(name, gen)
}
