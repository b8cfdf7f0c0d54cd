package gen

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// TransientStorageGenerator produces TransientStorage instances with bounded
// per-address tries of at least one entry each and a single alias-free
// initial snapshot.
type TransientStorageGenerator struct {
	limits Limits

	// Constraints
	nonEmptyConstraints []Address // must hold a non-empty trie
}

func NewTransientStorageGenerator(limits Limits) *TransientStorageGenerator {
	return &TransientStorageGenerator{limits: limits}
}

// SetNonEmpty adds a constraint ensuring the given address holds a trie with
// at least one entry.
func (g *TransientStorageGenerator) SetNonEmpty(address Address) {
	if !slices.Contains(g.nonEmptyConstraints, address) {
		g.nonEmptyConstraints = append(g.nonEmptyConstraints, address)
	}
}

func (g *TransientStorageGenerator) Generate(rnd *rand.Rand) (*st.TransientStorage, error) {
	addresses := slices.Clone(g.nonEmptyConstraints)
	sampled, err := RandomAddresses(rnd, g.limits.MaxAddressSetSize, g.limits.MaxRetries)
	if err != nil {
		return nil, err
	}
	for _, address := range sampled {
		if !slices.Contains(addresses, address) {
			addresses = append(addresses, address)
		}
	}

	tries := map[Address]*st.StorageTrie{}
	for _, address := range addresses {
		trie, err := GenerateTrie(rnd, TrieShape[Bytes32, U256]{
			Default: NewU256(0),
			Ops:     st.ValueOps[U256]{Equal: U256.Eq},
			Key: func(rnd *rand.Rand) (Bytes32, error) {
				return RandomBytes32(rnd), nil
			},
			Value: func(rnd *rand.Rand) (U256, error) {
				return RandU256(rnd), nil
			},
			MinSize: 1,
			MaxSize: g.limits.MaxStorageKeySetSize,
			Retries: g.limits.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		tries[address] = trie
	}

	transient := st.NewTransientStorageWith(tries)
	if err := transient.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w, generated transient storage is inconsistent: %v", ErrUnsatisfiable, err)
	}
	return transient, nil
}

func (g *TransientStorageGenerator) Clone() *TransientStorageGenerator {
	return &TransientStorageGenerator{
		limits:              g.limits,
		nonEmptyConstraints: slices.Clone(g.nonEmptyConstraints),
	}
}

func (g *TransientStorageGenerator) Restore(other *TransientStorageGenerator) {
	if g == other {
		return
	}
	g.limits = other.limits
	g.nonEmptyConstraints = slices.Clone(other.nonEmptyConstraints)
}

func (g *TransientStorageGenerator) String() string {
	var parts []string
	for _, address := range g.nonEmptyConstraints {
		parts = append(parts, fmt.Sprintf("nonEmpty(%v)", address))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
