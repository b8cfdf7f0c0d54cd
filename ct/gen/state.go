package gen

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// RandomAccount samples an account with random nonce, balance, and bounded
// code.
func RandomAccount(rnd *rand.Rand, limits Limits) *st.Account {
	return &st.Account{
		Nonce:   rnd.Uint64(),
		Balance: RandU256(rnd),
		Code:    RandomBytes(rnd, limits.MaxCodeSize),
	}
}

// StateGenerator produces State instances satisfying every structural
// invariant of the model: storage only for known addresses, no empty storage
// tries, and a single alias-free initial snapshot. Constraints can pin
// specific addresses into the generated state; all unconstrained degrees of
// freedom are set to random values.
type StateGenerator struct {
	limits Limits

	// Constraints
	accountConstraints []Address // must hold an account in the main trie
	storageConstraints []Address // must hold a non-empty storage trie
	createdConstraints []Address // must be in the created-account set
}

func NewStateGenerator(limits Limits) *StateGenerator {
	return &StateGenerator{limits: limits}
}

// SetAccount adds a constraint ensuring the given address holds an account.
func (g *StateGenerator) SetAccount(address Address) {
	if !slices.Contains(g.accountConstraints, address) {
		g.accountConstraints = append(g.accountConstraints, address)
	}
}

// SetNonEmptyStorage adds a constraint ensuring the given address holds a
// storage trie with at least one entry. It implies SetAccount.
func (g *StateGenerator) SetNonEmptyStorage(address Address) {
	g.SetAccount(address)
	if !slices.Contains(g.storageConstraints, address) {
		g.storageConstraints = append(g.storageConstraints, address)
	}
}

// SetCreated adds a constraint ensuring the given address is in the
// created-account set.
func (g *StateGenerator) SetCreated(address Address) {
	if !slices.Contains(g.createdConstraints, address) {
		g.createdConstraints = append(g.createdConstraints, address)
	}
}

// Generate produces a State honoring all constraints. The result satisfies
// State.CheckInvariants unconditionally; a violation is a generator defect,
// not an acceptable flaky outcome.
func (g *StateGenerator) Generate(rnd *rand.Rand) (*st.State, error) {
	// Constrained addresses first; storage-carrying addresses form a prefix
	// so the contiguous storage range below covers them.
	addresses := slices.Clone(g.storageConstraints)
	for _, address := range g.accountConstraints {
		if !slices.Contains(addresses, address) {
			addresses = append(addresses, address)
		}
	}
	sampled, err := RandomAddresses(rnd, g.limits.MaxAddressSetSize, g.limits.MaxRetries)
	if err != nil {
		return nil, err
	}
	for _, address := range sampled {
		if !slices.Contains(addresses, address) {
			addresses = append(addresses, address)
		}
	}

	main := st.NewAccountTrie()
	for _, address := range addresses {
		main.Put(address, RandomAccount(rnd, g.limits))
	}

	// A contiguous prefix of the address list receives non-empty storage
	// tries. Accounts without storage are legitimate, so the prefix may be
	// empty when unconstrained.
	storageCount := len(g.storageConstraints)
	if len(addresses) > storageCount {
		storageCount += rnd.Intn(len(addresses) - storageCount + 1)
	}
	storage := map[Address]*st.StorageTrie{}
	for _, address := range addresses[:storageCount] {
		trie, err := g.generateStorageTrie(rnd)
		if err != nil {
			return nil, err
		}
		storage[address] = trie
	}

	state := st.NewStateWith(main, storage)

	// The created-account set is sampled independently; it may name
	// addresses never entered into the main trie, modeling accounts created
	// but not yet finalized.
	for address := range RandomAddressSet(rnd, g.limits.MaxAddressSetSize) {
		state.CreatedAccounts[address] = struct{}{}
	}
	for _, address := range g.createdConstraints {
		state.CreatedAccounts[address] = struct{}{}
	}

	if err := state.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w, generated state is inconsistent: %v", ErrUnsatisfiable, err)
	}
	return state, nil
}

// generateStorageTrie samples a storage trie with at least one entry; empty
// storage tries are excluded by construction.
func (g *StateGenerator) generateStorageTrie(rnd *rand.Rand) (*st.StorageTrie, error) {
	return GenerateTrie(rnd, TrieShape[Bytes32, U256]{
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
}

func (g *StateGenerator) Clone() *StateGenerator {
	return &StateGenerator{
		limits:             g.limits,
		accountConstraints: slices.Clone(g.accountConstraints),
		storageConstraints: slices.Clone(g.storageConstraints),
		createdConstraints: slices.Clone(g.createdConstraints),
	}
}

func (g *StateGenerator) Restore(other *StateGenerator) {
	if g == other {
		return
	}
	g.limits = other.limits
	g.accountConstraints = slices.Clone(other.accountConstraints)
	g.storageConstraints = slices.Clone(other.storageConstraints)
	g.createdConstraints = slices.Clone(other.createdConstraints)
}

func (g *StateGenerator) String() string {
	var parts []string
	for _, address := range g.accountConstraints {
		parts = append(parts, fmt.Sprintf("account(%v)", address))
	}
	for _, address := range g.storageConstraints {
		parts = append(parts, fmt.Sprintf("storage(%v)", address))
	}
	for _, address := range g.createdConstraints {
		parts = append(parts, fmt.Sprintf("created(%v)", address))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
