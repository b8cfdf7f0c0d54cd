package st

import (
	"fmt"

	"golang.org/x/exp/maps"

	. "github.com/Zeegaths/keth/ct/common"
)

// Snapshot is a deep, alias-free copy of the mutable world state taken at a
// point in time.
type Snapshot struct {
	Accounts *AccountTrie
	Storage  map[Address]*StorageTrie
}

// Copy duplicates the snapshot without sharing any mutable container.
func (s Snapshot) Copy() Snapshot {
	return Snapshot{
		Accounts: s.Accounts.Copy(),
		Storage:  copyStorageTries(s.Storage),
	}
}

func (s Snapshot) Eq(other Snapshot) bool {
	return s.Accounts.Eq(other.Accounts) && storageTriesEqual(s.Storage, other.Storage)
}

func copyStorageTries(tries map[Address]*StorageTrie) map[Address]*StorageTrie {
	res := make(map[Address]*StorageTrie, len(tries))
	for address, trie := range tries {
		res[address] = trie.Copy()
	}
	return res
}

func storageTriesEqual(a, b map[Address]*StorageTrie) bool {
	if len(a) != len(b) {
		return false
	}
	for address, trie := range a {
		other, found := b[address]
		if !found || !trie.Eq(other) {
			return false
		}
	}
	return true
}

// State is the persistent world state: the main account trie, per-address
// storage tries, the snapshot stack, and the set of accounts created during
// the current transaction.
type State struct {
	MainTrie        *AccountTrie
	StorageTries    map[Address]*StorageTrie
	Snapshots       []Snapshot
	CreatedAccounts map[Address]struct{}
}

// NewState creates an empty state holding its initial snapshot.
func NewState() *State {
	return NewStateWith(NewAccountTrie(), map[Address]*StorageTrie{})
}

// NewStateWith assembles a state from the given live tries and installs the
// single initial snapshot as a deep copy of them. The caller passes ownership
// of the tries to the state.
func NewStateWith(main *AccountTrie, storage map[Address]*StorageTrie) *State {
	state := &State{
		MainTrie:        main,
		StorageTries:    storage,
		CreatedAccounts: map[Address]struct{}{},
	}
	state.Snapshots = []Snapshot{{
		Accounts: main.Copy(),
		Storage:  copyStorageTries(storage),
	}}
	return state
}

// Clone creates a deep copy sharing no mutable container with the receiver.
func (s *State) Clone() *State {
	snapshots := make([]Snapshot, 0, len(s.Snapshots))
	for _, snapshot := range s.Snapshots {
		snapshots = append(snapshots, snapshot.Copy())
	}
	return &State{
		MainTrie:        s.MainTrie.Copy(),
		StorageTries:    copyStorageTries(s.StorageTries),
		Snapshots:       snapshots,
		CreatedAccounts: maps.Clone(s.CreatedAccounts),
	}
}

func (s *State) Eq(other *State) bool {
	if !s.MainTrie.Eq(other.MainTrie) ||
		!storageTriesEqual(s.StorageTries, other.StorageTries) ||
		!maps.Equal(s.CreatedAccounts, other.CreatedAccounts) {
		return false
	}
	if len(s.Snapshots) != len(other.Snapshots) {
		return false
	}
	for i, snapshot := range s.Snapshots {
		if !snapshot.Eq(other.Snapshots[i]) {
			return false
		}
	}
	return true
}

func (s *State) Diff(other *State) (res []string) {
	res = append(res, s.MainTrie.Diff(other.MainTrie, "main trie")...)
	for address, trie := range s.StorageTries {
		otherTrie, found := other.StorageTries[address]
		if !found {
			res = append(res, fmt.Sprintf("Missing storage trie for %v", address))
			continue
		}
		res = append(res, trie.Diff(otherTrie, fmt.Sprintf("storage[%v]", address))...)
	}
	for address := range other.StorageTries {
		if _, found := s.StorageTries[address]; !found {
			res = append(res, fmt.Sprintf("Unexpected storage trie for %v", address))
		}
	}
	if len(s.Snapshots) != len(other.Snapshots) {
		res = append(res, fmt.Sprintf("Different number of snapshots: %d vs %d", len(s.Snapshots), len(other.Snapshots)))
	} else {
		for i, snapshot := range s.Snapshots {
			if !snapshot.Eq(other.Snapshots[i]) {
				res = append(res, fmt.Sprintf("Different snapshot at index %d", i))
			}
		}
	}
	if !maps.Equal(s.CreatedAccounts, other.CreatedAccounts) {
		res = append(res, fmt.Sprintf("Different created accounts: %v vs %v",
			maps.Keys(s.CreatedAccounts), maps.Keys(other.CreatedAccounts)))
	}
	return
}

// CheckInvariants verifies the structural invariants every State must obey:
// storage tries only for known addresses, at least one snapshot, and no empty
// storage tries.
func (s *State) CheckInvariants() error {
	for address, trie := range s.StorageTries {
		if !s.MainTrie.Contains(address) {
			if _, created := s.CreatedAccounts[address]; !created {
				return fmt.Errorf("storage trie for unknown address %v", address)
			}
		}
		if trie.Len() == 0 {
			return fmt.Errorf("empty storage trie retained for address %v", address)
		}
	}
	if len(s.Snapshots) == 0 {
		return fmt.Errorf("state holds no snapshot")
	}
	return nil
}

func (s *State) String() string {
	return fmt.Sprintf("{accounts: %d, storage tries: %d, snapshots: %d, created: %d}",
		s.MainTrie.Len(), len(s.StorageTries), len(s.Snapshots), len(s.CreatedAccounts))
}
