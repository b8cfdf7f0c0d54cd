package st

import (
	"fmt"

	. "github.com/Zeegaths/keth/ct/common"
)

// TransientStorage is the storage region scoped to a single top-level
// execution. It shares the trie/snapshot shape of the persistent state but
// holds no accounts.
type TransientStorage struct {
	Tries     map[Address]*StorageTrie
	Snapshots []map[Address]*StorageTrie
}

// NewTransientStorage creates an empty transient storage holding its initial
// snapshot.
func NewTransientStorage() *TransientStorage {
	return NewTransientStorageWith(map[Address]*StorageTrie{})
}

// NewTransientStorageWith assembles a transient storage from the given live
// tries and installs the single initial snapshot as a deep copy of them.
func NewTransientStorageWith(tries map[Address]*StorageTrie) *TransientStorage {
	return &TransientStorage{
		Tries:     tries,
		Snapshots: []map[Address]*StorageTrie{copyStorageTries(tries)},
	}
}

func (t *TransientStorage) Clone() *TransientStorage {
	snapshots := make([]map[Address]*StorageTrie, 0, len(t.Snapshots))
	for _, snapshot := range t.Snapshots {
		snapshots = append(snapshots, copyStorageTries(snapshot))
	}
	return &TransientStorage{
		Tries:     copyStorageTries(t.Tries),
		Snapshots: snapshots,
	}
}

func (t *TransientStorage) Eq(other *TransientStorage) bool {
	if !storageTriesEqual(t.Tries, other.Tries) {
		return false
	}
	if len(t.Snapshots) != len(other.Snapshots) {
		return false
	}
	for i, snapshot := range t.Snapshots {
		if !storageTriesEqual(snapshot, other.Snapshots[i]) {
			return false
		}
	}
	return true
}

func (t *TransientStorage) Diff(other *TransientStorage) (res []string) {
	for address, trie := range t.Tries {
		otherTrie, found := other.Tries[address]
		if !found {
			res = append(res, fmt.Sprintf("Missing transient trie for %v", address))
			continue
		}
		res = append(res, trie.Diff(otherTrie, fmt.Sprintf("transient[%v]", address))...)
	}
	for address := range other.Tries {
		if _, found := t.Tries[address]; !found {
			res = append(res, fmt.Sprintf("Unexpected transient trie for %v", address))
		}
	}
	if len(t.Snapshots) != len(other.Snapshots) {
		res = append(res, fmt.Sprintf("Different number of snapshots: %d vs %d", len(t.Snapshots), len(other.Snapshots)))
	}
	return
}

// CheckInvariants verifies that the snapshot stack is never empty and that no
// empty trie is retained.
func (t *TransientStorage) CheckInvariants() error {
	for address, trie := range t.Tries {
		if trie.Len() == 0 {
			return fmt.Errorf("empty transient trie retained for address %v", address)
		}
	}
	if len(t.Snapshots) == 0 {
		return fmt.Errorf("transient storage holds no snapshot")
	}
	return nil
}

func (t *TransientStorage) String() string {
	return fmt.Sprintf("{tries: %d, snapshots: %d}", len(t.Tries), len(t.Snapshots))
}
