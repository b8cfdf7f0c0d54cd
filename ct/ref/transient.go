package ref

import (
	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// GetTransientStorage reads a transient storage slot; absent slots read as
// zero.
func GetTransientStorage(transient *st.TransientStorage, address Address, key Bytes32) U256 {
	trie, found := transient.Tries[address]
	if !found {
		return NewU256(0)
	}
	return trie.Get(key)
}

// SetTransientStorage writes a transient storage slot. Unlike persistent
// storage, no account needs to exist for the address. A trie that becomes
// empty is removed.
func SetTransientStorage(transient *st.TransientStorage, address Address, key Bytes32, value U256) {
	trie, found := transient.Tries[address]
	if !found {
		trie = st.NewStorageTrie()
		transient.Tries[address] = trie
	}
	trie.Put(key, value)
	if trie.Len() == 0 {
		delete(transient.Tries, address)
	}
}

// BeginTransientTransaction pushes a deep copy of the live tries onto the
// snapshot stack.
func BeginTransientTransaction(transient *st.TransientStorage) {
	transient.Snapshots = append(transient.Snapshots, copyStorageTries(transient.Tries))
}

// CommitTransientTransaction discards the most recent snapshot; the initial
// snapshot is never removed.
func CommitTransientTransaction(transient *st.TransientStorage) error {
	if len(transient.Snapshots) <= 1 {
		return ErrNoTransaction
	}
	transient.Snapshots = transient.Snapshots[:len(transient.Snapshots)-1]
	return nil
}

// RollbackTransientTransaction restores the live tries from the most recent
// snapshot and discards it.
func RollbackTransientTransaction(transient *st.TransientStorage) error {
	if len(transient.Snapshots) <= 1 {
		return ErrNoTransaction
	}
	top := transient.Snapshots[len(transient.Snapshots)-1]
	transient.Snapshots = transient.Snapshots[:len(transient.Snapshots)-1]
	transient.Tries = top
	return nil
}
