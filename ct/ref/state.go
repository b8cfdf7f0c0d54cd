package ref

import (
	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// GetAccountOptional returns the account at the given address, or nil if the
// main trie has no entry for it.
func GetAccountOptional(state *st.State, address Address) *st.Account {
	return state.MainTrie.Get(address)
}

// GetAccount returns the account at the given address, substituting the
// canonical empty account for absent entries.
func GetAccount(state *st.State, address Address) *st.Account {
	if account := GetAccountOptional(state, address); account != nil {
		return account
	}
	return st.EmptyAccount()
}

// SetAccount replaces the account at the given address; a nil account removes
// the entry.
func SetAccount(state *st.State, address Address, account *st.Account) {
	state.MainTrie.Put(address, account)
}

// DestroyAccount removes the account at the given address together with its
// storage.
func DestroyAccount(state *st.State, address Address) {
	DestroyStorage(state, address)
	SetAccount(state, address, nil)
}

// DestroyStorage drops the complete storage of the given address.
func DestroyStorage(state *st.State, address Address) {
	delete(state.StorageTries, address)
}

// MarkAccountCreated records that the account was created in the current
// transaction.
func MarkAccountCreated(state *st.State, address Address) {
	state.CreatedAccounts[address] = struct{}{}
}

func AccountExists(state *st.State, address Address) bool {
	return GetAccountOptional(state, address) != nil
}

func AccountHasCodeOrNonce(state *st.State, address Address) bool {
	return GetAccount(state, address).HasCodeOrNonce()
}

func IsAccountEmpty(state *st.State, address Address) bool {
	return GetAccount(state, address).IsEmpty()
}

func AccountExistsAndIsEmpty(state *st.State, address Address) bool {
	account := GetAccountOptional(state, address)
	return account != nil && account.IsEmpty()
}

// IsAccountAlive checks whether the account exists and is distinguishable
// from the canonical empty account.
func IsAccountAlive(state *st.State, address Address) bool {
	account := GetAccountOptional(state, address)
	return account != nil && !account.IsEmpty()
}

// GetStorage reads a storage slot; absent slots read as zero.
func GetStorage(state *st.State, address Address, key Bytes32) U256 {
	trie, found := state.StorageTries[address]
	if !found {
		return NewU256(0)
	}
	return trie.Get(key)
}

// GetStorageOriginal reads a storage slot as of the start of the current
// transaction, i.e. from the oldest snapshot. Slots of accounts created in
// the current transaction always read as zero.
func GetStorageOriginal(state *st.State, address Address, key Bytes32) U256 {
	if _, created := state.CreatedAccounts[address]; created {
		return NewU256(0)
	}
	original := state.Snapshots[0]
	trie, found := original.Storage[address]
	if !found {
		return NewU256(0)
	}
	return trie.Get(key)
}

// SetStorage writes a storage slot. The addressed account must exist in the
// main trie. A storage trie that becomes empty is removed rather than
// retained as a placeholder.
func SetStorage(state *st.State, address Address, key Bytes32, value U256) error {
	if state.MainTrie.Get(address) == nil {
		return ErrMissingAccount
	}
	trie, found := state.StorageTries[address]
	if !found {
		trie = st.NewStorageTrie()
		state.StorageTries[address] = trie
	}
	trie.Put(key, value)
	if trie.Len() == 0 {
		delete(state.StorageTries, address)
	}
	return nil
}

// BeginTransaction pushes a deep copy of the live tries onto the snapshot
// stack.
func BeginTransaction(state *st.State) {
	state.Snapshots = append(state.Snapshots, st.Snapshot{
		Accounts: state.MainTrie.Copy(),
		Storage:  copyStorageTries(state.StorageTries),
	})
}

// CommitTransaction discards the most recent snapshot. Committing the
// outermost transaction clears the created-account set. The initial snapshot
// is never removed.
func CommitTransaction(state *st.State) error {
	if len(state.Snapshots) <= 1 {
		return ErrNoTransaction
	}
	state.Snapshots = state.Snapshots[:len(state.Snapshots)-1]
	if len(state.Snapshots) == 1 {
		clear(state.CreatedAccounts)
	}
	return nil
}

// RollbackTransaction restores the live tries from the most recent snapshot
// and discards it. The initial snapshot is never removed.
func RollbackTransaction(state *st.State) error {
	if len(state.Snapshots) <= 1 {
		return ErrNoTransaction
	}
	top := state.Snapshots[len(state.Snapshots)-1]
	state.Snapshots = state.Snapshots[:len(state.Snapshots)-1]
	state.MainTrie = top.Accounts
	state.StorageTries = top.Storage
	if len(state.Snapshots) == 1 {
		clear(state.CreatedAccounts)
	}
	return nil
}

func copyStorageTries(tries map[Address]*st.StorageTrie) map[Address]*st.StorageTrie {
	res := make(map[Address]*st.StorageTrie, len(tries))
	for address, trie := range tries {
		res[address] = trie.Copy()
	}
	return res
}
