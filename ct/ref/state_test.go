package ref

import (
	"errors"
	"testing"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

var (
	addr1 = NewAddressFromInt(1)
	addr2 = NewAddressFromInt(2)
	key1  = NewBytes32FromInt(1)
)

func newTestState() *st.State {
	main := st.NewAccountTrie()
	main.Put(addr1, &st.Account{Nonce: 1, Balance: NewU256(100)})
	main.Put(addr2, &st.Account{})

	storage := st.NewStorageTrie()
	storage.Put(key1, NewU256(42))

	return st.NewStateWith(main, map[Address]*st.StorageTrie{addr1: storage})
}

func TestRef_GetAccountSubstitutesEmptyAccount(t *testing.T) {
	state := newTestState()
	missing := NewAddressFromInt(99)
	if GetAccountOptional(state, missing) != nil {
		t.Errorf("Missing account must read as nil")
	}
	if account := GetAccount(state, missing); account == nil || !account.IsEmpty() {
		t.Errorf("Missing account must read as the empty account, got %v", account)
	}
}

func TestRef_DestroyAccountRemovesAccountAndStorage(t *testing.T) {
	state := newTestState()
	DestroyAccount(state, addr1)
	if AccountExists(state, addr1) {
		t.Errorf("Account still exists after destruction")
	}
	if _, found := state.StorageTries[addr1]; found {
		t.Errorf("Storage still exists after destruction")
	}
	if err := state.CheckInvariants(); err != nil {
		t.Errorf("Destruction violated state invariants: %v", err)
	}
}

func TestRef_AccountPredicates(t *testing.T) {
	state := newTestState()
	missing := NewAddressFromInt(99)

	if !IsAccountAlive(state, addr1) {
		t.Errorf("Account with nonce and balance is not alive")
	}
	if IsAccountAlive(state, addr2) {
		t.Errorf("Empty account is alive")
	}
	if !AccountExistsAndIsEmpty(state, addr2) {
		t.Errorf("Existing empty account not detected")
	}
	if AccountExistsAndIsEmpty(state, missing) {
		t.Errorf("Missing account reported as existing and empty")
	}
	if !AccountHasCodeOrNonce(state, addr1) || AccountHasCodeOrNonce(state, addr2) {
		t.Errorf("Code-or-nonce predicate is broken")
	}
	if !IsAccountEmpty(state, missing) {
		t.Errorf("Missing account must be considered empty")
	}
}

func TestRef_SetStorageRequiresAccount(t *testing.T) {
	state := newTestState()
	err := SetStorage(state, NewAddressFromInt(99), key1, NewU256(1))
	if !errors.Is(err, ErrMissingAccount) {
		t.Errorf("Expected ErrMissingAccount, got %v", err)
	}
}

func TestRef_SetThenGetStorage(t *testing.T) {
	state := newTestState()
	key := NewBytes32FromInt(7)
	if err := SetStorage(state, addr2, key, NewU256(13)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if GetStorage(state, addr2, key).Ne(NewU256(13)) {
		t.Errorf("Stored value was not read back")
	}
	if err := state.CheckInvariants(); err != nil {
		t.Errorf("Storage write violated state invariants: %v", err)
	}
}

func TestRef_SetStorageToZeroRemovesEmptyTrie(t *testing.T) {
	state := newTestState()
	if err := SetStorage(state, addr1, key1, NewU256(0)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, found := state.StorageTries[addr1]; found {
		t.Errorf("Empty storage trie was retained")
	}
}

func TestRef_GetStorageOriginalReadsInitialSnapshot(t *testing.T) {
	state := newTestState()
	if err := SetStorage(state, addr1, key1, NewU256(7)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if GetStorageOriginal(state, addr1, key1).Ne(NewU256(42)) {
		t.Errorf("Original value was not read from the initial snapshot")
	}
}

func TestRef_GetStorageOriginalOfCreatedAccountIsZero(t *testing.T) {
	state := newTestState()
	MarkAccountCreated(state, addr1)
	if !GetStorageOriginal(state, addr1, key1).IsZero() {
		t.Errorf("Created account must read original storage as zero")
	}
}

func TestRef_RollbackRestoresStateBeforeTransaction(t *testing.T) {
	state := newTestState()
	before := state.Clone()

	BeginTransaction(state)
	SetAccount(state, addr1, &st.Account{Nonce: 99})
	if err := SetStorage(state, addr1, key1, NewU256(7)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := RollbackTransaction(state); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !state.Eq(before) {
		t.Errorf("Rollback did not restore the previous state: %v", state.Diff(before))
	}
}

func TestRef_CommitKeepsChanges(t *testing.T) {
	state := newTestState()
	BeginTransaction(state)
	SetAccount(state, addr1, &st.Account{Nonce: 99})
	MarkAccountCreated(state, addr2)
	if err := CommitTransaction(state); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if GetAccount(state, addr1).Nonce != 99 {
		t.Errorf("Commit dropped the account update")
	}
	if len(state.CreatedAccounts) != 0 {
		t.Errorf("Outermost commit did not clear created accounts")
	}
	if len(state.Snapshots) != 1 {
		t.Errorf("Snapshot stack has %d entries, want 1", len(state.Snapshots))
	}
}

func TestRef_CommitWithoutTransactionFails(t *testing.T) {
	state := newTestState()
	if !errors.Is(CommitTransaction(state), ErrNoTransaction) {
		t.Errorf("Commit without open transaction must fail")
	}
	if !errors.Is(RollbackTransaction(state), ErrNoTransaction) {
		t.Errorf("Rollback without open transaction must fail")
	}
}

func TestRef_TransientSetGetAndElision(t *testing.T) {
	transient := st.NewTransientStorage()
	SetTransientStorage(transient, addr1, key1, NewU256(42))
	if GetTransientStorage(transient, addr1, key1).Ne(NewU256(42)) {
		t.Errorf("Stored transient value was not read back")
	}
	SetTransientStorage(transient, addr1, key1, NewU256(0))
	if _, found := transient.Tries[addr1]; found {
		t.Errorf("Empty transient trie was retained")
	}
}

func TestRef_TransientRollbackRestoresTries(t *testing.T) {
	transient := st.NewTransientStorage()
	SetTransientStorage(transient, addr1, key1, NewU256(42))
	before := transient.Clone()

	BeginTransientTransaction(transient)
	SetTransientStorage(transient, addr1, key1, NewU256(7))
	if err := RollbackTransientTransaction(transient); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !transient.Eq(before) {
		t.Errorf("Rollback did not restore transient storage: %v", transient.Diff(before))
	}
}
