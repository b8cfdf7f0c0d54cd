package st

import (
	"testing"

	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
)

func TestTrie_PuttingDefaultValueRemovesEntry(t *testing.T) {
	trie := NewStorageTrie()
	key := NewBytes32FromInt(1)

	trie.Put(key, NewU256(42))
	if !trie.Contains(key) {
		t.Fatalf("Entry was not stored")
	}

	trie.Put(key, NewU256(0))
	if trie.Contains(key) {
		t.Errorf("Default-valued entry was retained")
	}
	if trie.Len() != 0 {
		t.Errorf("Trie is not empty after removing its only entry")
	}
	if trie.Get(key).Ne(NewU256(0)) {
		t.Errorf("Absent key does not read as the default value")
	}
}

func TestTrie_AbsentKeysReadAsDefault(t *testing.T) {
	trie := NewAccountTrie()
	if trie.Get(NewAddressFromInt(1)) != nil {
		t.Errorf("Absent address does not read as nil account")
	}
}

func TestTrie_NoStoredEntryEqualsDefault(t *testing.T) {
	rnd := rand.New(0)
	trie := NewStorageTrie()
	for i := 0; i < 100; i++ {
		trie.Put(RandomBytes32(rnd), RandU256(rnd))
	}
	trie.ForEach(func(key Bytes32, value U256) {
		if value.IsZero() {
			t.Errorf("Stored entry %v equals the default value", key)
		}
	})
}

func TestTrie_CopyIsAliasFree(t *testing.T) {
	trie := NewStorageTrie()
	key := NewBytes32FromInt(1)
	trie.Put(key, NewU256(42))

	backup := trie.Copy()
	trie.Put(key, NewU256(7))
	if backup.Get(key).Ne(NewU256(42)) {
		t.Errorf("Mutating the original changed the copy")
	}

	backup.Put(NewBytes32FromInt(2), NewU256(8))
	if trie.Contains(NewBytes32FromInt(2)) {
		t.Errorf("Mutating the copy changed the original")
	}
}

func TestTrie_CopyClonesReferenceValues(t *testing.T) {
	trie := NewAccountTrie()
	address := NewAddressFromInt(1)
	account := &Account{Nonce: 1, Code: []byte{1, 2, 3}}
	trie.Put(address, account)

	backup := trie.Copy()
	account.Code[0] = 0xff
	if backup.Get(address).Code[0] == 0xff {
		t.Errorf("Copy shares account code with the original")
	}
}

func TestTrie_EqIgnoresEntryOrderAndObjectIdentity(t *testing.T) {
	a, b := NewStorageTrie(), NewStorageTrie()
	for i := uint64(1); i <= 10; i++ {
		a.Put(NewBytes32FromInt(i), NewU256(i))
		b.Put(NewBytes32FromInt(11-i), NewU256(11-i))
	}
	if !a.Eq(b) {
		t.Errorf("Structurally equal tries are reported as different: %v", a.Diff(b, "storage"))
	}
}

func TestTrie_DiffReportsMissingAndDifferentEntries(t *testing.T) {
	a, b := NewStorageTrie(), NewStorageTrie()
	a.Put(NewBytes32FromInt(1), NewU256(1))
	a.Put(NewBytes32FromInt(2), NewU256(2))
	b.Put(NewBytes32FromInt(2), NewU256(3))
	b.Put(NewBytes32FromInt(4), NewU256(4))

	if diff := a.Diff(b, "storage"); len(diff) != 3 {
		t.Errorf("Expected 3 differences, got %d: %v", len(diff), diff)
	}
}
