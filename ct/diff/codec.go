package diff

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// The wire format is RLP. Map-shaped containers are serialized as key-sorted
// entry lists so that equal values encode to equal bytes; decoding rebuilds
// structural equality, never object identity.

type wireAccount struct {
	Nonce   uint64
	Balance [32]byte
	Code    []byte
}

type wireAccountEntry struct {
	Address Address
	Account wireAccount
}

type wireStorageEntry struct {
	Key   Bytes32
	Value [32]byte
}

type wireStorageTrie struct {
	Address Address
	Entries []wireStorageEntry
}

type wireSnapshot struct {
	Accounts []wireAccountEntry
	Storage  []wireStorageTrie
}

type wireState struct {
	Accounts  []wireAccountEntry
	Storage   []wireStorageTrie
	Snapshots []wireSnapshot
	Created   []Address
}

type wireTransient struct {
	Tries     []wireStorageTrie
	Snapshots [][]wireStorageTrie
}

// wireArgs carries every argument an operation can take; unused fields stay
// zero. The optional account needs an explicit presence flag since RLP has
// no encoding for absence.
type wireArgs struct {
	Address    Address
	Key        Bytes32
	Value      [32]byte
	HasAccount bool
	Account    wireAccount
}

type wireResult struct {
	HasAccount bool
	Account    wireAccount
	Value      [32]byte
	Flag       bool
}

func encodeAccount(account *st.Account) wireAccount {
	return wireAccount{
		Nonce:   account.Nonce,
		Balance: account.Balance.Bytes32be(),
		Code:    account.Code,
	}
}

func decodeAccount(account wireAccount) *st.Account {
	return &st.Account{
		Nonce:   account.Nonce,
		Balance: NewU256FromBytes(account.Balance[:]...),
		Code:    account.Code,
	}
}

func encodeAccountTrie(trie *st.AccountTrie) []wireAccountEntry {
	keys := trie.Keys()
	slices.SortFunc(keys, func(a, b Address) int {
		return bytes.Compare(a[:], b[:])
	})
	entries := make([]wireAccountEntry, 0, len(keys))
	for _, address := range keys {
		entries = append(entries, wireAccountEntry{
			Address: address,
			Account: encodeAccount(trie.Get(address)),
		})
	}
	return entries
}

func decodeAccountTrie(entries []wireAccountEntry) *st.AccountTrie {
	trie := st.NewAccountTrie()
	for _, entry := range entries {
		trie.Put(entry.Address, decodeAccount(entry.Account))
	}
	return trie
}

func encodeStorageTrie(trie *st.StorageTrie) []wireStorageEntry {
	keys := trie.Keys()
	slices.SortFunc(keys, func(a, b Bytes32) int {
		return bytes.Compare(a[:], b[:])
	})
	entries := make([]wireStorageEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, wireStorageEntry{
			Key:   key,
			Value: trie.Get(key).Bytes32be(),
		})
	}
	return entries
}

func decodeStorageTrie(entries []wireStorageEntry) *st.StorageTrie {
	trie := st.NewStorageTrie()
	for _, entry := range entries {
		trie.Put(entry.Key, NewU256FromBytes(entry.Value[:]...))
	}
	return trie
}

func encodeStorageTries(tries map[Address]*st.StorageTrie) []wireStorageTrie {
	addresses := maps.Keys(tries)
	slices.SortFunc(addresses, func(a, b Address) int {
		return bytes.Compare(a[:], b[:])
	})
	res := make([]wireStorageTrie, 0, len(addresses))
	for _, address := range addresses {
		res = append(res, wireStorageTrie{
			Address: address,
			Entries: encodeStorageTrie(tries[address]),
		})
	}
	return res
}

func decodeStorageTries(wires []wireStorageTrie) map[Address]*st.StorageTrie {
	tries := make(map[Address]*st.StorageTrie, len(wires))
	for _, wire := range wires {
		tries[wire.Address] = decodeStorageTrie(wire.Entries)
	}
	return tries
}

// EncodeState serializes a state for the runtime boundary.
func EncodeState(state *st.State) ([]byte, error) {
	snapshots := make([]wireSnapshot, 0, len(state.Snapshots))
	for _, snapshot := range state.Snapshots {
		snapshots = append(snapshots, wireSnapshot{
			Accounts: encodeAccountTrie(snapshot.Accounts),
			Storage:  encodeStorageTries(snapshot.Storage),
		})
	}
	created := maps.Keys(state.CreatedAccounts)
	slices.SortFunc(created, func(a, b Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return rlp.EncodeToBytes(wireState{
		Accounts:  encodeAccountTrie(state.MainTrie),
		Storage:   encodeStorageTries(state.StorageTries),
		Snapshots: snapshots,
		Created:   created,
	})
}

// DecodeState reconstructs a state from its serialized form.
func DecodeState(data []byte) (*st.State, error) {
	var wire wireState
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	snapshots := make([]st.Snapshot, 0, len(wire.Snapshots))
	for _, snapshot := range wire.Snapshots {
		snapshots = append(snapshots, st.Snapshot{
			Accounts: decodeAccountTrie(snapshot.Accounts),
			Storage:  decodeStorageTries(snapshot.Storage),
		})
	}
	created := make(map[Address]struct{}, len(wire.Created))
	for _, address := range wire.Created {
		created[address] = struct{}{}
	}
	return &st.State{
		MainTrie:        decodeAccountTrie(wire.Accounts),
		StorageTries:    decodeStorageTries(wire.Storage),
		Snapshots:       snapshots,
		CreatedAccounts: created,
	}, nil
}

// EncodeTransientStorage serializes a transient storage for the runtime
// boundary.
func EncodeTransientStorage(transient *st.TransientStorage) ([]byte, error) {
	snapshots := make([][]wireStorageTrie, 0, len(transient.Snapshots))
	for _, snapshot := range transient.Snapshots {
		snapshots = append(snapshots, encodeStorageTries(snapshot))
	}
	return rlp.EncodeToBytes(wireTransient{
		Tries:     encodeStorageTries(transient.Tries),
		Snapshots: snapshots,
	})
}

// DecodeTransientStorage reconstructs a transient storage from its
// serialized form.
func DecodeTransientStorage(data []byte) (*st.TransientStorage, error) {
	var wire wireTransient
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode transient storage: %w", err)
	}
	snapshots := make([]map[Address]*st.StorageTrie, 0, len(wire.Snapshots))
	for _, snapshot := range wire.Snapshots {
		snapshots = append(snapshots, decodeStorageTries(snapshot))
	}
	return &st.TransientStorage{
		Tries:     decodeStorageTries(wire.Tries),
		Snapshots: snapshots,
	}, nil
}

// EncodeArgs serializes operation arguments.
func EncodeArgs(args Args) ([]byte, error) {
	wire := wireArgs{
		Address: args.Address,
		Key:     args.Key,
		Value:   args.Value.Bytes32be(),
	}
	if args.Account != nil {
		wire.HasAccount = true
		wire.Account = encodeAccount(args.Account)
	}
	return rlp.EncodeToBytes(wire)
}

// DecodeArgs reconstructs operation arguments from their serialized form.
func DecodeArgs(data []byte) (Args, error) {
	var wire wireArgs
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return Args{}, fmt.Errorf("failed to decode arguments: %w", err)
	}
	args := Args{
		Address: wire.Address,
		Key:     wire.Key,
		Value:   NewU256FromBytes(wire.Value[:]...),
	}
	if wire.HasAccount {
		args.Account = decodeAccount(wire.Account)
	}
	return args, nil
}

// EncodeResult serializes an operation result.
func EncodeResult(result Result) ([]byte, error) {
	wire := wireResult{
		Value: result.Value.Bytes32be(),
		Flag:  result.Flag,
	}
	if result.Account != nil {
		wire.HasAccount = true
		wire.Account = encodeAccount(result.Account)
	}
	return rlp.EncodeToBytes(wire)
}

// DecodeResult reconstructs an operation result from its serialized form.
func DecodeResult(data []byte) (Result, error) {
	var wire wireResult
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return Result{}, fmt.Errorf("failed to decode result: %w", err)
	}
	result := Result{
		Value: NewU256FromBytes(wire.Value[:]...),
		Flag:  wire.Flag,
	}
	if wire.HasAccount {
		result.Account = decodeAccount(wire.Account)
	}
	return result, nil
}
