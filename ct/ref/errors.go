// Package ref is the reference implementation of the modeled state
// operations: one pure function per operation, mutating only its state
// argument. The differential harness compares an opaque runtime under test
// against these semantics.
package ref

import "github.com/Zeegaths/keth/ct/common"

// ErrMissingAccount is returned by operations requiring a live entry in the
// main trie for the addressed account.
const ErrMissingAccount = common.ConstErr("no account in main trie")

// ErrNoTransaction is returned when committing or rolling back with no open
// transaction, i.e. with only the initial snapshot left.
const ErrNoTransaction = common.ConstErr("no open transaction")
