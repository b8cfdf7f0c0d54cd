package st

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/sha3"

	. "github.com/Zeegaths/keth/ct/common"
)

// Account is the value stored in the main trie for a live address. Accounts
// are immutable values; mutations replace the whole account.
type Account struct {
	Nonce   uint64
	Balance U256
	Code    []byte
}

// EmptyAccount returns the canonical account with zero nonce, zero balance,
// and empty code.
func EmptyAccount() *Account {
	return &Account{}
}

// CodeHash computes the keccak256 hash of the account's code.
func (a *Account) CodeHash() (hash [32]byte) {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(a.Code)
	copy(hash[:], hasher.Sum(nil))
	return
}

func (a *Account) HasCodeOrNonce() bool {
	return a.Nonce != 0 || len(a.Code) != 0
}

// IsEmpty checks whether the account is indistinguishable from the canonical
// empty account.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && len(a.Code) == 0
}

// Clone creates an independent copy of the account. A nil receiver yields nil.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	return &Account{
		Nonce:   a.Nonce,
		Balance: a.Balance,
		Code:    bytes.Clone(a.Code),
	}
}

// Eq compares two accounts for structural equality. Nil pointers are treated
// as absent accounts and only equal to each other.
func (a *Account) Eq(b *Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Nonce == b.Nonce &&
		a.Balance.Eq(b.Balance) &&
		bytes.Equal(a.Code, b.Code)
}

func (a *Account) String() string {
	if a == nil {
		return "absent"
	}
	code := fmt.Sprintf("%x", a.Code)
	if len(a.Code) > 16 {
		code = fmt.Sprintf("%x... (size: %d)", a.Code[:16], len(a.Code))
	}
	return fmt.Sprintf("{nonce: %d, balance: %v, code: %s}", a.Nonce, a.Balance, code)
}
