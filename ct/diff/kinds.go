package diff

import (
	"errors"

	"github.com/Zeegaths/keth/ct/ref"
)

// Kind is the implementation-independent classification of an operation
// failure. Equivalence of failures is decided on kinds, never on messages or
// payloads, so implementations remain free in how they phrase an error.
type Kind int

const (
	// KindNone marks a successful operation.
	KindNone Kind = iota
	// KindMissingAccount marks storage access to an address without an
	// account in the main trie.
	KindMissingAccount
	// KindNoTransaction marks a commit or rollback without an open
	// transaction.
	KindNoTransaction
	// KindValueRange marks a value the implementation's native
	// representation cannot hold.
	KindValueRange
	// KindUnknown marks any failure the classification tables do not cover.
	// Two unknown failures are never considered equivalent.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingAccount:
		return "missing account"
	case KindNoTransaction:
		return "no transaction"
	case KindValueRange:
		return "value out of range"
	}
	return "unknown"
}

// classifyError maps a reference-implementation error to its kind.
func classifyError(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ref.ErrMissingAccount):
		return KindMissingAccount
	case errors.Is(err, ref.ErrNoTransaction):
		return KindNoTransaction
	}
	return KindUnknown
}

// kindLabels maps the error-kind labels emitted by known runtime adapters to
// their kind. Multiple labels may map to the same kind; such failures count
// as equivalent.
var kindLabels = map[string]Kind{
	"missing_account":    KindMissingAccount,
	"KeyError":           KindMissingAccount,
	"no_transaction":     KindNoTransaction,
	"IndexError":         KindNoTransaction,
	"value_out_of_range": KindValueRange,
	"OverflowError":      KindValueRange,
	"ValueError":         KindValueRange,
}

// classifyLabel maps a runtime adapter's error-kind label to its kind. The
// empty label marks success.
func classifyLabel(label string) Kind {
	if label == "" {
		return KindNone
	}
	if kind, found := kindLabels[label]; found {
		return kind
	}
	return KindUnknown
}

// equivalent decides whether two failure classifications describe the same
// outcome. Unknown failures never match; they need a classification entry
// before they can count as equivalent.
func equivalent(a, b Kind) bool {
	if a == KindUnknown || b == KindUnknown {
		return false
	}
	return a == b
}
