package gen

import "github.com/Zeegaths/keth/ct/common"

// ErrUnsatisfiable is provided by common.ErrUnsatisfiable, which this
// package's files bring into scope via their dot-imports of common; a
// package-level alias here would collide with that dot-imported name.

// ErrUnknownType is an error returned by the resolver when no generator is
// registered for a requested non-parameterized type.
const ErrUnknownType = common.ConstErr("no generator registered for type")

// ErrUnsupportedDefault is an error returned when a trie's value type has no
// rule in the default-selection policy. This is a hard failure, never a
// silent fallback.
const ErrUnsupportedDefault = common.ConstErr("unsupported trie default value type")

// ErrUncomparableKey is an error returned when a mapping or trie key type
// produces values that cannot serve as map keys, such as byte slices.
// Retrying cannot help; the descriptor itself is at fault.
const ErrUncomparableKey = common.ConstErr("key type is not comparable")
