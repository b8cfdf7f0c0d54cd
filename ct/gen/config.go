package gen

import (
	"os"
	"strconv"
)

// Limits bounds the size and depth of every generated value. All knobs can be
// overridden through the process environment; unset or malformed variables
// keep their default.
type Limits struct {
	// MaxRecursionDepth bounds the nesting of recursively generated values.
	// Environment: KETH_MAX_RECURSION_DEPTH.
	MaxRecursionDepth int
	// MaxAddressSetSize bounds generated address sets.
	// Environment: KETH_MAX_ADDRESS_SET_SIZE.
	MaxAddressSetSize int
	// MaxStorageKeySetSize bounds generated storage-key sets.
	// Environment: KETH_MAX_STORAGE_KEY_SET_SIZE.
	MaxStorageKeySetSize int
	// MaxTrieSize bounds the number of entries per generated trie.
	// Environment: KETH_MAX_TRIE_SIZE.
	MaxTrieSize int
	// MaxCodeSize bounds generated account code.
	// Environment: KETH_MAX_CODE_SIZE.
	MaxCodeSize int
	// MaxMemorySize bounds generated execution memory, before word padding.
	// Environment: KETH_MAX_MEMORY_SIZE.
	MaxMemorySize int
	// MaxTupleSize bounds variable-length tuples and mappings.
	// Environment: KETH_MAX_TUPLE_SIZE.
	MaxTupleSize int
	// MaxStackSize bounds generated value stacks.
	// Environment: KETH_MAX_STACK_SIZE.
	MaxStackSize int
	// MaxCallDepth bounds the parent chain of generated execution contexts.
	// Environment: KETH_MAX_CALL_DEPTH.
	MaxCallDepth int
	// MaxRetries bounds the number of trial samples per declared type before
	// generation fails with ErrUnsatisfiable.
	// Environment: KETH_MAX_RETRIES.
	MaxRetries int
}

// DefaultLimits returns the documented default for every knob.
func DefaultLimits() Limits {
	return Limits{
		MaxRecursionDepth:    10,
		MaxAddressSetSize:    10,
		MaxStorageKeySetSize: 10,
		MaxTrieSize:          15,
		MaxCodeSize:          256,
		MaxMemorySize:        256,
		MaxTupleSize:         20,
		MaxStackSize:         1024,
		MaxCallDepth:         3,
		MaxRetries:           100,
	}
}

// LimitsFromEnv returns the default limits with every knob overridden by its
// environment variable where one is set to a positive integer.
func LimitsFromEnv() Limits {
	limits := DefaultLimits()
	intFromEnv("KETH_MAX_RECURSION_DEPTH", &limits.MaxRecursionDepth)
	intFromEnv("KETH_MAX_ADDRESS_SET_SIZE", &limits.MaxAddressSetSize)
	intFromEnv("KETH_MAX_STORAGE_KEY_SET_SIZE", &limits.MaxStorageKeySetSize)
	intFromEnv("KETH_MAX_TRIE_SIZE", &limits.MaxTrieSize)
	intFromEnv("KETH_MAX_CODE_SIZE", &limits.MaxCodeSize)
	intFromEnv("KETH_MAX_MEMORY_SIZE", &limits.MaxMemorySize)
	intFromEnv("KETH_MAX_TUPLE_SIZE", &limits.MaxTupleSize)
	intFromEnv("KETH_MAX_STACK_SIZE", &limits.MaxStackSize)
	intFromEnv("KETH_MAX_CALL_DEPTH", &limits.MaxCallDepth)
	intFromEnv("KETH_MAX_RETRIES", &limits.MaxRetries)
	return limits
}

func intFromEnv(name string, target *int) {
	value, err := strconv.Atoi(os.Getenv(name))
	if err == nil && value > 0 {
		*target = value
	}
}
