package st

import (
	. "github.com/Zeegaths/keth/ct/common"
)

// AccessedKey identifies a storage slot in an access set.
type AccessedKey struct {
	Address Address
	Key     Bytes32
}

// Message describes one call frame's invocation parameters. The ParentEvm
// back reference links a nested frame to its caller's context, forming a
// finite call chain; it is never an ownership cycle.
type Message struct {
	Caller              Address
	Target              *Address // nil for contract creation
	CurrentTarget       Address
	Gas                 uint64
	Value               U256
	Data                []byte
	CodeAddress         *Address
	Code                []byte
	Depth               uint64
	ShouldTransferValue bool
	IsStatic            bool
	AccessedAddresses   map[Address]struct{}
	AccessedStorageKeys map[AccessedKey]struct{}
	ParentEvm           *Evm
}

// Evm is a generated execution context. Instances are constructed fresh per
// test case and discarded after one comparison; they carry no methods mutating
// world state.
type Evm struct {
	Pc                  uint64
	Stack               *Stack
	Memory              *Memory
	Code                []byte
	GasLeft             uint64
	Running             bool
	Message             *Message
	Output              []byte
	ReturnData          []byte
	RefundCounter       uint64
	AccessedAddresses   map[Address]struct{}
	AccessedStorageKeys map[AccessedKey]struct{}
}

// CallDepth counts the number of contexts on the chain up to and including
// the receiver.
func (e *Evm) CallDepth() int {
	depth := 0
	for e != nil {
		depth++
		if e.Message == nil {
			break
		}
		e = e.Message.ParentEvm
	}
	return depth
}
