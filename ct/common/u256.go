package common

import (
	"fmt"
	"math/big"

	"pgregory.net/rand"

	"github.com/holiman/uint256"
)

// U256 is a 256-bit unsigned integer type. Contrary to holiman/uint256.Int
// the API operates on values rather than pointers.
type U256 struct {
	internal uint256.Int
}

// NewU256 creates a new U256 instance from up to 4 uint64 arguments. The
// arguments are given in the order from most significant to least significant
// by padding leading zeros as needed. No argument results in a value of zero.
func NewU256(args ...uint64) (result U256) {
	if len(args) > 4 {
		panic("too many arguments")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args) && i < len(result.internal); i++ {
		result.internal[3-i-offset] = args[i]
	}
	return
}

// NewU256FromBytes creates a new U256 instance from up to 32 byte arguments.
// The arguments are given in the order from most significant to least
// significant by padding leading zeros as needed.
func NewU256FromBytes(bytes ...byte) (result U256) {
	if len(bytes) > 32 {
		panic("too many arguments")
	}
	result.internal.SetBytes(bytes)
	return
}

// RandU256 samples a uniformly distributed 256-bit value.
func RandU256(rnd *rand.Rand) U256 {
	var value U256
	value.internal[0] = rnd.Uint64()
	value.internal[1] = rnd.Uint64()
	value.internal[2] = rnd.Uint64()
	value.internal[3] = rnd.Uint64()
	return value
}

// RandU256NonZero samples a uniformly distributed non-zero 256-bit value.
// Only an all-zero word is rejected, so the budget is never exhausted in
// practice; it still bounds the loop like every other rejection sampler.
func RandU256NonZero(rnd *rand.Rand, retries int) (U256, error) {
	for i := 0; i < retries; i++ {
		if value := RandU256(rnd); !value.IsZero() {
			return value, nil
		}
	}
	return U256{}, fmt.Errorf("%w, no non-zero value found within %d samples", ErrUnsatisfiable, retries)
}

func MaxU256() (result U256) {
	result.internal.SetAllOne()
	return
}

func (i U256) IsZero() bool {
	return i.internal.IsZero()
}

func (i U256) IsUint64() bool {
	return i.internal.IsUint64()
}

func (i U256) Uint64() uint64 {
	return i.internal.Uint64()
}

func (i U256) Bytes32be() [32]byte {
	return i.internal.Bytes32()
}

func (a U256) Eq(b U256) bool {
	return a.internal.Eq(&b.internal)
}

func (a U256) Ne(b U256) bool {
	return !a.internal.Eq(&b.internal)
}

func (a U256) Lt(b U256) bool {
	return a.internal.Lt(&b.internal)
}

func (a U256) Gt(b U256) bool {
	return a.internal.Gt(&b.internal)
}

func (a U256) Add(b U256) (z U256) {
	z.internal.Add(&a.internal, &b.internal)
	return
}

func (a U256) Sub(b U256) (z U256) {
	z.internal.Sub(&a.internal, &b.internal)
	return
}

func (i U256) String() string {
	return fmt.Sprintf("%016x %016x %016x %016x", i.internal[3], i.internal[2], i.internal[1], i.internal[0])
}

func (i U256) DecimalString() string {
	return i.internal.Dec()
}

func (i U256) ToBig() *big.Int {
	return i.internal.ToBig()
}

// U256FromBig converts a big.Int into a U256. Values exceeding 256 bits are
// truncated to their least significant 256 bits.
func U256FromBig(b *big.Int) (result U256) {
	result.internal.SetFromBig(b)
	return
}
