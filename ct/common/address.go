package common

import (
	"encoding/hex"
	"fmt"

	"pgregory.net/rand"
)

// Address is a 160-bit account identifier.
type Address [20]byte

// Bytes32 is a 256-bit storage key or hash value.
type Bytes32 [32]byte

func NewAddress(in U256) Address {
	bytes := in.Bytes32be()
	var address Address
	copy(address[:], bytes[12:])
	return address
}

func NewAddressFromInt(in uint64) Address {
	return NewAddress(NewU256(in))
}

func RandomAddress(rnd *rand.Rand) Address {
	address := Address{}
	rnd.Read(address[:]) // never returns an error
	return address
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func NewBytes32(in U256) Bytes32 {
	return in.Bytes32be()
}

func NewBytes32FromInt(in uint64) Bytes32 {
	return NewBytes32(NewU256(in))
}

func RandomBytes32(rnd *rand.Rand) Bytes32 {
	key := Bytes32{}
	rnd.Read(key[:])
	return key
}

func (b Bytes32) ToU256() U256 {
	return NewU256FromBytes(b[:]...)
}

func (b Bytes32) String() string {
	return fmt.Sprintf("0x%x", b[:])
}
