package common

import (
	"encoding/binary"

	"pgregory.net/rand"
)

// Fixed-width byte-string types used as generation targets. Widths up to
// eight bytes are the little-endian packing of an integer sample; wider
// values are filled with raw random bytes.
type (
	Bytes4   [4]byte
	Bytes8   [8]byte
	Bytes20  [20]byte
	Bytes64  [64]byte
	Bytes256 [256]byte
)

func NewBytes4(value uint32) (result Bytes4) {
	binary.LittleEndian.PutUint32(result[:], value)
	return
}

func NewBytes8(value uint64) (result Bytes8) {
	binary.LittleEndian.PutUint64(result[:], value)
	return
}

func RandomBytes4(rnd *rand.Rand) Bytes4 {
	return NewBytes4(rnd.Uint32())
}

func RandomBytes8(rnd *rand.Rand) Bytes8 {
	return NewBytes8(rnd.Uint64())
}

func RandomBytes20(rnd *rand.Rand) (result Bytes20) {
	rnd.Read(result[:])
	return
}

func RandomBytes64(rnd *rand.Rand) (result Bytes64) {
	rnd.Read(result[:])
	return
}

func RandomBytes256(rnd *rand.Rand) (result Bytes256) {
	rnd.Read(result[:])
	return
}

// RandomBytes samples a byte string of random length up to maxSize.
func RandomBytes(rnd *rand.Rand, maxSize int) []byte {
	data := make([]byte, rnd.Intn(maxSize+1))
	rnd.Read(data)
	return data
}
