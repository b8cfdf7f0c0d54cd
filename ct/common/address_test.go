package common

import (
	"testing"

	"pgregory.net/rand"
)

func TestAddress_NewAddress(t *testing.T) {
	address := NewAddressFromInt(0x0102)
	if address[18] != 1 || address[19] != 2 {
		t.Errorf("Address conversion is broken: %v", address)
	}
}

func TestAddress_RandomAddressesDiffer(t *testing.T) {
	rnd := rand.New(0)
	if RandomAddress(rnd) == RandomAddress(rnd) {
		t.Errorf("Consecutive random addresses are identical")
	}
}

func TestBytes32_U256RoundTrip(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 100; i++ {
		value := RandU256(rnd)
		if NewBytes32(value).ToU256().Ne(value) {
			t.Fatalf("Bytes32 round trip is broken for %v", value)
		}
	}
}

func TestBytes_RandomBytesRespectsSizeCap(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 100; i++ {
		if data := RandomBytes(rnd, 17); len(data) > 17 {
			t.Fatalf("Size cap violated: %d", len(data))
		}
	}
}
