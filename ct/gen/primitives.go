package gen

import (
	"fmt"

	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
)

// RandomAddresses samples a duplicate-free, ordered list of addresses of
// random size up to maxSize. The retry budget bounds the duplicate
// rejections per element.
func RandomAddresses(rnd *rand.Rand, maxSize, retries int) ([]Address, error) {
	size := rnd.Intn(maxSize + 1)
	seen := map[Address]struct{}{}
	addresses := make([]Address, 0, size)
	for len(addresses) < size {
		address, err := freshAddress(rnd, seen, retries)
		if err != nil {
			return nil, err
		}
		seen[address] = struct{}{}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

func freshAddress(rnd *rand.Rand, seen map[Address]struct{}, retries int) (Address, error) {
	for i := 0; i < retries; i++ {
		address := RandomAddress(rnd)
		if _, found := seen[address]; !found {
			return address, nil
		}
	}
	return Address{}, fmt.Errorf("%w, no unused address found within %d samples", ErrUnsatisfiable, retries)
}

// RandomAddressSet samples a bounded set of addresses.
func RandomAddressSet(rnd *rand.Rand, maxSize int) map[Address]struct{} {
	set := map[Address]struct{}{}
	for i, size := 0, rnd.Intn(maxSize+1); i < size; i++ {
		set[RandomAddress(rnd)] = struct{}{}
	}
	return set
}
