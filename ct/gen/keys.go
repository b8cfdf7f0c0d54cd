package gen

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
)

// curveOrder is the order of the secp256k1 group; valid private scalars lie
// in [1, N-1].
var curveOrder = secp256k1.S256().N

// RandomPrivateKey samples a valid secp256k1 private key. The scalar is
// packed big-endian as required by the signature scheme. Only scalars
// outside [1, N-1] are rejected and resampled within the retry budget.
func RandomPrivateKey(rnd *rand.Rand, retries int) (*secp256k1.PrivateKey, error) {
	var bytes [32]byte
	for i := 0; i < retries; i++ {
		rnd.Read(bytes[:])
		scalar := new(big.Int).SetBytes(bytes[:])
		if scalar.Sign() > 0 && scalar.Cmp(curveOrder) < 0 {
			scalar.FillBytes(bytes[:])
			return secp256k1.PrivKeyFromBytes(bytes[:]), nil
		}
	}
	return nil, fmt.Errorf("%w, no valid private scalar found within %d samples", ErrUnsatisfiable, retries)
}
