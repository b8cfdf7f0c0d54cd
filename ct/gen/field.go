package gen

import (
	"fmt"
	"math/big"

	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
)

// fieldPrime is the base-field modulus of the alt_bn128 curve. It satisfies
// p = 3 mod 4, which admits square roots via a single exponentiation.
var fieldPrime, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)

// FieldElement is an element of the alt_bn128 base field, always bounded
// below the field's prime modulus.
type FieldElement struct {
	value *big.Int
}

func NewFieldElement(value *big.Int) (FieldElement, error) {
	if value.Sign() < 0 || value.Cmp(fieldPrime) >= 0 {
		return FieldElement{}, fmt.Errorf("value out of field range: %v", value)
	}
	return FieldElement{new(big.Int).Set(value)}, nil
}

func (e FieldElement) Value() *big.Int {
	return new(big.Int).Set(e.value)
}

func (e FieldElement) Eq(other FieldElement) bool {
	return e.value.Cmp(other.value) == 0
}

func (e FieldElement) String() string {
	return e.value.String()
}

// RandomFieldElement samples a field element uniformly from [0, p) using
// rejection sampling over 256-bit values.
func RandomFieldElement(rnd *rand.Rand, retries int) (FieldElement, error) {
	var bytes [32]byte
	for i := 0; i < retries; i++ {
		rnd.Read(bytes[:])
		value := new(big.Int).SetBytes(bytes[:])
		if value.Cmp(fieldPrime) < 0 {
			return FieldElement{value}, nil
		}
	}
	// The rejection rate is below 1/3 per attempt, so running out of the
	// retry budget indicates a defective sampler.
	return FieldElement{}, fmt.Errorf("%w, no field element found", ErrUnsatisfiable)
}

// sqrtModPrime computes a square root of a modulo the field prime, or nil if
// a is not a quadratic residue. Euler's criterion decides residuosity; the
// root itself is a^((p+1)/4) since p = 3 mod 4.
func sqrtModPrime(a *big.Int) *big.Int {
	legendreExp := new(big.Int).Rsh(new(big.Int).Sub(fieldPrime, big.NewInt(1)), 1)
	if a.Sign() != 0 && new(big.Int).Exp(a, legendreExp, fieldPrime).Cmp(big.NewInt(1)) != 0 {
		return nil
	}
	rootExp := new(big.Int).Rsh(new(big.Int).Add(fieldPrime, big.NewInt(1)), 2)
	return new(big.Int).Exp(a, rootExp, fieldPrime)
}
