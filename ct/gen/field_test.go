package gen

import (
	"errors"
	"math/big"
	"testing"

	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
)

func TestNewFieldElement_RejectsOutOfRangeValues(t *testing.T) {
	if _, err := NewFieldElement(big.NewInt(-1)); err == nil {
		t.Errorf("negative value was accepted")
	}
	if _, err := NewFieldElement(fieldPrime); err == nil {
		t.Errorf("the modulus itself was accepted")
	}
	if _, err := NewFieldElement(big.NewInt(0)); err != nil {
		t.Errorf("zero was rejected: %v", err)
	}
}

func TestRandomFieldElement_IsBoundedBelowPrime(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 1000; i++ {
		element, err := RandomFieldElement(rnd, 100)
		if err != nil {
			t.Fatalf("failed to sample field element: %v", err)
		}
		if value := element.Value(); value.Sign() < 0 || value.Cmp(fieldPrime) >= 0 {
			t.Fatalf("sampled value out of field range: %v", value)
		}
	}
}

func TestSqrtModPrime_RootsSquareBack(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 20; i++ {
		element, err := RandomFieldElement(rnd, 100)
		if err != nil {
			t.Fatalf("failed to sample field element: %v", err)
		}
		square := new(big.Int).Exp(element.Value(), big.NewInt(2), fieldPrime)
		root := sqrtModPrime(square)
		if root == nil {
			t.Fatalf("no root found for the square %v", square)
		}
		if new(big.Int).Exp(root, big.NewInt(2), fieldPrime).Cmp(square) != 0 {
			t.Errorf("root %v does not square back to %v", root, square)
		}
	}
}

func TestSqrtModPrime_NonResiduesHaveNoRoot(t *testing.T) {
	// -1 is a non-residue for any prime p = 3 mod 4.
	nonResidue := new(big.Int).Sub(fieldPrime, big.NewInt(1))
	if root := sqrtModPrime(nonResidue); root != nil {
		t.Errorf("non-residue has a root: %v", root)
	}
}

func TestRandomCurvePoint_SatisfiesTheCurveEquation(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 100; i++ {
		point, err := RandomCurvePoint(rnd, 100)
		if err != nil {
			t.Fatalf("failed to sample curve point: %v", err)
		}
		if !point.OnCurve() {
			t.Errorf("sampled point is not on the curve: %v", point)
		}
	}
}

func TestCurvePoint_InfinityIsOnCurve(t *testing.T) {
	if !(CurvePoint{Infinity: true}).OnCurve() {
		t.Errorf("the point at infinity is not on the curve")
	}
}

func TestCurvePoint_OffCurvePointIsDetected(t *testing.T) {
	one, err := NewFieldElement(big.NewInt(1))
	if err != nil {
		t.Fatalf("failed to build field element: %v", err)
	}
	// y^2 = 1 but x^3 + 3 = 4.
	if (CurvePoint{X: one, Y: one}).OnCurve() {
		t.Errorf("invalid point passes the curve check")
	}
}

func TestRandomPrivateKey_ScalarIsInGroupRange(t *testing.T) {
	rnd := rand.New(0)
	retries := DefaultLimits().MaxRetries
	for i := 0; i < 100; i++ {
		key, err := RandomPrivateKey(rnd, retries)
		if err != nil {
			t.Fatalf("failed to sample private key: %v", err)
		}
		scalar := new(big.Int).SetBytes(key.Serialize())
		if scalar.Sign() <= 0 || scalar.Cmp(curveOrder) >= 0 {
			t.Fatalf("private scalar out of range: %v", scalar)
		}
	}
}

func TestRandomPrivateKey_HonorsRetryBudget(t *testing.T) {
	if _, err := RandomPrivateKey(rand.New(0), 0); !errors.Is(err, ErrUnsatisfiable) {
		t.Errorf("exhausted budget not reported: %v", err)
	}
}
