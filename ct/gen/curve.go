package gen

import (
	"fmt"
	"math/big"

	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
)

// curveB is the constant term of the alt_bn128 curve equation y^2 = x^3 + 3.
var curveB = big.NewInt(3)

// CurvePoint is a point on the alt_bn128 curve: either the distinguished
// point at infinity or affine coordinates satisfying the curve equation.
type CurvePoint struct {
	X, Y     FieldElement
	Infinity bool
}

// OnCurve checks that the point satisfies y^2 = x^3 + 3 mod p. The point at
// infinity is on the curve by definition.
func (p CurvePoint) OnCurve() bool {
	if p.Infinity {
		return true
	}
	left := new(big.Int).Exp(p.Y.Value(), big.NewInt(2), fieldPrime)
	right := new(big.Int).Exp(p.X.Value(), big.NewInt(3), fieldPrime)
	right.Add(right, curveB).Mod(right, fieldPrime)
	return left.Cmp(right) == 0
}

func (p CurvePoint) String() string {
	if p.Infinity {
		return "(infinity)"
	}
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// RandomCurvePoint samples an algebraically valid curve point: occasionally
// the point at infinity, otherwise an (x, y) pair obtained by sampling x and
// solving the curve equation for y. Sampled x values without a valid y are
// rejected and resampled; exhausting the retry budget is a generation
// failure, never an invalid point.
func RandomCurvePoint(rnd *rand.Rand, retries int) (CurvePoint, error) {
	if rnd.Intn(16) == 0 {
		return CurvePoint{Infinity: true}, nil
	}
	for i := 0; i < retries; i++ {
		x, err := RandomFieldElement(rnd, retries)
		if err != nil {
			return CurvePoint{}, err
		}
		rhs := new(big.Int).Exp(x.Value(), big.NewInt(3), fieldPrime)
		rhs.Add(rhs, curveB).Mod(rhs, fieldPrime)
		y := sqrtModPrime(rhs)
		if y == nil {
			continue // x is not on the curve, try another
		}
		point := CurvePoint{X: x, Y: FieldElement{y}}
		if !point.OnCurve() {
			return CurvePoint{}, fmt.Errorf("%w, computed root does not satisfy the curve equation", ErrUnsatisfiable)
		}
		return point, nil
	}
	return CurvePoint{}, fmt.Errorf("%w, no curve point found within %d samples", ErrUnsatisfiable, retries)
}
