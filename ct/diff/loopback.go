package diff

import (
	"fmt"

	"github.com/Zeegaths/keth/ct"
)

// loopbackRuntime is the reference semantics wrapped behind the serialized
// runtime boundary. It is the default implementation under test for the
// driver and doubles as a codec fidelity check: any information the wire
// format loses shows up as a divergence against the native reference run.
type loopbackRuntime struct {
	// maxValueBits, when positive, bounds the width of accepted storage
	// values, modeling an implementation whose native word is narrower than
	// 256 bits.
	maxValueBits int
}

// NewLoopbackRuntime creates a runtime executing the reference semantics
// behind the serialized boundary.
func NewLoopbackRuntime() ct.Runtime {
	return &loopbackRuntime{}
}

// NewWidthLimitedLoopbackRuntime creates a loopback runtime rejecting
// storage values wider than the given number of bits with an
// "OverflowError" failure.
func NewWidthLimitedLoopbackRuntime(maxValueBits int) ct.Runtime {
	return &loopbackRuntime{maxValueBits: maxValueBits}
}

func (r *loopbackRuntime) Run(op string, state []byte, args []byte) (ct.RuntimeResult, error) {
	arguments, err := DecodeArgs(args)
	if err != nil {
		return ct.RuntimeResult{}, err
	}
	if r.maxValueBits > 0 && exceedsWidth(arguments.Value.Bytes32be(), r.maxValueBits) {
		return ct.RuntimeResult{ErrorKind: "OverflowError"}, nil
	}

	if apply, found := stateOps[op]; found {
		current, err := DecodeState(state)
		if err != nil {
			return ct.RuntimeResult{}, err
		}
		result, opErr := apply(current, arguments)
		if opErr != nil {
			return ct.RuntimeResult{ErrorKind: errorLabel(opErr)}, nil
		}
		encodedState, err := EncodeState(current)
		if err != nil {
			return ct.RuntimeResult{}, err
		}
		encodedResult, err := EncodeResult(result)
		if err != nil {
			return ct.RuntimeResult{}, err
		}
		return ct.RuntimeResult{State: encodedState, Result: encodedResult}, nil
	}

	if apply, found := transientOps[op]; found {
		current, err := DecodeTransientStorage(state)
		if err != nil {
			return ct.RuntimeResult{}, err
		}
		result, opErr := apply(current, arguments)
		if opErr != nil {
			return ct.RuntimeResult{ErrorKind: errorLabel(opErr)}, nil
		}
		encodedState, err := EncodeTransientStorage(current)
		if err != nil {
			return ct.RuntimeResult{}, err
		}
		encodedResult, err := EncodeResult(result)
		if err != nil {
			return ct.RuntimeResult{}, err
		}
		return ct.RuntimeResult{State: encodedState, Result: encodedResult}, nil
	}

	return ct.RuntimeResult{}, fmt.Errorf("unknown operation %q", op)
}

// errorLabel translates a reference error into the loopback adapter's
// error-kind vocabulary. The labels deliberately differ from the lowercase
// canonical ones; the harness must match them by kind, not by text.
func errorLabel(err error) string {
	switch classifyError(err) {
	case KindMissingAccount:
		return "KeyError"
	case KindNoTransaction:
		return "IndexError"
	}
	return err.Error()
}

// exceedsWidth reports whether the big-endian value needs more than the
// given number of bits. Widths of 256 bits or more accept every value.
func exceedsWidth(value [32]byte, bits int) bool {
	if bits >= len(value)*8 {
		return false
	}
	boundary := len(value) - 1 - bits/8
	for _, b := range value[:boundary] {
		if b != 0 {
			return true
		}
	}
	return value[boundary]>>(bits%8) != 0
}
