package diff

import (
	"fmt"
	"strings"

	"github.com/Zeegaths/keth/ct"
	"github.com/Zeegaths/keth/ct/st"
)

// Harness runs operations against the reference semantics and an
// implementation under test in lockstep and compares the outcomes. Two
// successful runs pass when results and post-states are equal; two failed
// runs pass when their failure kinds are equivalent. Everything else is a
// reportable finding.
type Harness struct {
	runtime ct.Runtime
}

func NewHarness(runtime ct.Runtime) *Harness {
	return &Harness{runtime: runtime}
}

// Divergence reports two successful runs with unequal outcomes. It carries
// the full inputs so the case can be replayed.
type Divergence struct {
	Op        string
	Input     fmt.Stringer
	Args      Args
	WantState fmt.Stringer
	GotState  fmt.Stringer
	Want      Result
	Got       Result
	Diffs     []string
}

func (d *Divergence) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "diverging outcomes for %s", d.Op)
	for _, diff := range d.Diffs {
		fmt.Fprintf(&builder, "\n\t%s", diff)
	}
	return builder.String()
}

// KindMismatch reports runs whose failure classifications are not
// equivalent, including one side failing while the other succeeded.
type KindMismatch struct {
	Op       string
	Input    fmt.Stringer
	Args     Args
	WantKind Kind
	WantErr  error
	GotKind  Kind
	GotLabel string
}

func (m *KindMismatch) Error() string {
	return fmt.Sprintf("mismatching failures for %s: reference reports %v (%v), implementation reports %v (%q)",
		m.Op, m.WantKind, m.WantErr, m.GotKind, m.GotLabel)
}

// RunStateOp runs one persistent-state operation differentially. The given
// state is never mutated; each side works on its own copy.
func (h *Harness) RunStateOp(op string, state *st.State, args Args) error {
	apply, found := stateOps[op]
	if !found {
		return fmt.Errorf("unknown operation %q", op)
	}

	refState := state.Clone()
	refResult, refErr := apply(refState, args)

	encodedState, err := EncodeState(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	encodedArgs, err := EncodeArgs(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	out, err := h.runtime.Run(op, encodedState, encodedArgs)
	if err != nil {
		return fmt.Errorf("runtime failed to execute %s: %w", op, err)
	}

	wantKind, gotKind := classifyError(refErr), classifyLabel(out.ErrorKind)
	if wantKind != KindNone || gotKind != KindNone {
		if equivalent(wantKind, gotKind) {
			return nil
		}
		return &KindMismatch{
			Op:       op,
			Input:    state,
			Args:     args,
			WantKind: wantKind,
			WantErr:  refErr,
			GotKind:  gotKind,
			GotLabel: out.ErrorKind,
		}
	}

	gotState, err := DecodeState(out.State)
	if err != nil {
		return fmt.Errorf("failed to decode the post-state of %s: %w", op, err)
	}
	gotResult, err := DecodeResult(out.Result)
	if err != nil {
		return fmt.Errorf("failed to decode the result of %s: %w", op, err)
	}

	diffs := refState.Diff(gotState)
	if !refResult.Eq(gotResult) {
		diffs = append(diffs, fmt.Sprintf("Different result: %v vs %v", refResult, gotResult))
	}
	if len(diffs) == 0 && refState.Eq(gotState) {
		return nil
	}
	return &Divergence{
		Op:        op,
		Input:     state,
		Args:      args,
		WantState: refState,
		GotState:  gotState,
		Want:      refResult,
		Got:       gotResult,
		Diffs:     diffs,
	}
}

// RunTransientOp runs one transient-storage operation differentially,
// analogous to RunStateOp.
func (h *Harness) RunTransientOp(op string, transient *st.TransientStorage, args Args) error {
	apply, found := transientOps[op]
	if !found {
		return fmt.Errorf("unknown operation %q", op)
	}

	refTransient := transient.Clone()
	refResult, refErr := apply(refTransient, args)

	encodedTransient, err := EncodeTransientStorage(transient)
	if err != nil {
		return fmt.Errorf("failed to encode transient storage: %w", err)
	}
	encodedArgs, err := EncodeArgs(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	out, err := h.runtime.Run(op, encodedTransient, encodedArgs)
	if err != nil {
		return fmt.Errorf("runtime failed to execute %s: %w", op, err)
	}

	wantKind, gotKind := classifyError(refErr), classifyLabel(out.ErrorKind)
	if wantKind != KindNone || gotKind != KindNone {
		if equivalent(wantKind, gotKind) {
			return nil
		}
		return &KindMismatch{
			Op:       op,
			Input:    transient,
			Args:     args,
			WantKind: wantKind,
			WantErr:  refErr,
			GotKind:  gotKind,
			GotLabel: out.ErrorKind,
		}
	}

	gotTransient, err := DecodeTransientStorage(out.State)
	if err != nil {
		return fmt.Errorf("failed to decode the post-state of %s: %w", op, err)
	}
	gotResult, err := DecodeResult(out.Result)
	if err != nil {
		return fmt.Errorf("failed to decode the result of %s: %w", op, err)
	}

	diffs := refTransient.Diff(gotTransient)
	if !refResult.Eq(gotResult) {
		diffs = append(diffs, fmt.Sprintf("Different result: %v vs %v", refResult, gotResult))
	}
	if len(diffs) == 0 && refTransient.Eq(gotTransient) {
		return nil
	}
	return &Divergence{
		Op:        op,
		Input:     transient,
		Args:      args,
		WantState: refTransient,
		GotState:  gotTransient,
		Want:      refResult,
		Got:       gotResult,
		Diffs:     diffs,
	}
}
