package common

// ConstErr is an error type that can be used to define error constants.
type ConstErr string

func (e ConstErr) Error() string {
	return string(e)
}

// ErrUnsatisfiable is an error returned by generators that could not produce
// an invariant-respecting value within their retry budget.
const ErrUnsatisfiable = ConstErr("unsatisfiable generation constraints")
