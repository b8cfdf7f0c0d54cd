// Package ct hosts the conformance-testing framework checking arbitrary
// implementations of the modeled state engine against the reference
// semantics in ct/ref. Implementations are attached through the Runtime
// interface; everything crossing it is serialized, so the implementation
// under test never shares live objects with the framework.
package ct

//go:generate mockgen -source ct.go -destination runtime_mock.go -package ct

// RuntimeResult is the outcome of one operation executed by an
// implementation under test. State holds the serialized post-state, Result
// the serialized operation result, and ErrorKind a non-empty
// implementation-defined failure label when the operation failed.
type RuntimeResult struct {
	State     []byte
	Result    []byte
	ErrorKind string
}

// Runtime is an implementation of the modeled state engine under test. Run
// executes the named operation on the serialized state with the serialized
// arguments. The returned error reports transport or codec problems only;
// semantic failures of the operation itself are reported through
// RuntimeResult.ErrorKind.
type Runtime interface {
	Run(op string, state []byte, args []byte) (RuntimeResult, error)
}
