package st

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	. "github.com/Zeegaths/keth/ct/common"
)

// MaxStackSize is the maximum number of elements a Stack may hold.
const MaxStackSize = 1024

// Stack represents an execution context's value stack.
type Stack struct {
	stack []U256
}

func NewStack(values ...U256) *Stack {
	return &Stack{values}
}

// Clone creates an independent copy of the stack.
func (s *Stack) Clone() *Stack {
	return &Stack{slices.Clone(s.stack)}
}

// Size returns the number of elements on the stack.
func (s *Stack) Size() int {
	return len(s.stack)
}

// Get returns the value located the given position, where position 0 is the
// top-most element.
func (s *Stack) Get(position int) U256 {
	return s.stack[len(s.stack)-position-1]
}

func (s *Stack) Set(position int, value U256) {
	s.stack[len(s.stack)-position-1] = value
}

func (s *Stack) Push(value U256) {
	s.stack = append(s.stack, value)
}

func (s *Stack) Pop() U256 {
	value := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return value
}

func (s *Stack) Eq(other *Stack) bool {
	return slices.Equal(s.stack, other.stack)
}

func (s *Stack) Diff(other *Stack) (res []string) {
	if s.Size() != other.Size() {
		res = append(res, fmt.Sprintf("Different stack size: %d vs %d", s.Size(), other.Size()))
		return
	}
	for i := 0; i < s.Size(); i++ {
		if want, got := s.Get(i), other.Get(i); want.Ne(got) {
			res = append(res, fmt.Sprintf("Different stack value at position %d:\n\t%v\n\tvs\n\t%v", i, want, got))
		}
	}
	return
}

func (s *Stack) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("stack (size: %d):", s.Size()))
	for i := 0; i < s.Size() && i < 4; i++ {
		builder.WriteString(fmt.Sprintf("\n\t%d: %v", i, s.Get(i)))
	}
	if s.Size() > 4 {
		builder.WriteString("\n\t...")
	}
	return builder.String()
}
