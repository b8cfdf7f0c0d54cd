package gen

import (
	"pgregory.net/rand"
)

// RecursiveShape configures the generation of tree-shaped values that are
// either a leaf or a list of recursively generated children.
type RecursiveShape struct {
	// Leaf produces the terminal values of the tree.
	Leaf Generator
	// MaxDepth bounds the nesting; at depth zero only leaves are produced.
	MaxDepth int
	// LeafChance is the percentage chance to emit a leaf before the depth
	// budget is exhausted.
	LeafChance int
	// MaxChildren bounds the fan-out of each composite node.
	MaxChildren int
}

// GenerateRecursive samples a tree-shaped value. The remaining depth budget
// strictly decreases on every recursive call, so generation terminates
// regardless of the sampler's fairness.
func GenerateRecursive(rnd *rand.Rand, shape RecursiveShape) (any, error) {
	if shape.MaxDepth <= 0 || rnd.Intn(100) < shape.LeafChance {
		return shape.Leaf(rnd)
	}
	children := make([]any, rnd.Intn(shape.MaxChildren+1))
	child := shape
	child.MaxDepth--
	for i := range children {
		value, err := GenerateRecursive(rnd, child)
		if err != nil {
			return nil, err
		}
		children[i] = value
	}
	return children, nil
}
