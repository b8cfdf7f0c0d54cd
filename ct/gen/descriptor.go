package gen

import (
	"fmt"
	"strings"
)

// TypeKind tags the structural shape of a type descriptor.
type TypeKind int

const (
	KindNamed      TypeKind = iota // a registered, non-parameterized type
	KindOption                     // value or absent
	KindTrie                       // key/value trie with default elision
	KindStack                      // bounded ordered sequence
	KindFixedTuple                 // one element type per position
	KindVarTuple                   // homogeneous, bounded length
	KindMapping                    // key/value mapping; may be untyped
	KindRecursive                  // leaf or list of recursive children
)

func (k TypeKind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindOption:
		return "option"
	case KindTrie:
		return "trie"
	case KindStack:
		return "stack"
	case KindFixedTuple:
		return "tuple"
	case KindVarTuple:
		return "vartuple"
	case KindMapping:
		return "mapping"
	case KindRecursive:
		return "recursive"
	}
	return fmt.Sprintf("TypeKind(%d)", k)
}

// TypeDesc is a structural type descriptor: a tagged variant with element
// descriptors as children. Descriptors are immutable values; two descriptors
// with the same Key describe the same type.
type TypeDesc struct {
	kind  TypeKind
	name  string
	elems []TypeDesc
}

// Named describes a non-parameterized type registered under the given name.
func Named(name string) TypeDesc {
	return TypeDesc{kind: KindNamed, name: name}
}

// Option describes a value of the element type that may also be absent.
func Option(elem TypeDesc) TypeDesc {
	return TypeDesc{kind: KindOption, elems: []TypeDesc{elem}}
}

// TrieOf describes a trie keyed and valued by the given element types.
func TrieOf(key, value TypeDesc) TypeDesc {
	return TypeDesc{kind: KindTrie, elems: []TypeDesc{key, value}}
}

// StackOf describes a bounded ordered sequence of the element type.
func StackOf(elem TypeDesc) TypeDesc {
	return TypeDesc{kind: KindStack, elems: []TypeDesc{elem}}
}

// TupleOf describes a fixed-arity tuple with one element type per position.
func TupleOf(elems ...TypeDesc) TypeDesc {
	return TypeDesc{kind: KindFixedTuple, elems: elems}
}

// VarTupleOf describes a variable-length homogeneous tuple.
func VarTupleOf(elem TypeDesc) TypeDesc {
	return TypeDesc{kind: KindVarTuple, elems: []TypeDesc{elem}}
}

// MappingOf describes a mapping with the given key and value element types.
func MappingOf(key, value TypeDesc) TypeDesc {
	return TypeDesc{kind: KindMapping, elems: []TypeDesc{key, value}}
}

// UntypedMapping describes a mapping whose element types are erased. Such
// mappings resolve to a generator of empty mappings; the resolver never
// invents element types.
func UntypedMapping() TypeDesc {
	return TypeDesc{kind: KindMapping}
}

// RecursiveOf describes a tree-shaped value that is either a leaf of the
// given element type or a list of further such values.
func RecursiveOf(leaf TypeDesc) TypeDesc {
	return TypeDesc{kind: KindRecursive, elems: []TypeDesc{leaf}}
}

func (d TypeDesc) Kind() TypeKind {
	return d.kind
}

func (d TypeDesc) Name() string {
	return d.name
}

func (d TypeDesc) Elems() []TypeDesc {
	return d.elems
}

// Key returns a stable textual encoding of the descriptor, usable as a
// registry and cache key.
func (d TypeDesc) Key() string {
	if d.kind == KindNamed {
		return fmt.Sprintf("named(%s)", d.name)
	}
	parts := make([]string, 0, len(d.elems))
	for _, elem := range d.elems {
		parts = append(parts, elem.Key())
	}
	return fmt.Sprintf("%v(%s)", d.kind, strings.Join(parts, ","))
}

func (d TypeDesc) String() string {
	return d.Key()
}
