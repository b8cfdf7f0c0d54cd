package gen

import (
	"errors"
	"testing"

	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

func TestRegistry_NamedTypesResolveAndGenerate(t *testing.T) {
	registry := NewDefaultRegistry(DefaultLimits())
	names := []string{
		"bool", "u64", "u256", "address",
		"bytes4", "bytes8", "bytes20", "bytes32", "bytes64", "bytes256",
		"bytes", "code", "memory",
		"field_element", "curve_point", "private_key",
		"account", "state", "transient_storage", "evm",
		"simple", "extended",
	}
	rnd := rand.New(0)
	for _, name := range names {
		gen, err := registry.Resolve(Named(name))
		if err != nil {
			t.Fatalf("failed to resolve %q: %v", name, err)
		}
		if _, err := gen(rnd); err != nil {
			t.Fatalf("failed to generate %q: %v", name, err)
		}
	}
}

func TestRegistry_UnknownTypeIsReported(t *testing.T) {
	registry := NewRegistry(DefaultLimits())
	tests := map[string]TypeDesc{
		"plain":  Named("no_such_type"),
		"nested": StackOf(Named("no_such_type")),
		"option": Option(TupleOf(Named("u64"), Named("no_such_type"))),
	}
	for name, desc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := registry.Resolve(desc); !errors.Is(err, ErrUnknownType) {
				t.Errorf("expected ErrUnknownType, got %v", err)
			}
		})
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	registry := NewRegistry(DefaultLimits())
	registry.Register(Named("u64"), func(*rand.Rand) (any, error) {
		return uint64(1), nil
	})
	registry.Register(Named("u64"), func(*rand.Rand) (any, error) {
		return uint64(2), nil
	})
	gen, err := registry.Resolve(Named("u64"))
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	value, err := gen(rand.New(0))
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}
	if value != uint64(2) {
		t.Errorf("expected last registration to win, got %v", value)
	}
}

func TestRegistry_ReRegistrationInvalidatesComposedGenerators(t *testing.T) {
	registry := NewRegistry(DefaultLimits())
	registry.Register(Named("leaf"), func(*rand.Rand) (any, error) {
		return uint64(1), nil
	})
	desc := TupleOf(Named("leaf"))
	if _, err := registry.Resolve(desc); err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}

	registry.Register(Named("leaf"), func(*rand.Rand) (any, error) {
		return uint64(2), nil
	})
	gen, err := registry.Resolve(desc)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	value, err := gen(rand.New(0))
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}
	tuple := value.([]any)
	if len(tuple) != 1 || tuple[0] != uint64(2) {
		t.Errorf("composed generator still uses the replaced registration: %v", value)
	}
}

func TestRegistry_ResolutionIsDeterministic(t *testing.T) {
	desc := StackOf(TupleOf(Named("u256"), Option(Named("address"))))
	limits := DefaultLimits()

	sample := func() any {
		registry := NewDefaultRegistry(limits)
		gen, err := registry.Resolve(desc)
		if err != nil {
			t.Fatalf("failed to resolve: %v", err)
		}
		value, err := gen(rand.New(12345))
		if err != nil {
			t.Fatalf("failed to generate: %v", err)
		}
		return value
	}

	if a, b := sample(), sample(); !EqualValues(a, b) {
		t.Errorf("same descriptor and seed produced different values:\n%v\nvs\n%v", a, b)
	}
}

func TestRegistry_OptionProducesBothArms(t *testing.T) {
	registry := NewDefaultRegistry(DefaultLimits())
	gen, err := registry.Resolve(Option(Named("u64")))
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	rnd := rand.New(0)
	seenAbsent, seenPresent := false, false
	for i := 0; i < 100; i++ {
		value, err := gen(rnd)
		if err != nil {
			t.Fatalf("failed to generate: %v", err)
		}
		if value == nil {
			seenAbsent = true
		} else if _, ok := value.(uint64); ok {
			seenPresent = true
		} else {
			t.Fatalf("unexpected option value: %v", value)
		}
	}
	if !seenAbsent || !seenPresent {
		t.Errorf("option arms not both covered, absent=%t present=%t", seenAbsent, seenPresent)
	}
}

func TestRegistry_TrieDefaultsFollowValueType(t *testing.T) {
	registry := NewDefaultRegistry(DefaultLimits())
	tests := map[string]struct {
		desc    TypeDesc
		def     any
		wantErr error
	}{
		"optional values": {
			desc: TrieOf(Named("address"), Option(Named("account"))),
			def:  nil,
		},
		"u64 values": {
			desc: TrieOf(Named("bytes32"), Named("u64")),
			def:  uint64(0),
		},
		"u256 values": {
			desc: TrieOf(Named("bytes32"), Named("u256")),
			def:  NewU256(0),
		},
		"unsupported values": {
			desc:    TrieOf(Named("bytes32"), Named("bool")),
			wantErr: ErrUnsupportedDefault,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			gen, err := registry.Resolve(test.desc)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("expected %v, got %v", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to resolve: %v", err)
			}
			value, err := gen(rand.New(0))
			if err != nil {
				t.Fatalf("failed to generate: %v", err)
			}
			trie, ok := value.(*st.Trie[any, any])
			if !ok {
				t.Fatalf("expected a trie, got %T", value)
			}
			if !EqualValues(trie.Default(), test.def) {
				t.Errorf("wrong trie default, wanted %v, got %v", test.def, trie.Default())
			}
			trie.ForEach(func(_ any, value any) {
				if EqualValues(value, trie.Default()) {
					t.Errorf("trie stores a default-valued entry: %v", value)
				}
			})
		})
	}
}

func TestRegistry_GeneratedTriesAreSecured(t *testing.T) {
	registry := NewDefaultRegistry(DefaultLimits())
	gen, err := registry.Resolve(TrieOf(Named("bytes32"), Named("u256")))
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	value, err := gen(rand.New(0))
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}
	if !value.(*st.Trie[any, any]).Secured() {
		t.Errorf("generated trie is not secured")
	}
}

func TestRegistry_UntypedMappingsAreEmpty(t *testing.T) {
	registry := NewRegistry(DefaultLimits())
	gen, err := registry.Resolve(UntypedMapping())
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	rnd := rand.New(0)
	for i := 0; i < 10; i++ {
		value, err := gen(rnd)
		if err != nil {
			t.Fatalf("failed to generate: %v", err)
		}
		mapping, ok := value.(map[any]any)
		if !ok {
			t.Fatalf("expected a mapping, got %T", value)
		}
		if len(mapping) != 0 {
			t.Errorf("untyped mapping is not empty: %v", mapping)
		}
	}
}

func TestRegistry_UncomparableKeyTypesAreReported(t *testing.T) {
	registry := NewDefaultRegistry(DefaultLimits())
	tests := map[string]TypeDesc{
		"mapping with byte-slice keys": MappingOf(Named("bytes"), Named("u64")),
		"trie with byte-slice keys":    TrieOf(Named("bytes"), Named("u256")),
		"mapping with tuple keys":      MappingOf(TupleOf(Named("u64")), Named("u64")),
	}
	for name, desc := range tests {
		t.Run(name, func(t *testing.T) {
			gen, err := registry.Resolve(desc)
			if err != nil {
				t.Fatalf("failed to resolve: %v", err)
			}
			rnd := rand.New(0)
			for i := 0; i < 10; i++ {
				if _, err := gen(rnd); err != nil {
					if !errors.Is(err, ErrUncomparableKey) {
						t.Fatalf("expected ErrUncomparableKey, got %v", err)
					}
					return
				}
			}
			t.Errorf("uncomparable key type was never reported")
		})
	}
}

func TestRegistry_TypedMappingsRespectSizeLimit(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxTupleSize = 5
	registry := NewDefaultRegistry(limits)
	gen, err := registry.Resolve(MappingOf(Named("address"), Named("u256")))
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	rnd := rand.New(0)
	for i := 0; i < 20; i++ {
		value, err := gen(rnd)
		if err != nil {
			t.Fatalf("failed to generate: %v", err)
		}
		if mapping := value.(map[any]any); len(mapping) > 5 {
			t.Errorf("mapping exceeds size limit: %d entries", len(mapping))
		}
	}
}

func TestRegistry_StacksRespectSizeLimit(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxStackSize = 7
	registry := NewDefaultRegistry(limits)
	gen, err := registry.Resolve(StackOf(Named("u256")))
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	rnd := rand.New(0)
	for i := 0; i < 20; i++ {
		value, err := gen(rnd)
		if err != nil {
			t.Fatalf("failed to generate: %v", err)
		}
		if stack := value.([]any); len(stack) > 7 {
			t.Errorf("stack exceeds size limit: %d elements", len(stack))
		}
	}
}

func TestRegistry_FixedTuplesKeepArityAndOrder(t *testing.T) {
	registry := NewRegistry(DefaultLimits())
	registry.Register(Named("first"), func(*rand.Rand) (any, error) {
		return uint64(1), nil
	})
	registry.Register(Named("second"), func(*rand.Rand) (any, error) {
		return uint64(2), nil
	})
	gen, err := registry.Resolve(TupleOf(Named("first"), Named("second")))
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	value, err := gen(rand.New(0))
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}
	tuple := value.([]any)
	if len(tuple) != 2 || tuple[0] != uint64(1) || tuple[1] != uint64(2) {
		t.Errorf("unexpected tuple: %v", value)
	}
}

func TestRegistry_RecursiveTypesStayWithinDepthLimit(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxRecursionDepth = 4
	registry := NewDefaultRegistry(limits)
	gen, err := registry.Resolve(RecursiveOf(Named("bool")))
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	rnd := rand.New(0)
	for i := 0; i < 100; i++ {
		value, err := gen(rnd)
		if err != nil {
			t.Fatalf("failed to generate: %v", err)
		}
		if depth := nestingDepth(value); depth > 4 {
			t.Errorf("tree exceeds depth limit: %d", depth)
		}
	}
}

func nestingDepth(value any) int {
	children, ok := value.([]any)
	if !ok {
		return 0
	}
	max := 0
	for _, child := range children {
		if depth := nestingDepth(child); depth > max {
			max = depth
		}
	}
	return max + 1
}
