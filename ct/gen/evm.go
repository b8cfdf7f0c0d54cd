package gen

import (
	"pgregory.net/rand"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/st"
)

// EvmGenerator produces execution contexts for generation-only targets:
// random program counter, stack, memory, code, access sets, and a nested
// call chain through the message's parent context.
type EvmGenerator struct {
	limits Limits
}

func NewEvmGenerator(limits Limits) *EvmGenerator {
	return &EvmGenerator{limits: limits}
}

// Generate produces a fresh execution context. The call chain through
// Message.ParentEvm holds at most MaxCallDepth frames and is never cyclic:
// the remaining frame budget strictly decreases with every parent.
func (g *EvmGenerator) Generate(rnd *rand.Rand) *st.Evm {
	return g.generate(rnd, g.limits.MaxCallDepth)
}

func (g *EvmGenerator) generate(rnd *rand.Rand, depthBudget int) *st.Evm {
	return &st.Evm{
		Pc:                  uint64(rnd.Intn(2 * g.limits.MaxCodeSize)),
		Stack:               g.generateStack(rnd),
		Memory:              st.NewMemory(RandomBytes(rnd, g.limits.MaxMemorySize)...),
		Code:                RandomBytes(rnd, g.limits.MaxCodeSize),
		GasLeft:             rnd.Uint64(),
		Running:             rnd.Intn(2) == 1,
		Message:             g.generateMessage(rnd, depthBudget),
		Output:              RandomBytes(rnd, g.limits.MaxMemorySize),
		ReturnData:          RandomBytes(rnd, g.limits.MaxMemorySize),
		RefundCounter:       rnd.Uint64(),
		AccessedAddresses:   RandomAddressSet(rnd, g.limits.MaxAddressSetSize),
		AccessedStorageKeys: g.generateAccessedKeys(rnd),
	}
}

func (g *EvmGenerator) generateMessage(rnd *rand.Rand, depthBudget int) *st.Message {
	message := &st.Message{
		Caller:              RandomAddress(rnd),
		CurrentTarget:       RandomAddress(rnd),
		Gas:                 rnd.Uint64(),
		Value:               RandU256(rnd),
		Data:                RandomBytes(rnd, g.limits.MaxMemorySize),
		Code:                RandomBytes(rnd, g.limits.MaxCodeSize),
		Depth:               uint64(rnd.Intn(1025)),
		ShouldTransferValue: rnd.Intn(2) == 1,
		IsStatic:            rnd.Intn(2) == 1,
		AccessedAddresses:   RandomAddressSet(rnd, g.limits.MaxAddressSetSize),
		AccessedStorageKeys: g.generateAccessedKeys(rnd),
	}
	if rnd.Intn(2) == 1 {
		target := RandomAddress(rnd)
		message.Target = &target
	}
	if rnd.Intn(2) == 1 {
		codeAddress := RandomAddress(rnd)
		message.CodeAddress = &codeAddress
	}
	if depthBudget > 1 && rnd.Intn(2) == 1 {
		message.ParentEvm = g.generate(rnd, depthBudget-1)
	}
	return message
}

func (g *EvmGenerator) generateStack(rnd *rand.Rand) *st.Stack {
	values := make([]U256, rnd.Intn(g.limits.MaxStackSize+1))
	for i := range values {
		values[i] = RandU256(rnd)
	}
	return st.NewStack(values...)
}

func (g *EvmGenerator) generateAccessedKeys(rnd *rand.Rand) map[st.AccessedKey]struct{} {
	set := map[st.AccessedKey]struct{}{}
	for i, size := 0, rnd.Intn(g.limits.MaxStorageKeySetSize+1); i < size; i++ {
		set[st.AccessedKey{
			Address: RandomAddress(rnd),
			Key:     RandomBytes32(rnd),
		}] = struct{}{}
	}
	return set
}
