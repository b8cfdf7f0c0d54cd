package st

import (
	"bytes"
	"fmt"
	"slices"
)

// Memory represents an execution context's word-aligned byte memory.
type Memory struct {
	mem []byte
}

// NewMemory creates a new memory filled with the given values, padded with
// zero bytes to the next 32-byte boundary.
func NewMemory(data ...byte) *Memory {
	m := &Memory{}
	m.Set(data)
	return m
}

// Clone creates an independent copy of the memory.
func (m *Memory) Clone() *Memory {
	return &Memory{slices.Clone(m.mem)}
}

// Size returns the memory size in bytes; always a multiple of 32.
func (m *Memory) Size() int {
	return len(m.mem)
}

// Set replaces the memory content with a zero-padded copy of the given slice.
func (m *Memory) Set(data []byte) {
	m.mem = slices.Clone(data)
	if padding := (32 - len(m.mem)%32) % 32; padding > 0 {
		m.mem = append(m.mem, make([]byte, padding)...)
	}
}

// Read retrieves size bytes starting at offset, growing the memory as needed.
func (m *Memory) Read(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	m.Grow(offset, size)
	return m.mem[offset : offset+size]
}

// Write stores the given data starting at offset, growing the memory as
// needed.
func (m *Memory) Write(data []byte, offset uint64) {
	if len(data) == 0 {
		return
	}
	m.Grow(offset, uint64(len(data)))
	copy(m.mem[offset:], data)
}

// Grow expands the memory to cover offset+size bytes, rounded up to the next
// 32-byte boundary. Grown memory is zero-initialized.
func (m *Memory) Grow(offset, size uint64) {
	if size == 0 {
		return
	}
	newSize := offset + size
	if rest := newSize % 32; rest != 0 {
		newSize += 32 - rest
	}
	if newSize > uint64(len(m.mem)) {
		m.mem = append(m.mem, make([]byte, newSize-uint64(len(m.mem)))...)
	}
}

func (m *Memory) Eq(other *Memory) bool {
	return bytes.Equal(m.mem, other.mem)
}

func (m *Memory) Diff(other *Memory) (res []string) {
	if m.Size() != other.Size() {
		res = append(res, fmt.Sprintf("Different memory size: %d vs %d", m.Size(), other.Size()))
		return
	}
	for i := range m.mem {
		if m.mem[i] != other.mem[i] {
			res = append(res, fmt.Sprintf("Different memory value at offset %d: %#02x vs %#02x", i, m.mem[i], other.mem[i]))
		}
	}
	return
}

const memoryCutoffLength = 32

func (m *Memory) String() string {
	if len(m.mem) > memoryCutoffLength {
		return fmt.Sprintf("%x... (size: %d)", m.mem[:memoryCutoffLength], len(m.mem))
	}
	return fmt.Sprintf("%x", m.mem)
}
