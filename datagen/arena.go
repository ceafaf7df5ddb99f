package datagen

import "fmt"

type span struct {
	off  uint64
	size uint64
}

// Arena owns the backing storage for the sample buffers of a set of
// operands. All buffers live in one allocation; accessors hand out
// bounds-checked sub-slices.
type Arena struct {
	raw    []byte
	blocks [][]span
}

// NewArena lays out counts[i] buffers of sizes[i] bytes for every operand.
// A zero buffer size is rejected because a sample must hold at least one
// element.
func NewArena(sizes []uint64, counts []uint64) (*Arena, error) {
	if len(sizes) != len(counts) {
		return nil, fmt.Errorf("arena layout has %d sizes for %d operands", len(sizes), len(counts))
	}
	var total uint64
	for i, size := range sizes {
		if size == 0 && counts[i] > 0 {
			return nil, &AllocationError{
				Operand: i,
				Reason:  fmt.Sprintf("zero-size buffer requested for %d samples", counts[i]),
			}
		}
		total += size * counts[i]
	}

	a := &Arena{
		raw:    make([]byte, total),
		blocks: make([][]span, len(sizes)),
	}
	var off uint64
	for i, size := range sizes {
		a.blocks[i] = make([]span, counts[i])
		for j := range a.blocks[i] {
			a.blocks[i][j] = span{off: off, size: size}
			off += size
		}
	}
	return a, nil
}

// Operands returns the number of operands laid out in the arena.
func (a *Arena) Operands() int { return len(a.blocks) }

// Samples returns the number of sample buffers of one operand.
func (a *Arena) Samples(operand int) (uint64, error) {
	if operand < 0 || operand >= len(a.blocks) {
		return 0, fmt.Errorf("operand %d out of range, arena holds %d operands", operand, len(a.blocks))
	}
	return uint64(len(a.blocks[operand])), nil
}

// Block returns the buffer of one sample of one operand.
func (a *Arena) Block(operand int, sample uint64) ([]byte, error) {
	if operand < 0 || operand >= len(a.blocks) {
		return nil, fmt.Errorf("operand %d out of range, arena holds %d operands", operand, len(a.blocks))
	}
	if sample >= uint64(len(a.blocks[operand])) {
		return nil, fmt.Errorf("sample %d out of range, operand %d holds %d samples", sample, operand, len(a.blocks[operand]))
	}
	s := a.blocks[operand][sample]
	return a.raw[s.off : s.off+s.size : s.off+s.size], nil
}

// Pack returns the sample buffers of one operand in sample order.
func (a *Arena) Pack(operand int) ([][]byte, error) {
	if operand < 0 || operand >= len(a.blocks) {
		return nil, fmt.Errorf("operand %d out of range, arena holds %d operands", operand, len(a.blocks))
	}
	pack := make([][]byte, len(a.blocks[operand]))
	for j, s := range a.blocks[operand] {
		pack[j] = a.raw[s.off : s.off+s.size : s.off+s.size]
	}
	return pack, nil
}
