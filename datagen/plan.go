package datagen

import (
	"fmt"

	"github.com/cipherbench/go-harness/workload"
)

// BatchPlan fixes how many samples each input operand of an operation
// carries and, from that, how many result samples the operation produces.
// Results cover the full cross product of input samples, so the output
// count is the product of the input counts; operands with a single sample
// contribute a factor of one.
type BatchPlan struct {
	inputCounts []uint64
	outputCount uint64
}

// NewBatchPlan builds a plan from the per-operand input sample counts.
// Every count must be at least one.
func NewBatchPlan(inputCounts []uint64) (*BatchPlan, error) {
	if len(inputCounts) == 0 {
		return nil, fmt.Errorf("batch plan requires at least one input operand")
	}
	outputCount := uint64(1)
	for i, count := range inputCounts {
		if count == 0 {
			return nil, fmt.Errorf("batch plan input operand %d has zero samples", i)
		}
		outputCount *= count
	}
	plan := &BatchPlan{
		inputCounts: make([]uint64, len(inputCounts)),
		outputCount: outputCount,
	}
	copy(plan.inputCounts, inputCounts)
	return plan, nil
}

// Operands returns the number of input operands.
func (p *BatchPlan) Operands() int { return len(p.inputCounts) }

// InputCount returns the number of samples of one input operand.
func (p *BatchPlan) InputCount(operand int) uint64 {
	return p.inputCounts[operand]
}

// InputCounts returns a copy of the per-operand sample counts.
func (p *BatchPlan) InputCounts() []uint64 {
	counts := make([]uint64, len(p.inputCounts))
	copy(counts, p.inputCounts)
	return counts
}

// OutputCount returns the number of result samples the plan produces.
func (p *BatchPlan) OutputCount() uint64 { return p.outputCount }

// ResultIndex maps one combination of input sample indices to the linear
// index of its result sample. The mapping is row major with the last operand
// varying fastest: for counts {c0, c1} the combination (s0, s1) lands at
// s0*c1 + s1.
func (p *BatchPlan) ResultIndex(sample []uint64) (uint64, error) {
	if len(sample) != len(p.inputCounts) {
		return 0, fmt.Errorf("sample index has %d components, plan has %d operands", len(sample), len(p.inputCounts))
	}
	var index uint64
	for i, s := range sample {
		if s >= p.inputCounts[i] {
			return 0, fmt.Errorf("sample index %d out of range for operand %d with %d samples", s, i, p.inputCounts[i])
		}
		index = index*p.inputCounts[i] + s
	}
	return index, nil
}

// SampleCounts resolves the per-operand sample counts requested by a
// descriptor. Offline descriptors take their data counts with defaultCount
// substituted for zero entries; Latency descriptors operate on a single
// sample per operand.
func SampleCounts(desc *workload.Descriptor, operands int, defaultCount uint64) []uint64 {
	counts := make([]uint64, operands)
	for i := range counts {
		if desc.Category == workload.Offline && desc.CatParams.Offline.DataCounts[i] != 0 {
			counts[i] = desc.CatParams.Offline.DataCounts[i]
		} else if desc.Category == workload.Offline {
			counts[i] = defaultCount
		} else {
			counts[i] = 1
		}
	}
	return counts
}
