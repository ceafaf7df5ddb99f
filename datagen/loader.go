package datagen

import (
	"fmt"

	"github.com/cipherbench/go-harness/workload"
)

// Loader owns the generated input samples and the locally computed ground
// truth outputs for one benchmark. Workload families embed it and fill the
// buffers during dataset generation.
type Loader struct {
	dtype   workload.DataType
	plan    *BatchPlan
	inputs  *Arena
	outputs *Arena
}

// NewLoader lays out the sample storage for an operation: one input buffer
// of inputSizes[i] bytes per sample of operand i, and, for every output
// operand, one buffer of outputSizes[j] bytes per result sample of the
// plan's cross product.
func NewLoader(dtype workload.DataType, plan *BatchPlan, inputSizes, outputSizes []uint64) (*Loader, error) {
	if plan == nil {
		return nil, fmt.Errorf("loader requires a batch plan")
	}
	if len(inputSizes) != plan.Operands() {
		return nil, fmt.Errorf("loader has %d input sizes for %d operands", len(inputSizes), plan.Operands())
	}
	if len(outputSizes) == 0 {
		return nil, fmt.Errorf("loader requires at least one output operand")
	}

	inputs, err := NewArena(inputSizes, plan.InputCounts())
	if err != nil {
		return nil, err
	}
	outputCounts := make([]uint64, len(outputSizes))
	for i := range outputCounts {
		outputCounts[i] = plan.OutputCount()
	}
	outputs, err := NewArena(outputSizes, outputCounts)
	if err != nil {
		return nil, err
	}

	return &Loader{
		dtype:   dtype,
		plan:    plan,
		inputs:  inputs,
		outputs: outputs,
	}, nil
}

// DataType returns the scalar type of every buffer in the loader.
func (l *Loader) DataType() workload.DataType { return l.dtype }

// Plan returns the batch plan the storage was laid out for.
func (l *Loader) Plan() *BatchPlan { return l.plan }

// InputOperands returns the number of input operands.
func (l *Loader) InputOperands() int { return l.inputs.Operands() }

// OutputOperands returns the number of output operands.
func (l *Loader) OutputOperands() int { return l.outputs.Operands() }

// InputSample returns the buffer of one input sample.
func (l *Loader) InputSample(operand int, sample uint64) ([]byte, error) {
	return l.inputs.Block(operand, sample)
}

// OutputSample returns the ground truth buffer of one result sample.
func (l *Loader) OutputSample(operand int, sample uint64) ([]byte, error) {
	return l.outputs.Block(operand, sample)
}

// InputPack returns all sample buffers of one input operand in sample
// order.
func (l *Loader) InputPack(operand int) ([][]byte, error) {
	return l.inputs.Pack(operand)
}

// ResultIndex maps input sample indices to the linear result index.
func (l *Loader) ResultIndex(sample []uint64) (uint64, error) {
	return l.plan.ResultIndex(sample)
}
