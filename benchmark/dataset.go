package benchmark

import (
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

// Dataset supplies the generated input samples and locally computed ground
// truth a benchmark operates on. datagen.Loader satisfies it; families
// return their generated loaders behind this interface.
type Dataset interface {
	// DataType is the scalar type of every buffer in the dataset.
	DataType() workload.DataType

	// Plan returns the batch plan the samples were generated under.
	Plan() *datagen.BatchPlan

	// InputOperands returns the number of input operands.
	InputOperands() int

	// OutputOperands returns the number of output operands.
	OutputOperands() int

	// InputSample returns the buffer of one input sample.
	InputSample(operand int, sample uint64) ([]byte, error)

	// OutputSample returns the ground truth buffer of one result sample.
	OutputSample(operand int, sample uint64) ([]byte, error)

	// InputPack returns all sample buffers of one input operand.
	InputPack(operand int) ([][]byte, error)

	// ResultIndex maps input sample indices to the linear result index.
	ResultIndex(sample []uint64) (uint64, error)
}
