package dotproduct

import (
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

// Input data distribution.
const (
	dataMean   = 0.0
	dataStddev = 10.0
)

// Dataset holds the generated vector samples and the ground truth dot
// products of one benchmark.
type Dataset struct {
	*datagen.Loader
	vectorSize uint64
}

// NewDataset generates batchA samples of vector A and batchB samples of
// vector B from a normal distribution, and precomputes the dot product of
// every (A, B) combination as ground truth.
func NewDataset(vectorSize, batchA, batchB uint64, t workload.DataType) (*Dataset, error) {
	plan, err := datagen.NewBatchPlan([]uint64{batchA, batchB})
	if err != nil {
		return nil, err
	}
	elem := t.Size()
	if elem == 0 {
		return nil, &datagen.UnsupportedTypeError{Op: "dotproduct.NewDataset", DataType: t}
	}
	inputSizes := []uint64{vectorSize * elem, vectorSize * elem}
	outputSizes := []uint64{elem}
	loader, err := datagen.NewLoader(t, plan, inputSizes, outputSizes)
	if err != nil {
		return nil, err
	}

	for op := 0; op < InputOperands; op++ {
		for i := uint64(0); i < plan.InputCount(op); i++ {
			buf, err := loader.InputSample(op, i)
			if err != nil {
				return nil, err
			}
			if err := datagen.FillNormal(t, buf, dataMean, dataStddev); err != nil {
				return nil, err
			}
		}
	}

	for ai := uint64(0); ai < batchA; ai++ {
		for bi := uint64(0); bi < batchB; bi++ {
			index, err := loader.ResultIndex([]uint64{ai, bi})
			if err != nil {
				return nil, err
			}
			a, err := loader.InputSample(0, ai)
			if err != nil {
				return nil, err
			}
			b, err := loader.InputSample(1, bi)
			if err != nil {
				return nil, err
			}
			out, err := loader.OutputSample(0, index)
			if err != nil {
				return nil, err
			}
			if err := compute(t, out, a, b, vectorSize); err != nil {
				return nil, err
			}
		}
	}

	return &Dataset{Loader: loader, vectorSize: vectorSize}, nil
}

// VectorSize returns the element count of each input vector.
func (d *Dataset) VectorSize() uint64 { return d.vectorSize }
