package matmul

import (
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

// Input data distribution.
const (
	dataMean   = 0.0
	dataStddev = 10.0
)

// Dataset holds the generated matrix samples and the ground truth products
// of one benchmark.
type Dataset struct {
	*datagen.Loader
	dims Dims
}

// NewDataset generates batch0 samples of M0 and batch1 samples of M1 from
// a normal distribution, and precomputes the product of every (M0, M1)
// combination as ground truth. Matrices are stored row major.
func NewDataset(dims Dims, batch0, batch1 uint64, t workload.DataType) (*Dataset, error) {
	plan, err := datagen.NewBatchPlan([]uint64{batch0, batch1})
	if err != nil {
		return nil, err
	}
	elem := t.Size()
	if elem == 0 {
		return nil, &datagen.UnsupportedTypeError{Op: "matmul.NewDataset", DataType: t}
	}
	inputSizes := []uint64{
		dims.Rows * dims.Inner * elem,
		dims.Inner * dims.Cols * elem,
	}
	outputSizes := []uint64{dims.Rows * dims.Cols * elem}
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

	for i0 := uint64(0); i0 < batch0; i0++ {
		for i1 := uint64(0); i1 < batch1; i1++ {
			index, err := loader.ResultIndex([]uint64{i0, i1})
			if err != nil {
				return nil, err
			}
			a, err := loader.InputSample(0, i0)
			if err != nil {
				return nil, err
			}
			b, err := loader.InputSample(1, i1)
			if err != nil {
				return nil, err
			}
			out, err := loader.OutputSample(0, index)
			if err != nil {
				return nil, err
			}
			if err := compute(t, out, a, b, dims); err != nil {
				return nil, err
			}
		}
	}

	return &Dataset{Loader: loader, dims: dims}, nil
}

// Dims returns the matrix dimensions of the dataset.
func (d *Dataset) Dims() Dims { return d.dims }
