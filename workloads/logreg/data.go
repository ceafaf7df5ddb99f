package logreg

import (
	"github.com/pkg/errors"

	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

// Model coefficients and feature vectors are drawn from a standard normal
// distribution.
const (
	dataMean   = 0.0
	dataStddev = 1.0
)

// Dataset holds one randomly generated model (W, b), a batch of feature
// vectors and the precomputed inference result for every vector.
type Dataset struct {
	*datagen.Loader
	degree   Degree
	features uint64
}

// NewDataset generates a logistic regression dataset. The model operands
// always carry a single sample each; only the feature vector operand is
// batched.
func NewDataset(degree Degree, features, batchX uint64, t workload.DataType) (*Dataset, error) {
	if t != workload.Float32 && t != workload.Float64 {
		return nil, &datagen.UnsupportedTypeError{Op: "logreg.NewDataset", DataType: t}
	}
	plan, err := datagen.NewBatchPlan([]uint64{1, 1, batchX})
	if err != nil {
		return nil, err
	}
	elem := t.Size()
	inputSizes := []uint64{features * elem, elem, features * elem}
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

	w, err := loader.InputSample(OperandW, 0)
	if err != nil {
		return nil, err
	}
	b, err := loader.InputSample(OperandB, 0)
	if err != nil {
		return nil, err
	}
	for xi := uint64(0); xi < batchX; xi++ {
		index, err := loader.ResultIndex([]uint64{0, 0, xi})
		if err != nil {
			return nil, err
		}
		x, err := loader.InputSample(OperandX, xi)
		if err != nil {
			return nil, err
		}
		out, err := loader.OutputSample(0, index)
		if err != nil {
			return nil, err
		}
		if err := compute(t, degree, out, w, b, x, features); err != nil {
			return nil, errors.Wrapf(err, "computing inference result %d", xi)
		}
	}

	return &Dataset{Loader: loader, degree: degree, features: features}, nil
}

// Degree returns the sigmoid variant the dataset results were computed
// with.
func (d *Dataset) Degree() Degree { return d.degree }

// FeatureCount returns the feature vector length.
func (d *Dataset) FeatureCount() uint64 { return d.features }
