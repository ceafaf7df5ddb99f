// Package matmul implements the matrix multiplication workload family:
// descriptor matching, dataset generation and the conformance oracle for
// M = M0 x M1 over batched row-major matrix samples.
package matmul

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cipherbench/go-harness/benchmark"
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// BaseName is the display name of the family.
const BaseName = "Matrix Multiplication"

const (
	// InputOperands are the two matrices M0 and M1.
	InputOperands = 2
	// OutputOperands is the product matrix.
	OutputOperands = 1
)

// schema: rows of M0, columns of M0 (= rows of M1), columns of M1. All
// positive.
var schema = workload.Schema{
	{Type: workload.ParamUInt64, Positive: true},
	{Type: workload.ParamUInt64, Positive: true},
	{Type: workload.ParamUInt64, Positive: true},
}

// Dims are the dimensions of one matrix multiplication: M0 is Rows x Inner,
// M1 is Inner x Cols, and the product is Rows x Cols.
type Dims struct {
	Rows  uint64
	Inner uint64
	Cols  uint64
}

// FetchDims extracts the matrix dimensions from the workload parameters
// after validating them against the family schema.
func FetchDims(params []workload.Param) (Dims, error) {
	if err := schema.Validate(params); err != nil {
		return Dims{}, err
	}
	return Dims{
		Rows:  params[0].UInt64(),
		Inner: params[1].UInt64(),
		Cols:  params[2].UInt64(),
	}, nil
}

// Family recognizes and drives matrix multiplication benchmarks.
type Family struct {
	benchmark.PartialDescription
}

// NewFamily creates the matrix multiplication workload family.
func NewFamily() *Family { return &Family{} }

// Name returns the base workload name.
func (f *Family) Name() string { return BaseName }

// MatchDescriptor claims matrix multiplication descriptors carrying valid
// dimension parameters.
func (f *Family) MatchDescriptor(s benchmark.Session, cfg benchmark.Config, id provider.DescriptorID, desc *workload.Descriptor, params []workload.Param) (*benchmark.Token, error) {
	if desc.Workload != workload.MatrixMultiply {
		return nil, nil
	}
	dims, err := FetchDims(params)
	if err != nil {
		var verr *workload.ValidationError
		if errors.As(err, &verr) {
			return nil, nil
		}
		return nil, err
	}
	name := fmt.Sprintf("%s (%dx%d) x (%dx%d)", BaseName, dims.Rows, dims.Inner, dims.Inner, dims.Cols)
	detail := fmt.Sprintf(", , Matrix 0, %dx%d\n, , Matrix 1, %dx%d\n", dims.Rows, dims.Inner, dims.Inner, dims.Cols)
	return f.Finish(s, cfg, id, desc, params, name, detail), nil
}

// CreateBenchmark generates the dataset behind a token this family minted
// and assembles the runnable benchmark.
func (f *Family) CreateBenchmark(s benchmark.Session, token *benchmark.Token) (*benchmark.Benchmark, error) {
	desc, err := f.TokenDescriptor(token)
	if err != nil {
		return nil, err
	}
	params, err := f.TokenParams(token)
	if err != nil {
		return nil, err
	}
	cfg, err := f.TokenConfig(token)
	if err != nil {
		return nil, err
	}
	dims, err := FetchDims(params)
	if err != nil {
		return nil, err
	}

	counts := datagen.SampleCounts(desc, InputOperands, cfg.DefaultSampleSize)
	dataset, err := NewDataset(dims, counts[0], counts[1], desc.DataType)
	if err != nil {
		return nil, errors.Wrap(err, "generating matrix multiplication dataset")
	}
	return benchmark.New(s, &f.PartialDescription, token, dataset)
}
