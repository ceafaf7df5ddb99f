// Package dotproduct implements the dot product workload family: descriptor
// matching, dataset generation and the conformance oracle for C = A . B
// over batched vector samples.
package dotproduct

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cipherbench/go-harness/benchmark"
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// BaseName is the display name of the family.
const BaseName = "Dot Product"

const (
	// InputOperands are the two vectors A and B.
	InputOperands = 2
	// OutputOperands is the scalar result C.
	OutputOperands = 1
)

// schema: a single positive unsigned parameter, the vector element count.
var schema = workload.Schema{
	{Type: workload.ParamUInt64, Positive: true},
}

// VectorSize extracts the vector element count from the workload
// parameters after validating them against the family schema.
func VectorSize(params []workload.Param) (uint64, error) {
	if err := schema.Validate(params); err != nil {
		return 0, err
	}
	return params[0].UInt64(), nil
}

// Family recognizes and drives dot product benchmarks.
type Family struct {
	benchmark.PartialDescription
}

// NewFamily creates the dot product workload family.
func NewFamily() *Family { return &Family{} }

// Name returns the base workload name.
func (f *Family) Name() string { return BaseName }

// MatchDescriptor claims dot product descriptors carrying a valid vector
// size parameter.
func (f *Family) MatchDescriptor(s benchmark.Session, cfg benchmark.Config, id provider.DescriptorID, desc *workload.Descriptor, params []workload.Param) (*benchmark.Token, error) {
	if desc.Workload != workload.DotProduct {
		return nil, nil
	}
	size, err := VectorSize(params)
	if err != nil {
		var verr *workload.ValidationError
		if errors.As(err, &verr) {
			return nil, nil
		}
		return nil, err
	}
	name := fmt.Sprintf("%s %d", BaseName, size)
	detail := fmt.Sprintf(", , Vector size, %d\n", size)
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
	size, err := VectorSize(params)
	if err != nil {
		return nil, err
	}

	counts := datagen.SampleCounts(desc, InputOperands, cfg.DefaultSampleSize)
	dataset, err := NewDataset(size, counts[0], counts[1], desc.DataType)
	if err != nil {
		return nil, errors.Wrap(err, "generating dot product dataset")
	}
	return benchmark.New(s, &f.PartialDescription, token, dataset)
}
