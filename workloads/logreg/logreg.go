// Package logreg implements the logistic regression inference workload
// family: descriptor matching, dataset generation and the conformance
// oracle for result = sigmoid(W . X + b), with the sigmoid either exact or
// replaced by one of its polynomial approximations.
package logreg

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cipherbench/go-harness/benchmark"
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// BaseName is the display name of the family.
const BaseName = "Logistic Regression"

const (
	// InputOperands are the weights W, the bias b and the feature vector
	// X, in that operand order.
	InputOperands = 3
	// OutputOperands is the scalar inference result.
	OutputOperands = 1

	// OperandW, OperandB and OperandX are the input operand positions.
	OperandW = 0
	OperandB = 1
	OperandX = 2
)

// schema: a single positive unsigned parameter, the feature count.
var schema = workload.Schema{
	{Type: workload.ParamUInt64, Positive: true},
}

// FeatureCount extracts the feature vector length from the workload
// parameters after validating them against the family schema.
func FeatureCount(params []workload.Param) (uint64, error) {
	if err := schema.Validate(params); err != nil {
		return 0, err
	}
	return params[0].UInt64(), nil
}

// Degree selects the sigmoid evaluation of a logistic regression variant:
// exact, or a polynomial approximation of the given degree.
type Degree int

const (
	DegreeExact Degree = 0
	Degree3     Degree = 3
	Degree5     Degree = 5
	Degree7     Degree = 7
)

// DegreeOf maps a workload kind to its sigmoid degree. The second return
// is false for kinds outside the family.
func DegreeOf(k workload.Kind) (Degree, bool) {
	switch k {
	case workload.LogisticRegression:
		return DegreeExact, true
	case workload.LogisticRegressionPolyD3:
		return Degree3, true
	case workload.LogisticRegressionPolyD5:
		return Degree5, true
	case workload.LogisticRegressionPolyD7:
		return Degree7, true
	}
	return 0, false
}

// variantName renders the middle name segment of a variant, empty for the
// exact sigmoid.
func variantName(d Degree) string {
	switch d {
	case Degree3:
		return "PolyD3 "
	case Degree5:
		return "PolyD5 "
	case Degree7:
		return "PolyD7 "
	}
	return ""
}

// Family recognizes and drives logistic regression benchmarks across all
// sigmoid variants.
type Family struct {
	benchmark.PartialDescription
}

// NewFamily creates the logistic regression workload family.
func NewFamily() *Family { return &Family{} }

// Name returns the base workload name.
func (f *Family) Name() string { return BaseName }

// MatchDescriptor claims logistic regression descriptors of any sigmoid
// variant carrying a valid feature count parameter. Only floating point
// data types are part of the family.
func (f *Family) MatchDescriptor(s benchmark.Session, cfg benchmark.Config, id provider.DescriptorID, desc *workload.Descriptor, params []workload.Param) (*benchmark.Token, error) {
	degree, ok := DegreeOf(desc.Workload)
	if !ok {
		return nil, nil
	}
	if desc.DataType != workload.Float32 && desc.DataType != workload.Float64 {
		return nil, nil
	}
	features, err := FeatureCount(params)
	if err != nil {
		var verr *workload.ValidationError
		if errors.As(err, &verr) {
			return nil, nil
		}
		return nil, err
	}
	name := fmt.Sprintf("%s %s%d features", BaseName, variantName(degree), features)
	detail := fmt.Sprintf(", , Features, %d\n", features)
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
	features, err := FeatureCount(params)
	if err != nil {
		return nil, err
	}
	degree, ok := DegreeOf(desc.Workload)
	if !ok {
		return nil, fmt.Errorf("descriptor workload %s is not a logistic regression variant", desc.Workload)
	}

	counts := datagen.SampleCounts(desc, InputOperands, cfg.DefaultSampleSize)
	dataset, err := NewDataset(degree, features, counts[OperandX], desc.DataType)
	if err != nil {
		return nil, errors.Wrap(err, "generating logistic regression dataset")
	}
	return benchmark.New(s, &f.PartialDescription, token, dataset)
}
