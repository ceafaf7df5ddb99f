// Package cleartext is an in-process reference provider. It computes every
// workload directly on the unencrypted sample buffers, which makes it both
// a smoke test target for the harness and a floor line for comparing real
// backends against.
package cleartext

import (
	"fmt"

	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// Scheme and security tags advertised by the provider. The values are
// opaque to the harness; only the names below reach reports.
const (
	SchemePlain  uint32 = 0
	SecurityNone uint32 = 0
)

// Default workload parameter values offered per family.
const (
	defaultVectorSize   = 100
	defaultMatrixDim    = 10
	defaultFeatureCount = 16
)

type entry struct {
	desc   workload.Descriptor
	params [][]workload.Param
}

// Provider computes workloads in the clear, in process.
type Provider struct {
	entries []entry
}

// New builds the provider with its full descriptor table: dot product and
// matrix multiplication over every data type, logistic regression variants
// over the floating point types, each in both categories.
func New() *Provider {
	p := &Provider{}
	categories := []workload.Category{workload.Latency, workload.Offline}
	for _, t := range workload.DataTypes {
		for _, c := range categories {
			p.add(workload.MatrixMultiply, c, t, [][]workload.Param{{
				workload.UInt64Param("m", defaultMatrixDim),
				workload.UInt64Param("k", defaultMatrixDim),
				workload.UInt64Param("n", defaultMatrixDim),
			}})
			p.add(workload.DotProduct, c, t, [][]workload.Param{{
				workload.UInt64Param("n", defaultVectorSize),
			}})
		}
	}
	variants := []workload.Kind{
		workload.LogisticRegression,
		workload.LogisticRegressionPolyD3,
		workload.LogisticRegressionPolyD5,
		workload.LogisticRegressionPolyD7,
	}
	for _, k := range variants {
		for _, t := range []workload.DataType{workload.Float32, workload.Float64} {
			for _, c := range categories {
				p.add(k, c, t, [][]workload.Param{{
					workload.UInt64Param("n", defaultFeatureCount),
				}})
			}
		}
	}
	return p
}

func (p *Provider) add(k workload.Kind, c workload.Category, t workload.DataType, params [][]workload.Param) {
	desc := workload.Descriptor{
		Workload: k,
		Category: c,
		DataType: t,
		Scheme:   SchemePlain,
		Security: SecurityNone,
	}
	if c == workload.Latency {
		desc.CatParams.Latency = workload.LatencyParams{WarmupIterations: 1}
	}
	p.entries = append(p.entries, entry{desc: desc, params: params})
}

func (p *Provider) lookup(id provider.DescriptorID) (*entry, error) {
	if uint64(id) >= uint64(len(p.entries)) {
		return nil, fmt.Errorf("unknown benchmark descriptor ID %d", uint64(id))
	}
	return &p.entries[id], nil
}

// Name identifies the provider in logs and reports.
func (p *Provider) Name() string { return "cleartext" }

// Benchmarks enumerates every descriptor in the table.
func (p *Provider) Benchmarks() []provider.DescriptorID {
	ids := make([]provider.DescriptorID, len(p.entries))
	for i := range ids {
		ids[i] = provider.DescriptorID(i)
	}
	return ids
}

// Describe returns a copy of the descriptor behind id.
func (p *Provider) Describe(id provider.DescriptorID) (*workload.Descriptor, error) {
	e, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	desc := e.desc
	return &desc, nil
}

// WorkloadParamCount returns the parameter count the descriptor expects.
func (p *Provider) WorkloadParamCount(id provider.DescriptorID) (uint64, error) {
	e, err := p.lookup(id)
	if err != nil {
		return 0, err
	}
	return uint64(len(e.params[0])), nil
}

// DefaultParams returns copies of the default parameter sets of id.
func (p *Provider) DefaultParams(id provider.DescriptorID) ([][]workload.Param, error) {
	e, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	sets := make([][]workload.Param, len(e.params))
	for i, set := range e.params {
		sets[i] = append([]workload.Param(nil), set...)
	}
	return sets, nil
}

// SchemeName resolves the plain scheme tag.
func (p *Provider) SchemeName(scheme uint32) (string, error) {
	if scheme != SchemePlain {
		return "", fmt.Errorf("unknown scheme tag 0x%x", scheme)
	}
	return "Plain", nil
}

// SecurityName resolves the security tag of the plain scheme.
func (p *Provider) SecurityName(scheme, security uint32) (string, error) {
	if scheme != SchemePlain {
		return "", fmt.Errorf("unknown scheme tag 0x%x", scheme)
	}
	if security != SecurityNone {
		return "", fmt.Errorf("unknown security tag 0x%x", security)
	}
	return "None", nil
}

// ExtraDescription adds the provider rows shown in report headers.
func (p *Provider) ExtraDescription(id provider.DescriptorID, params []workload.Param) (string, error) {
	if _, err := p.lookup(id); err != nil {
		return "", err
	}
	return ", , Backend, in-process reference (no encryption)\n", nil
}

// Init builds the compute kernel for a descriptor and returns the live
// benchmark instance.
func (p *Provider) Init(id provider.DescriptorID, params []workload.Param) (provider.Benchmark, error) {
	e, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	if len(params) != len(e.params[0]) {
		return nil, fmt.Errorf("descriptor %d expects %d workload parameters, got %d", uint64(id), len(e.params[0]), len(params))
	}
	kernel, resultSize, err := buildKernel(&e.desc, params)
	if err != nil {
		return nil, err
	}
	return &instance{
		operands:   inputOperands(e.desc.Workload),
		resultSize: resultSize,
		kernel:     kernel,
	}, nil
}

// inputOperands returns the input operand count of a workload kind.
func inputOperands(k workload.Kind) int {
	switch k {
	case workload.LogisticRegression,
		workload.LogisticRegressionPolyD3,
		workload.LogisticRegressionPolyD5,
		workload.LogisticRegressionPolyD7:
		return 3
	}
	return 2
}
