package benchmark

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// Family is one workload family the harness knows how to drive. A family
// recognizes the descriptors it covers, names them, and creates runnable
// benchmarks for them.
type Family interface {
	// Name returns the base workload name of the family.
	Name() string

	// MatchDescriptor claims a descriptor by returning a description
	// token, or nil when the descriptor does not belong to the family.
	// Workload parameters that fail the family schema demote the match
	// to nil rather than failing it.
	MatchDescriptor(s Session, cfg Config, id provider.DescriptorID, desc *workload.Descriptor, params []workload.Param) (*Token, error)

	// CreateBenchmark builds the runnable benchmark behind a token this
	// family minted, generating its dataset.
	CreateBenchmark(s Session, token *Token) (*Benchmark, error)
}

// Registry holds workload families in registration order. The first family
// claiming a descriptor wins.
type Registry struct {
	families []Family
}

// NewRegistry builds a registry over the given families.
func NewRegistry(families ...Family) *Registry {
	return &Registry{families: families}
}

// Register appends a family to the matching order.
func (r *Registry) Register(f Family) {
	r.families = append(r.families, f)
}

// Families returns the registered families in matching order.
func (r *Registry) Families() []Family {
	return r.families
}

// Match finds the first registered family claiming the descriptor and
// returns its token, together with the family for benchmark creation. An
// unclaimed descriptor returns nil without error. A workload parameter
// count that contradicts the provider's own answer is a protocol
// violation and fails the match.
func (r *Registry) Match(s Session, cfg Config, id provider.DescriptorID, params []workload.Param) (*Token, Family, error) {
	count, err := s.Provider().WorkloadParamCount(id)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "querying workload parameter count for descriptor %d", id)
	}
	if count != uint64(len(params)) {
		return nil, nil, &provider.ProtocolError{
			Provider: s.Provider().Name(),
			Reason:   fmt.Sprintf("descriptor %d expects %d workload parameters, but %d received", id, count, len(params)),
		}
	}
	desc, err := s.Provider().Describe(id)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "describing descriptor %d", id)
	}

	for _, f := range r.families {
		token, err := f.MatchDescriptor(s, cfg, id, desc, params)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "matching descriptor %d against %s", id, f.Name())
		}
		if token != nil {
			klog.V(2).InfoS("descriptor matched", "descriptor", id, "workload", token.Description.WorkloadName)
			return token, f, nil
		}
	}
	klog.V(2).InfoS("descriptor not claimed by any workload family", "descriptor", id, "workload", desc.Workload)
	return nil, nil, nil
}
