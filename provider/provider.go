// Package provider defines the contract between the harness and the
// computation backends it drives. A provider advertises benchmark
// descriptors, resolves display names for its opaque scheme and security
// tags, and instantiates live benchmarks that execute operations on
// harness-supplied sample data.
package provider

import (
	"fmt"

	"github.com/cipherbench/go-harness/workload"
)

// DescriptorID identifies one benchmark descriptor a provider offers. IDs
// are provider-scoped and carry no meaning to the harness.
type DescriptorID uint64

// DataPack carries the sample buffers of one operand across the provider
// boundary, in sample order.
type DataPack struct {
	Operand int
	Samples [][]byte
}

// Provider is a computation backend under test.
type Provider interface {
	// Name identifies the provider in logs and reports.
	Name() string

	// Benchmarks enumerates the descriptors the provider offers.
	Benchmarks() []DescriptorID

	// Describe returns the descriptor behind an ID.
	Describe(id DescriptorID) (*workload.Descriptor, error)

	// WorkloadParamCount returns the number of workload parameters the
	// descriptor expects.
	WorkloadParamCount(id DescriptorID) (uint64, error)

	// DefaultParams returns the workload parameter sets the provider
	// wants benchmarked for a descriptor. Every set must carry exactly
	// WorkloadParamCount parameters.
	DefaultParams(id DescriptorID) ([][]workload.Param, error)

	// SchemeName resolves the display name of a scheme tag.
	SchemeName(scheme uint32) (string, error)

	// SecurityName resolves the display name of a security tag under a
	// scheme.
	SecurityName(scheme, security uint32) (string, error)

	// ExtraDescription returns provider-specific rows appended to report
	// headers. May be empty.
	ExtraDescription(id DescriptorID, params []workload.Param) (string, error)

	// Init instantiates the benchmark behind a descriptor with concrete
	// workload parameters. The returned instance holds backend resources
	// until destroyed.
	Init(id DescriptorID, params []workload.Param) (Benchmark, error)
}

// Benchmark is a live backend benchmark instance.
type Benchmark interface {
	// Operate runs the workload operation over the given input packs,
	// one pack per input operand, and returns one pack per output
	// operand.
	Operate(inputs []DataPack) ([]DataPack, error)

	// Destroy releases the backend resources held by the instance.
	Destroy() error
}

// ProtocolError reports a provider response that violates the provider
// contract, such as a workload parameter count that contradicts the
// descriptor or a result batch of the wrong shape.
type ProtocolError struct {
	Provider string
	Reason   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("provider %q violated the benchmark protocol: %s", e.Provider, e.Reason)
}
