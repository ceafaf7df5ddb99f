package benchmark

import (
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// Session gives matching and running benchmarks access to the provider
// under test together with the harness-side conveniences built on top of
// it, such as display name fallbacks for unknown tags.
type Session interface {
	// Provider returns the computation backend under test.
	Provider() provider.Provider

	// SchemeName resolves a scheme tag to a display name.
	SchemeName(scheme uint32) string

	// SecurityName resolves a security tag under a scheme to a display
	// name.
	SecurityName(scheme, security uint32) string

	// ExtraDescription fetches the provider description rows for a
	// descriptor, or empty when the provider offers none.
	ExtraDescription(id provider.DescriptorID, params []workload.Param) string
}
