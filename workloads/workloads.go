// Package workloads assembles the built-in workload families into a
// benchmark registry.
package workloads

import (
	"github.com/cipherbench/go-harness/benchmark"
	"github.com/cipherbench/go-harness/workloads/dotproduct"
	"github.com/cipherbench/go-harness/workloads/logreg"
	"github.com/cipherbench/go-harness/workloads/matmul"
)

// DefaultRegistry creates a registry holding every built-in workload
// family. Registration order decides match precedence when a provider
// descriptor could be claimed by more than one family.
func DefaultRegistry() *benchmark.Registry {
	r := benchmark.NewRegistry()
	r.Register(matmul.NewFamily())
	r.Register(dotproduct.NewFamily())
	r.Register(logreg.NewFamily())
	return r
}
