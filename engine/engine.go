// Package engine orchestrates a full benchmark session: it enumerates the
// provider's descriptors, matches them against the workload registry,
// drives each matched benchmark through its lifecycle and writes the
// timing reports.
package engine

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cipherbench/go-harness/benchmark"
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// Options configures an engine.
type Options struct {
	// Provider is the backend under test.
	Provider provider.Provider

	// Registry holds the workload families used to claim descriptors.
	Registry *benchmark.Registry

	// Config is the run configuration handed to every benchmark.
	Config benchmark.Config

	// ReportRoot is the directory timing reports are written under,
	// following each benchmark's descriptor path. Empty disables report
	// files.
	ReportRoot string
}

// Engine runs benchmarks against one provider. It implements the session
// interface the benchmark layer describes itself through.
type Engine struct {
	provider   provider.Provider
	registry   *benchmark.Registry
	cfg        benchmark.Config
	reportRoot string
}

// New validates the options and builds an engine.
func New(opts Options) (*Engine, error) {
	if opts.Provider == nil {
		return nil, errors.New("engine requires a provider")
	}
	if opts.Registry == nil {
		return nil, errors.New("engine requires a workload registry")
	}
	return &Engine{
		provider:   opts.Provider,
		registry:   opts.Registry,
		cfg:        opts.Config,
		reportRoot: opts.ReportRoot,
	}, nil
}

// Provider returns the backend under test.
func (e *Engine) Provider() provider.Provider { return e.provider }

// Registry returns the workload registry of the session.
func (e *Engine) Registry() *benchmark.Registry { return e.registry }

// Config returns the run configuration of the session.
func (e *Engine) Config() benchmark.Config { return e.cfg }

// SchemeName resolves a scheme tag through the provider, falling back to
// the hex tag when the provider does not know it.
func (e *Engine) SchemeName(scheme uint32) string {
	name, err := e.provider.SchemeName(scheme)
	if err != nil || name == "" {
		return fmt.Sprintf("0x%x", scheme)
	}
	return name
}

// SecurityName resolves a security tag through the provider, falling back
// to the hex tag.
func (e *Engine) SecurityName(scheme, security uint32) string {
	name, err := e.provider.SecurityName(scheme, security)
	if err != nil || name == "" {
		return fmt.Sprintf("0x%x", security)
	}
	return name
}

// ExtraDescription returns the provider's report header rows for a
// descriptor. Provider errors degrade to an empty block.
func (e *Engine) ExtraDescription(id provider.DescriptorID, params []workload.Param) string {
	extra, err := e.provider.ExtraDescription(id, params)
	if err != nil {
		return ""
	}
	return extra
}
