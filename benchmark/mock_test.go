package benchmark

import (
	"fmt"
	"sort"

	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// fakeBench is a provider benchmark double whose behavior is a closure.
type fakeBench struct {
	operate   func(inputs []provider.DataPack) ([]provider.DataPack, error)
	operated  int
	destroyed int
}

func (b *fakeBench) Operate(inputs []provider.DataPack) ([]provider.DataPack, error) {
	b.operated++
	if b.operate == nil {
		return nil, fmt.Errorf("no operate behavior configured")
	}
	return b.operate(inputs)
}

func (b *fakeBench) Destroy() error {
	b.destroyed++
	return nil
}

// fakeProvider is a configurable provider double.
type fakeProvider struct {
	name       string
	descs      map[provider.DescriptorID]*workload.Descriptor
	paramCount map[provider.DescriptorID]uint64
	defaults   map[provider.DescriptorID][][]workload.Param

	schemeName   string
	securityName string
	extra        string

	bench     *fakeBench
	initErr   error
	initCalls int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		name:         "mock",
		descs:        make(map[provider.DescriptorID]*workload.Descriptor),
		paramCount:   make(map[provider.DescriptorID]uint64),
		defaults:     make(map[provider.DescriptorID][][]workload.Param),
		schemeName:   "Mock",
		securityName: "None",
		bench:        &fakeBench{},
	}
}

func (p *fakeProvider) add(id provider.DescriptorID, desc *workload.Descriptor, params ...workload.Param) {
	p.descs[id] = desc
	p.paramCount[id] = uint64(len(params))
	p.defaults[id] = [][]workload.Param{params}
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Benchmarks() []provider.DescriptorID {
	ids := make([]provider.DescriptorID, 0, len(p.descs))
	for id := range p.descs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (p *fakeProvider) Describe(id provider.DescriptorID) (*workload.Descriptor, error) {
	desc, ok := p.descs[id]
	if !ok {
		return nil, fmt.Errorf("unknown descriptor %d", id)
	}
	copy := *desc
	return &copy, nil
}

func (p *fakeProvider) WorkloadParamCount(id provider.DescriptorID) (uint64, error) {
	count, ok := p.paramCount[id]
	if !ok {
		return 0, fmt.Errorf("unknown descriptor %d", id)
	}
	return count, nil
}

func (p *fakeProvider) DefaultParams(id provider.DescriptorID) ([][]workload.Param, error) {
	sets, ok := p.defaults[id]
	if !ok {
		return nil, fmt.Errorf("unknown descriptor %d", id)
	}
	return sets, nil
}

func (p *fakeProvider) SchemeName(scheme uint32) (string, error) {
	return p.schemeName, nil
}

func (p *fakeProvider) SecurityName(scheme, security uint32) (string, error) {
	return p.securityName, nil
}

func (p *fakeProvider) ExtraDescription(id provider.DescriptorID, params []workload.Param) (string, error) {
	return p.extra, nil
}

func (p *fakeProvider) Init(id provider.DescriptorID, params []workload.Param) (provider.Benchmark, error) {
	p.initCalls++
	if p.initErr != nil {
		return nil, p.initErr
	}
	return p.bench, nil
}

// testSession adapts a provider into the session interface with the same
// fallbacks the engine applies.
type testSession struct {
	p provider.Provider
}

func (s *testSession) Provider() provider.Provider { return s.p }

func (s *testSession) SchemeName(scheme uint32) string {
	name, err := s.p.SchemeName(scheme)
	if err != nil || name == "" {
		return fmt.Sprintf("0x%x", scheme)
	}
	return name
}

func (s *testSession) SecurityName(scheme, security uint32) string {
	name, err := s.p.SecurityName(scheme, security)
	if err != nil || name == "" {
		return fmt.Sprintf("0x%x", security)
	}
	return name
}

func (s *testSession) ExtraDescription(id provider.DescriptorID, params []workload.Param) string {
	extra, err := s.p.ExtraDescription(id, params)
	if err != nil {
		return ""
	}
	return extra
}
