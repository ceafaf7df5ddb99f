package benchmark

import (
	"fmt"

	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// Description is the public summary of a matched benchmark.
type Description struct {
	// WorkloadName is the human readable benchmark name, such as
	// "Dot Product 4096".
	WorkloadName string

	// Path is the relative, filesystem-safe report location derived from
	// the descriptor.
	Path string

	// Header is the CSV-style description block written at the top of
	// reports.
	Header string
}

// MatchKey proves ownership of a description token. The family that
// performed the match holds the only reference; everything else can read
// the public Description but not the raw descriptor.
type MatchKey struct {
	_ byte
}

func newMatchKey() *MatchKey { return new(MatchKey) }

// Token carries a matched benchmark from the matcher to the benchmark it
// creates. The raw descriptor, workload parameters and run configuration
// ride along sealed; accessors require the minting key.
type Token struct {
	Description Description

	key    *MatchKey
	id     provider.DescriptorID
	desc   *workload.Descriptor
	params []workload.Param
	cfg    Config
}

func errNotKeyHolder() error {
	return fmt.Errorf("description token: caller does not hold the minting key")
}

func (t *Token) unlocked(key *MatchKey) bool {
	return key != nil && key == t.key
}

// Descriptor returns the matched descriptor. The caller must hold the
// minting key.
func (t *Token) Descriptor(key *MatchKey) (*workload.Descriptor, error) {
	if !t.unlocked(key) {
		return nil, errNotKeyHolder()
	}
	return t.desc, nil
}

// Params returns the workload parameters of the match.
func (t *Token) Params(key *MatchKey) ([]workload.Param, error) {
	if !t.unlocked(key) {
		return nil, errNotKeyHolder()
	}
	return t.params, nil
}

// Config returns the run configuration the match was performed under.
func (t *Token) Config(key *MatchKey) (Config, error) {
	if !t.unlocked(key) {
		return Config{}, errNotKeyHolder()
	}
	return t.cfg, nil
}

// DescriptorID returns the provider-side ID of the matched descriptor.
func (t *Token) DescriptorID(key *MatchKey) (provider.DescriptorID, error) {
	if !t.unlocked(key) {
		return 0, errNotKeyHolder()
	}
	return t.id, nil
}
