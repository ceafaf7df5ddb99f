package benchmark

import (
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/workload"
)

// PartialDescription carries the matching machinery shared by all workload
// family descriptions: it owns the token minting key and finishes
// successful matches by minting and describing tokens. Families embed it
// by value.
type PartialDescription struct {
	key *MatchKey
}

func (d *PartialDescription) matchKey() *MatchKey {
	if d.key == nil {
		d.key = newMatchKey()
	}
	return d.key
}

// Finish completes a successful family match: it builds the description
// from the descriptor and mints the token that carries the match to
// benchmark creation.
func (d *PartialDescription) Finish(s Session, cfg Config, id provider.DescriptorID, desc *workload.Descriptor, params []workload.Param, workloadName, workloadDetail string) *Token {
	paramsCopy := make([]workload.Param, len(params))
	copy(paramsCopy, params)
	descCopy := *desc

	return &Token{
		Description: BuildDescription(s, id, &descCopy, paramsCopy, workloadName, workloadDetail),
		key:         d.matchKey(),
		id:          id,
		desc:        &descCopy,
		params:      paramsCopy,
		cfg:         cfg,
	}
}

// TokenDescriptor unlocks the descriptor of a token this family minted.
func (d *PartialDescription) TokenDescriptor(t *Token) (*workload.Descriptor, error) {
	return t.Descriptor(d.key)
}

// TokenParams unlocks the workload parameters of a token this family
// minted.
func (d *PartialDescription) TokenParams(t *Token) ([]workload.Param, error) {
	return t.Params(d.key)
}

// TokenConfig unlocks the run configuration of a token this family minted.
func (d *PartialDescription) TokenConfig(t *Token) (Config, error) {
	return t.Config(d.key)
}

// TokenDescriptorID unlocks the provider descriptor ID of a token this
// family minted.
func (d *PartialDescription) TokenDescriptorID(t *Token) (provider.DescriptorID, error) {
	return t.DescriptorID(d.key)
}
