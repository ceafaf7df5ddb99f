package cleartext

import (
	"fmt"

	"github.com/cipherbench/go-harness/provider"
)

// instance is a live cleartext benchmark. Operate computes the full cross
// product of the input sample batches through the compiled kernel.
type instance struct {
	operands   int
	resultSize uint64
	kernel     kernelFunc
	destroyed  bool
}

func (b *instance) Operate(inputs []provider.DataPack) ([]provider.DataPack, error) {
	if b.destroyed {
		return nil, fmt.Errorf("operate called on a destroyed benchmark")
	}
	if len(inputs) != b.operands {
		return nil, fmt.Errorf("operation received %d input operands, expected %d", len(inputs), b.operands)
	}
	counts := make([]int, len(inputs))
	total := 1
	for i := range inputs {
		if inputs[i].Operand != i {
			return nil, fmt.Errorf("input pack %d is labeled operand %d", i, inputs[i].Operand)
		}
		if len(inputs[i].Samples) == 0 {
			return nil, fmt.Errorf("input operand %d carries no samples", i)
		}
		counts[i] = len(inputs[i].Samples)
		total *= counts[i]
	}

	// Results are ordered row major over the input sample indices, the
	// last operand varying fastest.
	results := make([][]byte, 0, total)
	selected := make([][]byte, len(inputs))
	comb := make([]int, len(inputs))
	for {
		for i := range selected {
			selected[i] = inputs[i].Samples[comb[i]]
		}
		out := make([]byte, b.resultSize)
		if err := b.kernel(out, selected); err != nil {
			return nil, err
		}
		results = append(results, out)

		i := len(comb) - 1
		for ; i >= 0; i-- {
			comb[i]++
			if comb[i] < counts[i] {
				break
			}
			comb[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return []provider.DataPack{{Operand: 0, Samples: results}}, nil
}

func (b *instance) Destroy() error {
	b.destroyed = true
	return nil
}
