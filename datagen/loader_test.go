package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherbench/go-harness/workload"
)

func TestNewLoaderLaysOutOutputsPerResult(t *testing.T) {
	plan, err := NewBatchPlan([]uint64{2, 3})
	require.NoError(t, err)

	loader, err := NewLoader(workload.Float32, plan, []uint64{16, 16}, []uint64{4})
	require.NoError(t, err)

	assert.Equal(t, workload.Float32, loader.DataType())
	assert.Equal(t, 2, loader.InputOperands())
	assert.Equal(t, 1, loader.OutputOperands())

	// One ground truth buffer per cross product result.
	for i := uint64(0); i < plan.OutputCount(); i++ {
		buf, err := loader.OutputSample(0, i)
		require.NoError(t, err)
		assert.Len(t, buf, 4)
	}
	_, err = loader.OutputSample(0, plan.OutputCount())
	assert.Error(t, err)

	pack, err := loader.InputPack(1)
	require.NoError(t, err)
	assert.Len(t, pack, 3)
}

func TestNewLoaderValidatesShapes(t *testing.T) {
	plan, err := NewBatchPlan([]uint64{2})
	require.NoError(t, err)

	_, err = NewLoader(workload.Float32, nil, []uint64{4}, []uint64{4})
	assert.Error(t, err)

	_, err = NewLoader(workload.Float32, plan, []uint64{4, 4}, []uint64{4})
	assert.Error(t, err, "input sizes must match operand count")

	_, err = NewLoader(workload.Float32, plan, []uint64{4}, nil)
	assert.Error(t, err, "at least one output operand required")
}
