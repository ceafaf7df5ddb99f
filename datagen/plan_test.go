package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherbench/go-harness/workload"
)

func TestNewBatchPlanRejectsBadCounts(t *testing.T) {
	_, err := NewBatchPlan(nil)
	assert.Error(t, err)

	_, err = NewBatchPlan([]uint64{2, 0, 3})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "operand 1")
}

// TestBatchPlanCrossProduct checks the row-major result indexing over a
// {2, 3} batch: combination (s0, s1) lands at s0*3 + s1.
func TestBatchPlanCrossProduct(t *testing.T) {
	plan, err := NewBatchPlan([]uint64{2, 3})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Operands())
	assert.Equal(t, uint64(2), plan.InputCount(0))
	assert.Equal(t, uint64(3), plan.InputCount(1))
	assert.Equal(t, uint64(6), plan.OutputCount())

	index, err := plan.ResultIndex([]uint64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), index)

	// Every combination maps to a distinct index covering 0..5.
	seen := make(map[uint64]bool)
	for s0 := uint64(0); s0 < 2; s0++ {
		for s1 := uint64(0); s1 < 3; s1++ {
			index, err := plan.ResultIndex([]uint64{s0, s1})
			require.NoError(t, err)
			assert.False(t, seen[index], "index %d assigned twice", index)
			assert.Less(t, index, plan.OutputCount())
			seen[index] = true
		}
	}
	assert.Len(t, seen, 6)
}

func TestBatchPlanSingleSampleOperands(t *testing.T) {
	// Operands pinned to one sample contribute a factor of one, as in the
	// logistic regression batch shape {1, 1, n}.
	plan, err := NewBatchPlan([]uint64{1, 1, 4})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), plan.OutputCount())

	index, err := plan.ResultIndex([]uint64{0, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), index)
}

func TestResultIndexErrors(t *testing.T) {
	plan, err := NewBatchPlan([]uint64{2, 3})
	require.NoError(t, err)

	_, err = plan.ResultIndex([]uint64{1})
	assert.Error(t, err)

	_, err = plan.ResultIndex([]uint64{2, 0})
	assert.Error(t, err)
}

func TestSampleCounts(t *testing.T) {
	var desc workload.Descriptor

	desc.Category = workload.Offline
	desc.CatParams.Offline.DataCounts[0] = 4
	assert.Equal(t, []uint64{4, 5}, SampleCounts(&desc, 2, 5))

	desc.Category = workload.Latency
	assert.Equal(t, []uint64{1, 1}, SampleCounts(&desc, 2, 5))
}
