package dotproduct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherbench/go-harness/benchmark"
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/engine"
	"github.com/cipherbench/go-harness/provider/cleartext"
	"github.com/cipherbench/go-harness/timing"
	"github.com/cipherbench/go-harness/workload"
)

func testSession(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Options{
		Provider: cleartext.New(),
		Registry: benchmark.NewRegistry(NewFamily()),
		Config:   benchmark.DefaultConfig(),
	})
	require.NoError(t, err)
	return eng
}

func TestVectorSize(t *testing.T) {
	size, err := VectorSize([]workload.Param{workload.UInt64Param("n", 100)})
	require.NoError(t, err)
	assert.Equal(t, uint64(100), size)

	_, err = VectorSize(nil)
	var verr *workload.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, -1, verr.Index)

	_, err = VectorSize([]workload.Param{workload.Int64Param("n", 100)})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Index)

	_, err = VectorSize([]workload.Param{workload.UInt64Param("n", 0)})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Index)
}

func TestMatchDescriptorClaims(t *testing.T) {
	sess := testSession(t)
	f := NewFamily()
	desc := &workload.Descriptor{
		Workload: workload.DotProduct,
		Category: workload.Latency,
		DataType: workload.Float32,
	}
	params := []workload.Param{workload.UInt64Param("n", 4)}

	token, err := f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, params)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "Dot Product 4", token.Description.WorkloadName)
	assert.NotEmpty(t, token.Description.Path)
	assert.Contains(t, token.Description.Header, ", , Vector size, 4\n")
}

func TestMatchDescriptorIgnoresOtherWorkloads(t *testing.T) {
	sess := testSession(t)
	f := NewFamily()
	desc := &workload.Descriptor{Workload: workload.MatrixMultiply}
	params := []workload.Param{workload.UInt64Param("n", 4)}

	token, err := f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, params)
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestMatchDescriptorDemotesInvalidParams(t *testing.T) {
	sess := testSession(t)
	f := NewFamily()
	desc := &workload.Descriptor{Workload: workload.DotProduct}

	// Parameters failing the schema demote the match instead of failing it.
	token, err := f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, []workload.Param{workload.Float64Param("n", 4)})
	assert.NoError(t, err)
	assert.Nil(t, token)

	token, err = f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, []workload.Param{workload.UInt64Param("n", 0)})
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestNewDatasetGroundTruth(t *testing.T) {
	const (
		vectorSize = 4
		batchA     = 2
		batchB     = 3
	)
	ds, err := NewDataset(vectorSize, batchA, batchB, workload.Float64)
	require.NoError(t, err)

	assert.Equal(t, uint64(vectorSize), ds.VectorSize())
	assert.Equal(t, InputOperands, ds.InputOperands())
	assert.Equal(t, OutputOperands, ds.OutputOperands())
	require.Equal(t, uint64(batchA*batchB), ds.Plan().OutputCount())

	for ai := uint64(0); ai < batchA; ai++ {
		for bi := uint64(0); bi < batchB; bi++ {
			a, err := ds.InputSample(0, ai)
			require.NoError(t, err)
			b, err := ds.InputSample(1, bi)
			require.NoError(t, err)
			index, err := ds.ResultIndex([]uint64{ai, bi})
			require.NoError(t, err)
			out, err := ds.OutputSample(0, index)
			require.NoError(t, err)

			va := datagen.View[float64](a)
			vb := datagen.View[float64](b)
			var want float64
			for i := 0; i < vectorSize; i++ {
				want += va[i] * vb[i]
			}
			assert.Equal(t, want, datagen.View[float64](out)[0],
				"combination (%d, %d)", ai, bi)
		}
	}
}

func TestComputeTypes(t *testing.T) {
	t.Run("int32", func(t *testing.T) {
		a := datagen.Bytes([]int32{1, 2, 3})
		b := datagen.Bytes([]int32{4, 5, 6})
		out := make([]byte, 4)
		require.NoError(t, compute(workload.Int32, out, a, b, 3))
		assert.Equal(t, int32(32), datagen.View[int32](out)[0])
	})
	t.Run("int64", func(t *testing.T) {
		a := datagen.Bytes([]int64{-2, 10})
		b := datagen.Bytes([]int64{3, 7})
		out := make([]byte, 8)
		require.NoError(t, compute(workload.Int64, out, a, b, 2))
		assert.Equal(t, int64(64), datagen.View[int64](out)[0])
	})
	t.Run("float32", func(t *testing.T) {
		a := datagen.Bytes([]float32{0.5, 1.5})
		b := datagen.Bytes([]float32{2, 4})
		out := make([]byte, 4)
		require.NoError(t, compute(workload.Float32, out, a, b, 2))
		assert.Equal(t, float32(7), datagen.View[float32](out)[0])
	})
	t.Run("float64", func(t *testing.T) {
		a := datagen.Bytes([]float64{1.25, -0.5})
		b := datagen.Bytes([]float64{4, 2})
		out := make([]byte, 8)
		require.NoError(t, compute(workload.Float64, out, a, b, 2))
		assert.Equal(t, float64(4), datagen.View[float64](out)[0])
	})
	t.Run("short result buffer", func(t *testing.T) {
		err := compute(workload.Int32, nil, nil, nil, 0)
		assert.Error(t, err)
	})
}

func TestCreateBenchmarkRunsAgainstCleartext(t *testing.T) {
	sess := testSession(t)
	f := NewFamily()
	cfg := benchmark.DefaultConfig()
	cfg.DefaultSampleSize = 2
	cfg.DefaultMinTestTimeMS = 1

	prov := sess.Provider()
	for _, id := range prov.Benchmarks() {
		desc, err := prov.Describe(id)
		require.NoError(t, err)
		if desc.Workload != workload.DotProduct {
			continue
		}
		sets, err := prov.DefaultParams(id)
		require.NoError(t, err)
		require.NotEmpty(t, sets)

		token, err := f.MatchDescriptor(sess, cfg, id, desc, sets[0])
		require.NoError(t, err)
		require.NotNil(t, token, "descriptor %d", id)

		bench, err := f.CreateBenchmark(sess, token)
		require.NoError(t, err)
		assert.Equal(t, benchmark.StateDescriptorBound, bench.State())

		rep := timing.NewReport(token.Description.Header)
		require.NoError(t, bench.InitBackend(rep))
		require.NoError(t, bench.PostInit())
		require.NoError(t, bench.Run(rep), "descriptor %d", id)
		require.NoError(t, bench.Close())
		assert.NotEmpty(t, rep.Events())
	}
}
