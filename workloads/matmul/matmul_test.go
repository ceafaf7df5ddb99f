package matmul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

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

func dimParams(rows, inner, cols uint64) []workload.Param {
	return []workload.Param{
		workload.UInt64Param("rows0", rows),
		workload.UInt64Param("cols0", inner),
		workload.UInt64Param("cols1", cols),
	}
}

func TestFetchDims(t *testing.T) {
	dims, err := FetchDims(dimParams(2, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, Dims{Rows: 2, Inner: 3, Cols: 4}, dims)

	var verr *workload.ValidationError
	_, err = FetchDims(dimParams(2, 3, 4)[:2])
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, -1, verr.Index)

	_, err = FetchDims([]workload.Param{
		workload.UInt64Param("rows0", 2),
		workload.Float64Param("cols0", 3),
		workload.UInt64Param("cols1", 4),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)

	_, err = FetchDims(dimParams(2, 3, 0))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, verr.Index)
}

func TestMatchDescriptorClaims(t *testing.T) {
	sess := testSession(t)
	f := NewFamily()
	desc := &workload.Descriptor{
		Workload: workload.MatrixMultiply,
		Category: workload.Offline,
		DataType: workload.Float64,
	}

	token, err := f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, dimParams(2, 3, 4))
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "Matrix Multiplication (2x3) x (3x4)", token.Description.WorkloadName)
	assert.Contains(t, token.Description.Header, ", , Matrix 0, 2x3\n, , Matrix 1, 3x4\n")
}

func TestMatchDescriptorIgnoresOtherWorkloads(t *testing.T) {
	sess := testSession(t)
	f := NewFamily()
	desc := &workload.Descriptor{Workload: workload.DotProduct}

	token, err := f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, dimParams(2, 3, 4))
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestMatchDescriptorDemotesInvalidParams(t *testing.T) {
	sess := testSession(t)
	f := NewFamily()
	desc := &workload.Descriptor{Workload: workload.MatrixMultiply}

	token, err := f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, dimParams(2, 0, 4))
	assert.NoError(t, err)
	assert.Nil(t, token)

	token, err = f.MatchDescriptor(sess, benchmark.DefaultConfig(), 0, desc, nil)
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestComputeMatchesTensorProduct(t *testing.T) {
	aData := []float64{1, 2, 3, 4, 5, 6}
	bData := []float64{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	dims := Dims{Rows: 2, Inner: 3, Cols: 4}

	out := make([]byte, dims.Rows*dims.Cols*workload.Float64.Size())
	require.NoError(t, compute(workload.Float64, out, datagen.Bytes(aData), datagen.Bytes(bData), dims))
	got := datagen.View[float64](out)

	want := []float64{74, 80, 86, 92, 173, 188, 203, 218}
	assert.Equal(t, want, got)

	a := tensor.New(tensor.WithShape(2, 3), tensor.Of(tensor.Float64), tensor.WithBacking(aData))
	b := tensor.New(tensor.WithShape(3, 4), tensor.Of(tensor.Float64), tensor.WithBacking(bData))
	prod, err := tensor.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, want, prod.Data().([]float64))
}

func TestComputeIntegerTypes(t *testing.T) {
	dims := Dims{Rows: 2, Inner: 2, Cols: 2}
	a := datagen.Bytes([]int32{1, 2, 3, 4})
	b := datagen.Bytes([]int32{5, 6, 7, 8})
	out := make([]byte, 4*workload.Int32.Size())

	require.NoError(t, compute(workload.Int32, out, a, b, dims))
	assert.Equal(t, []int32{19, 22, 43, 50}, datagen.View[int32](out))

	short := make([]byte, 4)
	assert.Error(t, compute(workload.Int32, short, a, b, dims))
}

func TestNewDatasetGroundTruthAgainstTensor(t *testing.T) {
	dims := Dims{Rows: 2, Inner: 3, Cols: 4}
	const batch0, batch1 = 2, 2

	ds, err := NewDataset(dims, batch0, batch1, workload.Float64)
	require.NoError(t, err)
	assert.Equal(t, dims, ds.Dims())
	require.Equal(t, uint64(batch0*batch1), ds.Plan().OutputCount())

	for i0 := uint64(0); i0 < batch0; i0++ {
		for i1 := uint64(0); i1 < batch1; i1++ {
			aBuf, err := ds.InputSample(0, i0)
			require.NoError(t, err)
			bBuf, err := ds.InputSample(1, i1)
			require.NoError(t, err)
			index, err := ds.ResultIndex([]uint64{i0, i1})
			require.NoError(t, err)
			outBuf, err := ds.OutputSample(0, index)
			require.NoError(t, err)

			a := tensor.New(tensor.WithShape(2, 3), tensor.Of(tensor.Float64),
				tensor.WithBacking(append([]float64(nil), datagen.View[float64](aBuf)...)))
			b := tensor.New(tensor.WithShape(3, 4), tensor.Of(tensor.Float64),
				tensor.WithBacking(append([]float64(nil), datagen.View[float64](bBuf)...)))
			prod, err := tensor.MatMul(a, b)
			require.NoError(t, err)

			want := prod.Data().([]float64)
			got := datagen.View[float64](outBuf)
			require.Len(t, got, len(want))
			for i := range want {
				assert.InDelta(t, want[i], got[i], 1e-9,
					"combination (%d, %d) element %d", i0, i1, i)
			}
		}
	}
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
		if desc.Workload != workload.MatrixMultiply {
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

		rep := timing.NewReport(token.Description.Header)
		require.NoError(t, bench.InitBackend(rep))
		require.NoError(t, bench.PostInit())
		require.NoError(t, bench.Run(rep), "descriptor %d", id)
		require.NoError(t, bench.Close())
	}
}
