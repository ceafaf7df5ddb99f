package benchmark

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherbench/go-harness/workload"
)

func TestBuildDescriptionLatency(t *testing.T) {
	prov := newFakeProvider()
	prov.extra = ", , Backend, mock\n"
	sess := &testSession{p: prov}

	desc := &workload.Descriptor{
		Workload: workload.DotProduct,
		Category: workload.Latency,
		DataType: workload.Float32,
		CatParams: workload.CategoryParams{
			Latency: workload.LatencyParams{WarmupIterations: 1},
		},
	}
	params := []workload.Param{workload.UInt64Param("n", 100)}

	d := BuildDescription(sess, 3, desc, params, "Dot Product 100", ", , Vector size, 100\n")

	assert.Equal(t, "Dot Product 100", d.WorkloadName)
	assert.Equal(t, filepath.Join(
		"dot_product_100_1", "wp_100", "latency", "float32", "1",
		"all_plain", "mock", "none", "0",
	), d.Path)

	want := "Specifications,\n" +
		", Encryption, \n" +
		", , Scheme, Mock\n" +
		", , Security, None\n" +
		", Extra, 0\n" +
		", , Backend, mock\n" +
		"\n\n" +
		", Category, Latency\n" +
		", , Warmup iterations, 1\n" +
		", , Minimum test time requested (ms), 0\n" +
		"\n, Workload, Dot Product 100\n" +
		", , Data type, Float32\n" +
		", , Encrypted op parameters (index), None\n" +
		", , Vector size, 100\n"
	assert.Equal(t, want, d.Header)
}

func TestBuildDescriptionOffline(t *testing.T) {
	prov := newFakeProvider()
	prov.schemeName = "BFV"
	prov.securityName = "128 bits"
	sess := &testSession{p: prov}

	desc := &workload.Descriptor{
		Workload:   workload.MatrixMultiply,
		Category:   workload.Offline,
		DataType:   workload.Int64,
		CipherMask: 0b1,
		Scheme:     0x10,
		Security:   0x20,
		Other:      7,
	}
	desc.CatParams.Offline.DataCounts[0] = 2
	params := []workload.Param{
		workload.UInt64Param("rows0", 2),
		workload.UInt64Param("cols0", 3),
		workload.UInt64Param("cols1", 4),
	}
	detail := ", , Matrix 0, 2x3\n, , Matrix 1, 3x4\n"

	d := BuildDescription(sess, 9, desc, params, "Matrix Multiplication (2x3) x (3x4)", detail)

	assert.Equal(t, filepath.Join(
		"matrix_multiplication_2x3_x_3x4_0", "wp_2_3_4", "offline", "int64",
		"2", "c", "bfv", "128_bits", "7",
	), d.Path)

	want := "Specifications,\n" +
		", Encryption, \n" +
		", , Scheme, BFV\n" +
		", , Security, 128 bits\n" +
		", Extra, 7\n" +
		"\n\n" +
		", Category, Offline\n" +
		", , Parameter, Samples requested\n" +
		", , 0, 2\n" +
		"\n, Workload, Matrix Multiplication (2x3) x (3x4)\n" +
		", , Data type, Int64\n" +
		", , Encrypted op parameters (index), 0\n" +
		detail
	assert.Equal(t, want, d.Header)
}

func TestBuildDescriptionOfflineDefaultCounts(t *testing.T) {
	sess := &testSession{p: newFakeProvider()}

	desc := &workload.Descriptor{
		Workload: workload.DotProduct,
		Category: workload.Offline,
		DataType: workload.Int32,
	}
	params := []workload.Param{workload.UInt64Param("n", 8)}

	d := BuildDescription(sess, 0, desc, params, "Dot Product 8", "")

	segments := strings.Split(d.Path, string(filepath.Separator))
	require.Len(t, segments, 9)
	assert.Equal(t, "default", segments[4])
	assert.Contains(t, d.Header, ", , Parameter, Samples requested\n, , All, 0\n")
}

func TestCipherMaskSegment(t *testing.T) {
	tests := []struct {
		name string
		mask uint32
		want string
	}{
		{name: "no ciphertext operands", mask: 0, want: "all_plain"},
		{name: "every operand ciphertext", mask: ^uint32(0), want: "all_cipher"},
		{name: "first operand only", mask: 0b1, want: "c"},
		{name: "second operand only", mask: 0b10, want: "pc"},
		{name: "mixed mask", mask: 0b101, want: "cpc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cipherMaskSegment(tt.mask))
		})
	}
}

func TestCatParamSegment(t *testing.T) {
	latency := &workload.Descriptor{Category: workload.Latency}
	latency.CatParams.Latency.WarmupIterations = 5
	latency.CatParams.Latency.MinTestTimeMS = 200
	assert.Equal(t, "5200", catParamSegment(latency))

	trailing := &workload.Descriptor{Category: workload.Latency}
	trailing.CatParams.Latency.WarmupIterations = 1
	assert.Equal(t, "1", catParamSegment(trailing))

	zero := &workload.Descriptor{Category: workload.Offline}
	assert.Equal(t, "default", catParamSegment(zero))

	offline := &workload.Descriptor{Category: workload.Offline}
	offline.CatParams.Offline.DataCounts[0] = 10
	offline.CatParams.Offline.DataCounts[2] = 3
	assert.Equal(t, "1003", catParamSegment(offline))
}
