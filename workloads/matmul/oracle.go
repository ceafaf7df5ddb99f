package matmul

import (
	"fmt"

	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

func multiply[T datagen.Scalar](result, a, b []T, dims Dims) {
	for row := uint64(0); row < dims.Rows; row++ {
		for col := uint64(0); col < dims.Cols; col++ {
			var acc T
			for k := uint64(0); k < dims.Inner; k++ {
				acc += a[row*dims.Inner+k] * b[k*dims.Cols+col]
			}
			result[row*dims.Cols+col] = acc
		}
	}
}

// compute evaluates the row-major matrix product of a and b into result,
// accumulating in the arithmetic of the data type.
func compute(t workload.DataType, result, a, b []byte, dims Dims) error {
	if uint64(len(result)) < dims.Rows*dims.Cols*t.Size() {
		return fmt.Errorf("matrix product buffer holds %d bytes, need %d", len(result), dims.Rows*dims.Cols*t.Size())
	}
	switch t {
	case workload.Int32:
		multiply(datagen.View[int32](result), datagen.View[int32](a), datagen.View[int32](b), dims)
	case workload.Int64:
		multiply(datagen.View[int64](result), datagen.View[int64](a), datagen.View[int64](b), dims)
	case workload.Float32:
		multiply(datagen.View[float32](result), datagen.View[float32](a), datagen.View[float32](b), dims)
	case workload.Float64:
		multiply(datagen.View[float64](result), datagen.View[float64](a), datagen.View[float64](b), dims)
	default:
		return &datagen.UnsupportedTypeError{Op: "matmul.compute", DataType: t}
	}
	return nil
}
