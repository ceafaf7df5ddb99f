package dotproduct

import (
	"fmt"

	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

func dot[T datagen.Scalar](result, a, b []T, elems uint64) {
	var acc T
	for i := uint64(0); i < elems; i++ {
		acc += a[i] * b[i]
	}
	result[0] = acc
}

// compute evaluates the inner product of a and b into result, accumulating
// in the arithmetic of the data type.
func compute(t workload.DataType, result, a, b []byte, elems uint64) error {
	if len(result) < int(t.Size()) {
		return fmt.Errorf("dot product result buffer holds no element")
	}
	switch t {
	case workload.Int32:
		dot(datagen.View[int32](result), datagen.View[int32](a), datagen.View[int32](b), elems)
	case workload.Int64:
		dot(datagen.View[int64](result), datagen.View[int64](a), datagen.View[int64](b), elems)
	case workload.Float32:
		dot(datagen.View[float32](result), datagen.View[float32](a), datagen.View[float32](b), elems)
	case workload.Float64:
		dot(datagen.View[float64](result), datagen.View[float64](a), datagen.View[float64](b), elems)
	default:
		return &datagen.UnsupportedTypeError{Op: "dotproduct.compute", DataType: t}
	}
	return nil
}
