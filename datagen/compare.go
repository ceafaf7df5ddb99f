package datagen

import (
	"math"

	"github.com/cipherbench/go-harness/workload"
)

// Tolerance bounds the acceptable difference between a computed value and
// its reference: values match when |a-b| <= Abs or when the difference is
// within Rel of the larger magnitude.
type Tolerance struct {
	Abs float64
	Rel float64
}

// Within reports whether a and b match under the tolerance.
func (t Tolerance) Within(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= t.Abs {
		return true
	}
	return diff <= t.Rel*math.Max(math.Abs(a), math.Abs(b))
}

func compareView[T Scalar](want, got []byte, match func(a, b T) bool) int {
	w, g := View[T](want), View[T](got)
	n := len(w)
	if len(g) < n {
		n = len(g)
	}
	for i := 0; i < n; i++ {
		if !match(w[i], g[i]) {
			return i
		}
	}
	if len(w) != len(g) {
		return n
	}
	return -1
}

// CompareBuffers checks got against want element by element: integer types
// must match exactly, floating point types within tol. It returns the index
// of the first mismatching element, or -1 when the buffers agree. Buffers of
// different element counts mismatch at the first missing element.
func CompareBuffers(t workload.DataType, want, got []byte, tol Tolerance) (int, error) {
	switch t {
	case workload.Int32:
		return compareView(want, got, func(a, b int32) bool { return a == b }), nil
	case workload.Int64:
		return compareView(want, got, func(a, b int64) bool { return a == b }), nil
	case workload.Float32:
		return compareView(want, got, func(a, b float32) bool { return tol.Within(float64(a), float64(b)) }), nil
	case workload.Float64:
		return compareView(want, got, tol.Within), nil
	}
	return 0, &UnsupportedTypeError{Op: "CompareBuffers", DataType: t}
}
