package logreg

import (
	"fmt"
	"math"

	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

// Polynomial approximations of the sigmoid function over the interval
// [-8, 8], coefficients stored lowest order first. Derived from:
//
//	f3(x) = 0.5 + 1.20096(x/8) - 0.81562(x/8)^3
//	f5(x) = 0.5 + 1.53048(x/8) - 2.3533056(x/8)^3 + 1.3511295(x/8)^5
//	f7(x) = 0.5 + 1.73496(x/8) - 4.19407(x/8)^3 + 5.43402(x/8)^5 - 2.50739(x/8)^7
var (
	sigmoidPolyD3 = []float64{0.5, 0.15012, 0.0, -0.0015930078125}
	sigmoidPolyD5 = []float64{0.5, 0.19131, 0.0, -0.0045963, 0.0,
		0.0000412332000732421875}
	sigmoidPolyD7 = []float64{0.5, 0.21687, 0.0, -0.00819154296875, 0.0,
		0.0001658331298828125, 0.0, -0.00000119561672210693359375}
)

// evaluatePolynomial applies Horner's rule, starting from the highest
// order coefficient.
func evaluatePolynomial(coefficients []float64, x float64) float64 {
	result := 0.0
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = result*x + coefficients[i]
	}
	return result
}

// sigmoid evaluates the requested sigmoid variant at x.
func sigmoid(d Degree, x float64) (float64, error) {
	switch d {
	case DegreeExact:
		return 1.0 / (1.0 + math.Exp(-x)), nil
	case Degree3:
		return evaluatePolynomial(sigmoidPolyD3, x), nil
	case Degree5:
		return evaluatePolynomial(sigmoidPolyD5, x), nil
	case Degree7:
		return evaluatePolynomial(sigmoidPolyD7, x), nil
	}
	return 0, fmt.Errorf("unknown sigmoid degree %d", int(d))
}

// infer computes sigmoid(w . x + b) for a single feature vector. The
// linear part runs in the operand type; the sigmoid is always evaluated
// in double precision and the result cast back.
func infer[T float32 | float64](d Degree, result, w []T, bias T, x []T, features uint64) error {
	var linear T
	for i := uint64(0); i < features; i++ {
		linear += w[i] * x[i]
	}
	linear += bias
	s, err := sigmoid(d, float64(linear))
	if err != nil {
		return err
	}
	result[0] = T(s)
	return nil
}

// compute runs the inference oracle on raw operand buffers of the given
// data type. Logistic regression is a floating point workload; integer
// types are rejected.
func compute(t workload.DataType, d Degree, result, w, b, x []byte, features uint64) error {
	switch t {
	case workload.Float32:
		return infer(d, datagen.View[float32](result), datagen.View[float32](w),
			datagen.View[float32](b)[0], datagen.View[float32](x), features)
	case workload.Float64:
		return infer(d, datagen.View[float64](result), datagen.View[float64](w),
			datagen.View[float64](b)[0], datagen.View[float64](x), features)
	}
	return &datagen.UnsupportedTypeError{Op: "logistic regression inference", DataType: t}
}
