package cleartext

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/workload"
)

// kernelFunc computes one result sample from one sample per input operand.
type kernelFunc func(result []byte, inputs [][]byte) error

// buildKernel compiles the descriptor and its workload parameters into a
// kernel closure and the result sample size in bytes.
func buildKernel(desc *workload.Descriptor, params []workload.Param) (kernelFunc, uint64, error) {
	elem := desc.DataType.Size()
	switch desc.Workload {
	case workload.DotProduct:
		n := params[0].UInt64()
		return dotKernel(desc.DataType, n), elem, nil
	case workload.MatrixMultiply:
		rows, inner, cols := params[0].UInt64(), params[1].UInt64(), params[2].UInt64()
		return matMulKernel(desc.DataType, rows, inner, cols), rows * cols * elem, nil
	}
	if degree, ok := sigmoidDegree(desc.Workload); ok {
		kernel, err := logRegKernel(desc.DataType, degree, params[0].UInt64())
		if err != nil {
			return nil, 0, err
		}
		return kernel, elem, nil
	}
	return nil, 0, fmt.Errorf("workload %s is not implemented by the cleartext provider", desc.Workload)
}

// sigmoidDegree maps a logistic regression kind to its polynomial degree,
// 0 meaning the exact sigmoid.
func sigmoidDegree(k workload.Kind) (int, bool) {
	switch k {
	case workload.LogisticRegression:
		return 0, true
	case workload.LogisticRegressionPolyD3:
		return 3, true
	case workload.LogisticRegressionPolyD5:
		return 5, true
	case workload.LogisticRegressionPolyD7:
		return 7, true
	}
	return 0, false
}

func dotKernel(t workload.DataType, n uint64) kernelFunc {
	return func(result []byte, inputs [][]byte) error {
		switch t {
		case workload.Int32:
			return dotCompute[int32](result, inputs, n)
		case workload.Int64:
			return dotCompute[int64](result, inputs, n)
		case workload.Float32:
			return dotCompute[float32](result, inputs, n)
		case workload.Float64:
			return dotCompute[float64](result, inputs, n)
		}
		return &datagen.UnsupportedTypeError{Op: "cleartext dot product", DataType: t}
	}
}

func dotCompute[T datagen.Scalar](result []byte, inputs [][]byte, n uint64) error {
	a := datagen.View[T](inputs[0])
	b := datagen.View[T](inputs[1])
	if uint64(len(a)) < n || uint64(len(b)) < n {
		return fmt.Errorf("dot product operands hold %d and %d elements, need %d", len(a), len(b), n)
	}
	var acc T
	for i := uint64(0); i < n; i++ {
		acc += a[i] * b[i]
	}
	datagen.View[T](result)[0] = acc
	return nil
}

func matMulKernel(t workload.DataType, rows, inner, cols uint64) kernelFunc {
	return func(result []byte, inputs [][]byte) error {
		switch t {
		case workload.Int32:
			return matMulCompute[int32](result, inputs, rows, inner, cols)
		case workload.Int64:
			return matMulCompute[int64](result, inputs, rows, inner, cols)
		case workload.Float32:
			return matMulCompute[float32](result, inputs, rows, inner, cols)
		case workload.Float64:
			return matMulCompute[float64](result, inputs, rows, inner, cols)
		}
		return &datagen.UnsupportedTypeError{Op: "cleartext matrix multiplication", DataType: t}
	}
}

// matMulCompute multiplies row-major matrices a (rows x inner) and
// b (inner x cols) into out (rows x cols).
func matMulCompute[T datagen.Scalar](result []byte, inputs [][]byte, rows, inner, cols uint64) error {
	a := datagen.View[T](inputs[0])
	b := datagen.View[T](inputs[1])
	out := datagen.View[T](result)
	if uint64(len(a)) < rows*inner || uint64(len(b)) < inner*cols {
		return fmt.Errorf("matrix operands hold %d and %d elements, need %d and %d", len(a), len(b), rows*inner, inner*cols)
	}
	for row := uint64(0); row < rows; row++ {
		for col := uint64(0); col < cols; col++ {
			var acc T
			for k := uint64(0); k < inner; k++ {
				acc += a[row*inner+k] * b[k*cols+col]
			}
			out[row*cols+col] = acc
		}
	}
	return nil
}

// Sigmoid polynomial coefficients over [-8, 8], lowest order first. The
// provider keeps both precisions so each data type computes natively.
var (
	poly3f64 = []float64{0.5, 0.15012, 0.0, -0.0015930078125}
	poly5f64 = []float64{0.5, 0.19131, 0.0, -0.0045963, 0.0,
		0.0000412332000732421875}
	poly7f64 = []float64{0.5, 0.21687, 0.0, -0.00819154296875, 0.0,
		0.0001658331298828125, 0.0, -0.00000119561672210693359375}

	poly3f32 = []float32{0.5, 0.15012, 0.0, -0.0015930078125}
	poly5f32 = []float32{0.5, 0.19131, 0.0, -0.0045963, 0.0,
		0.0000412332000732421875}
	poly7f32 = []float32{0.5, 0.21687, 0.0, -0.00819154296875, 0.0,
		0.0001658331298828125, 0.0, -0.00000119561672210693359375}
)

func logRegKernel(t workload.DataType, degree int, features uint64) (kernelFunc, error) {
	switch t {
	case workload.Float32:
		return func(result []byte, inputs [][]byte) error {
			return logRegCompute32(result, inputs, degree, features)
		}, nil
	case workload.Float64:
		return func(result []byte, inputs [][]byte) error {
			return logRegCompute64(result, inputs, degree, features)
		}, nil
	}
	return nil, &datagen.UnsupportedTypeError{Op: "cleartext logistic regression", DataType: t}
}

func logRegCompute32(result []byte, inputs [][]byte, degree int, features uint64) error {
	w := datagen.View[float32](inputs[0])
	b := datagen.View[float32](inputs[1])
	x := datagen.View[float32](inputs[2])
	if uint64(len(w)) < features || uint64(len(x)) < features || len(b) < 1 {
		return fmt.Errorf("logistic regression operands hold %d, %d and %d elements, need %d, 1 and %d", len(w), len(b), len(x), features, features)
	}
	var linear float32
	for i := uint64(0); i < features; i++ {
		linear += w[i] * x[i]
	}
	linear += b[0]

	out := datagen.View[float32](result)
	switch degree {
	case 0:
		out[0] = 1.0 / (1.0 + math32.Exp(-linear))
	case 3:
		out[0] = horner32(poly3f32, linear)
	case 5:
		out[0] = horner32(poly5f32, linear)
	case 7:
		out[0] = horner32(poly7f32, linear)
	default:
		return fmt.Errorf("unsupported sigmoid polynomial degree %d", degree)
	}
	return nil
}

func logRegCompute64(result []byte, inputs [][]byte, degree int, features uint64) error {
	w := datagen.View[float64](inputs[0])
	b := datagen.View[float64](inputs[1])
	x := datagen.View[float64](inputs[2])
	if uint64(len(w)) < features || uint64(len(x)) < features || len(b) < 1 {
		return fmt.Errorf("logistic regression operands hold %d, %d and %d elements, need %d, 1 and %d", len(w), len(b), len(x), features, features)
	}
	var linear float64
	for i := uint64(0); i < features; i++ {
		linear += w[i] * x[i]
	}
	linear += b[0]

	out := datagen.View[float64](result)
	switch degree {
	case 0:
		out[0] = 1.0 / (1.0 + math.Exp(-linear))
	case 3:
		out[0] = horner64(poly3f64, linear)
	case 5:
		out[0] = horner64(poly5f64, linear)
	case 7:
		out[0] = horner64(poly7f64, linear)
	default:
		return fmt.Errorf("unsupported sigmoid polynomial degree %d", degree)
	}
	return nil
}

func horner32(coefficients []float32, x float32) float32 {
	var result float32
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = result*x + coefficients[i]
	}
	return result
}

func horner64(coefficients []float64, x float64) float64 {
	var result float64
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = result*x + coefficients[i]
	}
	return result
}
