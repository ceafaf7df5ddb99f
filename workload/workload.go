// Package workload defines the workload vocabulary shared by the harness and
// computation providers: workload kinds, benchmark categories, data types and
// workload parameters.
package workload

import "fmt"

// Kind identifies a workload family operation.
type Kind uint32

// Supported workload kinds. The numeric values are stable identifiers used in
// report paths and must not be reordered.
const (
	MatrixMultiply Kind = iota
	DotProduct
	LogisticRegression
	LogisticRegressionPolyD3
	LogisticRegressionPolyD5
	LogisticRegressionPolyD7
)

// String returns the canonical name of the workload kind.
func (k Kind) String() string {
	switch k {
	case MatrixMultiply:
		return "MatrixMultiply"
	case DotProduct:
		return "DotProduct"
	case LogisticRegression:
		return "LogisticRegression"
	case LogisticRegressionPolyD3:
		return "LogisticRegressionPolyD3"
	case LogisticRegressionPolyD5:
		return "LogisticRegressionPolyD5"
	case LogisticRegressionPolyD7:
		return "LogisticRegressionPolyD7"
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// Category is the benchmarking category of a descriptor.
type Category uint32

const (
	// Latency measures repeated single-sample operations.
	Latency Category = iota
	// Offline measures one operation over whole sample batches.
	Offline
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case Latency:
		return "Latency"
	case Offline:
		return "Offline"
	}
	return fmt.Sprintf("Category(%d)", uint32(c))
}

// DataType is the scalar element type of workload operands.
type DataType uint32

const (
	Int32 DataType = iota
	Int64
	Float32
	Float64
)

// Size returns the size in bytes of one element of the data type.
func (t DataType) Size() uint64 {
	switch t {
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	}
	return 0
}

// String returns the display name of the data type.
func (t DataType) String() string {
	switch t {
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	}
	return fmt.Sprintf("DataType(%d)", uint32(t))
}

// DataTypes lists every scalar type a descriptor may carry.
var DataTypes = []DataType{Int32, Int64, Float32, Float64}
