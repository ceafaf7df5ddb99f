package datagen

import (
	"fmt"

	"github.com/cipherbench/go-harness/workload"
)

// UnsupportedTypeError reports an operation asked to work on a scalar type
// it has no implementation for.
type UnsupportedTypeError struct {
	Op       string
	DataType workload.DataType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: data type %s not supported", e.Op, e.DataType)
}

// AllocationError reports a sample buffer layout that cannot be realized.
type AllocationError struct {
	Operand int
	Reason  string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocating buffers for operand %d: %s", e.Operand, e.Reason)
}
