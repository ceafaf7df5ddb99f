package workload

import "fmt"

// ParamType is the value type of a workload parameter.
type ParamType uint32

const (
	ParamUInt64 ParamType = iota
	ParamInt64
	ParamFloat64
)

// String returns the display name of the parameter type.
func (t ParamType) String() string {
	switch t {
	case ParamUInt64:
		return "UInt64"
	case ParamInt64:
		return "Int64"
	case ParamFloat64:
		return "Float64"
	}
	return fmt.Sprintf("ParamType(%d)", uint32(t))
}

// Param is a single workload parameter, a named value tagged with its type.
// Only the field matching Type carries meaning.
type Param struct {
	Name string
	Type ParamType

	uval uint64
	ival int64
	fval float64
}

// UInt64Param builds an unsigned integer workload parameter.
func UInt64Param(name string, v uint64) Param {
	return Param{Name: name, Type: ParamUInt64, uval: v}
}

// Int64Param builds a signed integer workload parameter.
func Int64Param(name string, v int64) Param {
	return Param{Name: name, Type: ParamInt64, ival: v}
}

// Float64Param builds a floating point workload parameter.
func Float64Param(name string, v float64) Param {
	return Param{Name: name, Type: ParamFloat64, fval: v}
}

// UInt64 returns the unsigned integer value of the parameter.
func (p Param) UInt64() uint64 { return p.uval }

// Int64 returns the signed integer value of the parameter.
func (p Param) Int64() int64 { return p.ival }

// Float64 returns the floating point value of the parameter.
func (p Param) Float64() float64 { return p.fval }

// FormatValue renders the typed value of the parameter as text.
func (p Param) FormatValue() string {
	switch p.Type {
	case ParamUInt64:
		return fmt.Sprintf("%d", p.uval)
	case ParamFloat64:
		return fmt.Sprintf("%g", p.fval)
	default:
		return fmt.Sprintf("%d", p.ival)
	}
}

// ValidationError reports a workload parameter list that does not satisfy a
// family schema. Index is the offending parameter position, or -1 when the
// list as a whole is malformed.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("workload parameters: %s", e.Reason)
	}
	return fmt.Sprintf("workload parameter %d: %s", e.Index, e.Reason)
}

// Constraint is one entry of a parameter schema: the expected type and
// whether the value must be a positive integer.
type Constraint struct {
	Type     ParamType
	Positive bool
}

// Schema is the ordered parameter schema of a workload family.
type Schema []Constraint

// Validate checks params against the schema. Parameters beyond the schema
// length are tolerated. A *ValidationError describes the first violation:
// insufficient count, a type mismatch, or a non-positive constrained value.
func (s Schema) Validate(params []Param) error {
	if len(params) < len(s) {
		return &ValidationError{
			Index:  -1,
			Reason: fmt.Sprintf("insufficient workload parameters, expected %d, but %d received", len(s), len(params)),
		}
	}
	for i, c := range s {
		if params[i].Type != c.Type {
			return &ValidationError{
				Index:  i,
				Reason: fmt.Sprintf("invalid type, expected %s, but %s received", c.Type, params[i].Type),
			}
		}
		if c.Positive && params[i].UInt64() == 0 {
			return &ValidationError{
				Index:  i,
				Reason: "expected positive integer, but 0 received",
			}
		}
	}
	return nil
}
