package workload

// MaxOperands is the maximum number of operands an operation may take.
const MaxOperands = 32

// LatencyParams configures a Latency category benchmark.
type LatencyParams struct {
	// WarmupIterations is the number of untimed operations performed
	// before measurement starts.
	WarmupIterations uint64
	// MinTestTimeMS is the minimum accumulated wall time, in
	// milliseconds, the timed loop must reach. Zero lets the harness
	// default apply.
	MinTestTimeMS uint64
}

// OfflineParams configures an Offline category benchmark.
type OfflineParams struct {
	// DataCounts requests the number of samples per operand. A zero entry
	// means the harness default sample count.
	DataCounts [MaxOperands]uint64
}

// CategoryParams carries the category-dependent benchmark parameters. Only
// the field matching the descriptor category is meaningful.
type CategoryParams struct {
	Latency LatencyParams
	Offline OfflineParams
}

// Raw returns the flat parameter values of the active category as they
// appear in report paths.
func (p CategoryParams) Raw(c Category) []uint64 {
	if c == Latency {
		return []uint64{p.Latency.WarmupIterations, p.Latency.MinTestTimeMS}
	}
	return p.Offline.DataCounts[:]
}

// Descriptor describes one benchmark a provider offers: the workload, the
// benchmarking category with its parameters, the scalar type, and opaque
// provider tags for encryption scheme, security level and anything else the
// provider wants to distinguish runs by.
type Descriptor struct {
	Workload Kind
	Category Category
	DataType DataType

	// CipherMask flags which operands the provider treats as ciphertext,
	// one bit per operand position. The harness never interprets the
	// payloads, only reports the mask.
	CipherMask uint32

	// Scheme and Security are provider-defined tags resolved to display
	// names through the provider itself.
	Scheme   uint32
	Security uint32

	// Other is a free provider tag distinguishing otherwise identical
	// benchmarks.
	Other uint64

	CatParams CategoryParams
}

// CipherParamPositions returns the set bit positions of mask in ascending
// order, one per ciphertext operand.
func CipherParamPositions(mask uint32) []int {
	var positions []int
	for i := 0; i < 32; i++ {
		if mask&(1<<uint(i)) != 0 {
			positions = append(positions, i)
		}
	}
	return positions
}
