// Package benchmark matches provider descriptors against the workload
// families the harness can drive, and runs matched benchmarks through
// their lifecycle.
package benchmark

import "github.com/cipherbench/go-harness/datagen"

// Config carries the run settings every benchmark receives.
type Config struct {
	// DefaultSampleSize fills Offline operand sample counts the
	// descriptor leaves at zero.
	DefaultSampleSize uint64 `json:"default_sample_size" yaml:"default_sample_size"`

	// DefaultMinTestTimeMS applies when a Latency descriptor requests no
	// minimum test time.
	DefaultMinTestTimeMS uint64 `json:"default_min_test_time_ms" yaml:"default_min_test_time_ms"`

	// ValidateResults compares provider outputs against the locally
	// computed ground truth.
	ValidateResults bool `json:"validate_results" yaml:"validate_results"`

	// Tolerance bounds the accepted floating point drift during result
	// validation. Integer results must always match exactly.
	Tolerance datagen.Tolerance `json:"tolerance" yaml:"tolerance"`
}

// DefaultConfig returns the settings used when no configuration overrides
// them.
func DefaultConfig() Config {
	return Config{
		DefaultSampleSize:    5,
		DefaultMinTestTimeMS: 2000,
		ValidateResults:      true,
		Tolerance:            datagen.Tolerance{Abs: 1e-6, Rel: 1e-4},
	}
}
