// Package config loads the harness run configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cipherbench/go-harness/benchmark"
	"github.com/cipherbench/go-harness/datagen"
)

// validate is the shared validator instance for configuration structs.
var validate = validator.New()

// Config is the harness run configuration.
type Config struct {
	// Seed initializes the sample data generator. Runs sharing a seed
	// generate identical datasets.
	Seed uint64 `json:"seed" yaml:"seed"`

	// ReportRoot is the directory benchmark reports are written under.
	ReportRoot string `json:"report_root" yaml:"report_root"`

	// DefaultSampleSize is the per-operand sample count used when an
	// offline descriptor leaves a count unspecified.
	DefaultSampleSize uint64 `json:"default_sample_size" yaml:"default_sample_size" validate:"gt=0"`

	// DefaultMinTestTimeMS bounds latency tests whose descriptor does not
	// request a minimum test time.
	DefaultMinTestTimeMS uint64 `json:"default_min_test_time_ms" yaml:"default_min_test_time_ms" validate:"gt=0"`

	// SkipValidation disables checking provider results against the
	// locally computed ground truth.
	SkipValidation bool `json:"skip_validation" yaml:"skip_validation"`

	// AbsTolerance and RelTolerance bound the accepted error when
	// validating floating point results.
	AbsTolerance float64 `json:"abs_tolerance" yaml:"abs_tolerance" validate:"gte=0"`
	RelTolerance float64 `json:"rel_tolerance" yaml:"rel_tolerance" validate:"gte=0"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	bench := benchmark.DefaultConfig()
	return Config{
		Seed:                 1,
		ReportRoot:           "reports",
		DefaultSampleSize:    bench.DefaultSampleSize,
		DefaultMinTestTimeMS: bench.DefaultMinTestTimeMS,
		AbsTolerance:         bench.Tolerance.Abs,
		RelTolerance:         bench.Tolerance.Rel,
	}
}

// Load reads and validates a YAML configuration file. Fields the file
// omits keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against its field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Benchmark converts the file configuration into the run configuration
// the benchmark layer consumes.
func (c Config) Benchmark() benchmark.Config {
	return benchmark.Config{
		DefaultSampleSize:    c.DefaultSampleSize,
		DefaultMinTestTimeMS: c.DefaultMinTestTimeMS,
		ValidateResults:      !c.SkipValidation,
		Tolerance: datagen.Tolerance{
			Abs: c.AbsTolerance,
			Rel: c.RelTolerance,
		},
	}
}
