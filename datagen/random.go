package datagen

import (
	"math"
	"math/rand"
	"sync"

	"github.com/cipherbench/go-harness/workload"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(1))
)

// Seed reseeds the shared generator. Two runs with the same seed produce
// byte-identical datasets.
func Seed(seed uint64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewSource(int64(seed)))
}

// FillNormal fills buf, interpreted as elements of t, with draws from a
// normal distribution with the given mean and standard deviation. Integer
// types receive rounded draws.
func FillNormal(t workload.DataType, buf []byte, mean, stddev float64) error {
	rngMu.Lock()
	defer rngMu.Unlock()

	switch t {
	case workload.Int32:
		for s, i := View[int32](buf), 0; i < len(s); i++ {
			s[i] = int32(math.Round(rng.NormFloat64()*stddev + mean))
		}
	case workload.Int64:
		for s, i := View[int64](buf), 0; i < len(s); i++ {
			s[i] = int64(math.Round(rng.NormFloat64()*stddev + mean))
		}
	case workload.Float32:
		for s, i := View[float32](buf), 0; i < len(s); i++ {
			s[i] = float32(rng.NormFloat64()*stddev + mean)
		}
	case workload.Float64:
		for s, i := View[float64](buf), 0; i < len(s); i++ {
			s[i] = rng.NormFloat64()*stddev + mean
		}
	default:
		return &UnsupportedTypeError{Op: "FillNormal", DataType: t}
	}
	return nil
}
