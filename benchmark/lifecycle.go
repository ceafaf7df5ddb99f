package benchmark

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/timing"
	"github.com/cipherbench/go-harness/workload"
)

// State is a stage of the benchmark lifecycle.
type State uint32

const (
	// StateConstructed is a benchmark with no descriptor bound yet.
	StateConstructed State = iota
	// StateDescriptorBound has the matched descriptor cached and is
	// ready for backend initialization.
	StateDescriptorBound
	// StateBackendInitializing covers the provider initialization call.
	StateBackendInitializing
	// StateReady accepts operations.
	StateReady
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateConstructed:
		return "Constructed"
	case StateDescriptorBound:
		return "DescriptorBound"
	case StateBackendInitializing:
		return "BackendInitializing"
	case StateReady:
		return "Ready"
	}
	return fmt.Sprintf("State(%d)", uint32(s))
}

// NotInitializedError reports a benchmark operation attempted before the
// initialization stages completed.
type NotInitializedError struct {
	// Stage names the first lifecycle stage still missing.
	Stage string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("benchmark initialization incomplete: %s has not run, all stages Bind, InitBackend and PostInit must complete first", e.Stage)
}

// PartialBenchmark drives the benchmark lifecycle against the provider:
// token binding, timed backend initialization and readiness checks. The
// zero value is a benchmark in the Constructed state.
type PartialBenchmark struct {
	session Session
	state   State

	id     provider.DescriptorID
	desc   *workload.Descriptor
	params []workload.Param
	cfg    Config

	handle  provider.Benchmark
	eventID uint64
}

// State returns the current lifecycle state.
func (b *PartialBenchmark) State() State { return b.state }

// Descriptor returns the bound descriptor, or nil before Bind.
func (b *PartialBenchmark) Descriptor() *workload.Descriptor { return b.desc }

// Params returns the bound workload parameters, or nil before Bind.
func (b *PartialBenchmark) Params() []workload.Param { return b.params }

// Config returns the run configuration of the bound token.
func (b *PartialBenchmark) Config() Config { return b.cfg }

// Bind caches the matched descriptor from a token and advances the
// lifecycle from Constructed to DescriptorBound. The key must be the one
// the token was minted with.
func (b *PartialBenchmark) Bind(s Session, token *Token, key *MatchKey) error {
	if b.state != StateConstructed {
		return fmt.Errorf("descriptor already bound, benchmark is %s", b.state)
	}
	if s == nil {
		return fmt.Errorf("binding requires a session")
	}
	if token == nil {
		return fmt.Errorf("binding requires a description token")
	}
	desc, err := token.Descriptor(key)
	if err != nil {
		return err
	}
	params, err := token.Params(key)
	if err != nil {
		return err
	}
	cfg, err := token.Config(key)
	if err != nil {
		return err
	}
	id, err := token.DescriptorID(key)
	if err != nil {
		return err
	}

	b.session = s
	b.id = id
	b.desc = desc
	b.params = params
	b.cfg = cfg
	b.state = StateDescriptorBound
	return nil
}

// InitBackend asks the provider to instantiate the benchmark, timing the
// call with wall and CPU clocks into rep, and advances the lifecycle to
// BackendInitializing.
func (b *PartialBenchmark) InitBackend(rep *timing.Report) error {
	switch b.state {
	case StateDescriptorBound:
	case StateConstructed:
		return &NotInitializedError{Stage: "Bind"}
	default:
		return fmt.Errorf("backend already initialized, benchmark is %s", b.state)
	}
	b.state = StateBackendInitializing

	klog.InfoS("initializing backend benchmark",
		"provider", b.session.Provider().Name(),
		"workload", b.desc.Workload,
		"category", b.desc.Category)

	var timer timing.Timer
	timer.Start()
	handle, err := b.session.Provider().Init(b.id, b.params)
	event := timer.Stop(b.nextEventID(), 1, "Initialization")
	if err != nil {
		return errors.Wrap(err, "initializing backend benchmark")
	}
	b.handle = handle
	if rep != nil {
		rep.AddEvent(event)
	}

	klog.InfoS("backend benchmark initialized",
		"wallMS", float64(event.WallTime.Microseconds())/1000.0,
		"cpuMS", float64(event.CPUTime.Microseconds())/1000.0)
	return nil
}

// PostInit finishes initialization and moves the benchmark to Ready.
func (b *PartialBenchmark) PostInit() error {
	switch b.state {
	case StateBackendInitializing:
	case StateConstructed:
		return &NotInitializedError{Stage: "Bind"}
	case StateDescriptorBound:
		return &NotInitializedError{Stage: "InitBackend"}
	default:
		return fmt.Errorf("initialization already finished, benchmark is %s", b.state)
	}
	b.state = StateReady
	return nil
}

// checkReady guards operations that require a fully initialized benchmark.
func (b *PartialBenchmark) checkReady() error {
	switch b.state {
	case StateReady:
		return nil
	case StateConstructed:
		return &NotInitializedError{Stage: "Bind"}
	case StateDescriptorBound:
		return &NotInitializedError{Stage: "InitBackend"}
	default:
		return &NotInitializedError{Stage: "PostInit"}
	}
}

// nextEventID hands out monotonically increasing timing event IDs.
func (b *PartialBenchmark) nextEventID() uint64 {
	id := b.eventID
	b.eventID++
	return id
}

// Close releases the provider-side benchmark instance. It is safe to call
// in any state and more than once.
func (b *PartialBenchmark) Close() error {
	if b.handle == nil {
		return nil
	}
	handle := b.handle
	b.handle = nil
	if err := handle.Destroy(); err != nil {
		return errors.Wrap(err, "destroying backend benchmark")
	}
	return nil
}
