// Package timing measures benchmark events against wall and process CPU
// clocks and collects them into per-benchmark reports.
package timing

import (
	"time"

	"golang.org/x/sys/unix"
)

// Event is one timed occurrence in a benchmark run. Iterations counts how
// many operations the measured interval spans, so per-iteration times can
// be derived from the totals.
type Event struct {
	ID         uint64
	Name       string
	Iterations uint64
	WallTime   time.Duration
	CPUTime    time.Duration
}

// WallPerIteration returns the average wall time of one iteration.
func (e *Event) WallPerIteration() time.Duration {
	if e.Iterations == 0 {
		return 0
	}
	return e.WallTime / time.Duration(e.Iterations)
}

// CPUPerIteration returns the average CPU time of one iteration.
func (e *Event) CPUPerIteration() time.Duration {
	if e.Iterations == 0 {
		return 0
	}
	return e.CPUTime / time.Duration(e.Iterations)
}

// Timer measures wall and process CPU time across a Start/Stop pair. The
// zero value is ready to use.
type Timer struct {
	wallStart time.Time
	cpuStart  time.Duration
}

// Start begins a measurement.
func (t *Timer) Start() {
	t.cpuStart = processCPUTime()
	t.wallStart = time.Now()
}

// Stop ends the measurement and packages it as an event.
func (t *Timer) Stop(id, iterations uint64, name string) *Event {
	wall := time.Since(t.wallStart)
	cpu := processCPUTime() - t.cpuStart
	if cpu < 0 {
		cpu = 0
	}
	return &Event{
		ID:         id,
		Name:       name,
		Iterations: iterations,
		WallTime:   wall,
		CPUTime:    cpu,
	}
}

// processCPUTime returns the user plus system CPU time consumed by the
// process so far.
func processCPUTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}
