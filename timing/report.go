package timing

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Report collects the timed events of one benchmark run. It is safe for
// concurrent use.
type Report struct {
	mu      sync.Mutex
	session uuid.UUID
	header  string
	events  []*Event
}

// NewReport creates an empty report carrying the benchmark description
// header and a fresh session ID.
func NewReport(header string) *Report {
	return &Report{
		session: uuid.New(),
		header:  header,
	}
}

// SessionID returns the unique ID of this run.
func (r *Report) SessionID() uuid.UUID { return r.session }

// Header returns the description header the report was created with.
func (r *Report) Header() string { return r.header }

// AddEvent appends a timed event to the report.
func (r *Report) AddEvent(e *Event) {
	if e == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a snapshot of the recorded events in insertion order.
func (r *Report) Events() []*Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*Event, len(r.events))
	copy(events, r.events)
	return events
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// WriteCSV writes the description header followed by one row per event.
// Times are reported in milliseconds.
func (r *Report) WriteCSV(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.header != "" {
		if _, err := fmt.Fprintln(w, r.header); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n, Session, %s\n", r.session); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ", ID, Event, Iterations, Total Wall Time (ms), Total CPU Time (ms), Wall Time per Iteration (ms), CPU Time per Iteration (ms)"); err != nil {
		return err
	}
	for _, e := range r.events {
		_, err := fmt.Fprintf(w, ", %d, %s, %d, %f, %f, %f, %f\n",
			e.ID, e.Name, e.Iterations,
			ms(e.WallTime), ms(e.CPUTime),
			ms(e.WallPerIteration()), ms(e.CPUPerIteration()))
		if err != nil {
			return err
		}
	}
	return nil
}
