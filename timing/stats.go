package timing

import "time"

// Stats aggregates the timing events of one benchmark run.
type Stats struct {
	Events     int           `json:"events"`
	Iterations uint64        `json:"iterations"`
	TotalWall  time.Duration `json:"total_wall"`
	TotalCPU   time.Duration `json:"total_cpu"`

	// MinWall and MaxWall are the fastest and slowest per-iteration wall
	// times observed across events.
	MinWall time.Duration `json:"min_wall"`
	MaxWall time.Duration `json:"max_wall"`

	// MeanWall and MeanCPU are per-iteration means over the whole run.
	MeanWall time.Duration `json:"mean_wall"`
	MeanCPU  time.Duration `json:"mean_cpu"`

	OpsPerSecond float64 `json:"ops_per_second"`
}

// Summarize computes aggregate statistics over timing events, weighting
// per-iteration means by each event's iteration count.
func Summarize(events []*Event) Stats {
	var s Stats
	s.Events = len(events)
	for i, e := range events {
		s.Iterations += e.Iterations
		s.TotalWall += e.WallTime
		s.TotalCPU += e.CPUTime

		per := e.WallPerIteration()
		if i == 0 || per < s.MinWall {
			s.MinWall = per
		}
		if per > s.MaxWall {
			s.MaxWall = per
		}
	}
	if s.Iterations > 0 {
		s.MeanWall = time.Duration(int64(s.TotalWall) / int64(s.Iterations))
		s.MeanCPU = time.Duration(int64(s.TotalCPU) / int64(s.Iterations))
	}
	if s.TotalWall > 0 {
		s.OpsPerSecond = float64(s.Iterations) / s.TotalWall.Seconds()
	}
	return s
}
