package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/report"
	"github.com/cipherbench/go-harness/timing"
	"github.com/cipherbench/go-harness/workload"
)

// Report files written per benchmark and per session.
const (
	reportFileName  = "report.csv"
	summaryFileName = "summary.csv"
)

// Result is the outcome of one benchmark run.
type Result struct {
	ID       provider.DescriptorID
	Workload string
	Path     string

	// ReportFile is the timing report location, empty when report writing
	// is disabled or the run failed before it.
	ReportFile string

	// Stats aggregates the run's timing events.
	Stats timing.Stats

	// Skipped is true when no workload family claimed the descriptor.
	Skipped bool

	Err error
}

// Failed counts the results that ended in an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Run benchmarks every descriptor the provider offers, once per default
// workload parameter set, and returns one result per attempt. Benchmark
// failures are recorded and do not stop the session; only context
// cancellation does.
func (e *Engine) Run(ctx context.Context) ([]Result, error) {
	ids := e.provider.Benchmarks()
	klog.InfoS("starting benchmark session", "provider", e.provider.Name(), "descriptors", len(ids))

	var results []Result
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		sets, err := e.paramSets(id)
		if err != nil {
			results = append(results, Result{ID: id, Err: err})
			continue
		}
		for _, params := range sets {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			res := e.runOne(id, params)
			if res.Err != nil {
				klog.ErrorS(res.Err, "benchmark failed", "descriptor", id, "workload", res.Workload)
			}
			results = append(results, res)
		}
	}

	if e.reportRoot != "" {
		if err := e.writeSummary(results); err != nil {
			return results, err
		}
	}
	klog.InfoS("benchmark session finished",
		"total", len(results), "failed", Failed(results))
	return results, nil
}

// writeSummary writes the per-benchmark outcome table of the session.
func (e *Engine) writeSummary(results []Result) error {
	file := filepath.Join(e.reportRoot, summaryFileName)
	return report.WriteFile(file, false, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, "Workload, Status, Iterations, Mean Wall Time (ms), Ops per Second, Report"); err != nil {
			return err
		}
		for _, r := range results {
			status := "pass"
			switch {
			case r.Skipped:
				status = "skipped"
			case r.Err != nil:
				status = "fail"
			}
			name := r.Workload
			if name == "" {
				name = fmt.Sprintf("descriptor %d", uint64(r.ID))
			}
			_, err := fmt.Fprintf(w, "%s, %s, %d, %f, %f, %s\n",
				name, status, r.Stats.Iterations,
				float64(r.Stats.MeanWall)/float64(time.Millisecond),
				r.Stats.OpsPerSecond, r.ReportFile)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// paramSets fetches the default workload parameter sets of a descriptor.
// Descriptors without workload parameters run once with an empty set.
func (e *Engine) paramSets(id provider.DescriptorID) ([][]workload.Param, error) {
	sets, err := e.provider.DefaultParams(id)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching default workload parameters of descriptor %d", id)
	}
	if len(sets) == 0 {
		sets = [][]workload.Param{nil}
	}
	return sets, nil
}

func (e *Engine) runOne(id provider.DescriptorID, params []workload.Param) Result {
	res := Result{ID: id}

	token, family, err := e.registry.Match(e, e.cfg, id, params)
	if err != nil {
		res.Err = err
		return res
	}
	if family == nil {
		klog.InfoS("skipping unclaimed descriptor", "descriptor", id)
		res.Skipped = true
		return res
	}
	res.Workload = token.Description.WorkloadName
	res.Path = token.Description.Path
	klog.InfoS("running benchmark", "workload", res.Workload, "path", res.Path)

	bench, err := family.CreateBenchmark(e, token)
	if err != nil {
		res.Err = errors.Wrap(err, "creating benchmark")
		return res
	}
	defer bench.Close()

	rep := timing.NewReport(token.Description.Header)
	if err := bench.InitBackend(rep); err != nil {
		res.Err = err
		return res
	}
	if err := bench.PostInit(); err != nil {
		res.Err = err
		return res
	}
	if err := bench.Run(rep); err != nil {
		res.Err = err
		return res
	}

	res.Stats = timing.Summarize(rep.Events())
	if e.reportRoot != "" {
		file := filepath.Join(e.reportRoot, res.Path, reportFileName)
		if err := report.WriteFile(file, false, rep.WriteCSV); err != nil {
			res.Err = errors.Wrap(err, "writing timing report")
			return res
		}
		res.ReportFile = file
	}
	klog.InfoS("benchmark complete",
		"workload", res.Workload,
		"events", res.Stats.Events,
		"meanWallMS", float64(res.Stats.MeanWall)/float64(time.Millisecond),
		"opsPerSecond", res.Stats.OpsPerSecond)
	return res
}

// List writes one line per descriptor and parameter set showing how the
// session would handle it, without running anything.
func (e *Engine) List(w io.Writer) error {
	for _, id := range e.provider.Benchmarks() {
		sets, err := e.paramSets(id)
		if err != nil {
			return err
		}
		for _, params := range sets {
			token, family, err := e.registry.Match(e, e.cfg, id, params)
			if err != nil {
				return errors.Wrapf(err, "matching descriptor %d", id)
			}
			if family == nil {
				if _, err := fmt.Fprintf(w, "%4d  (unclaimed)\n", uint64(id)); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%4d  %-48s  %s\n", uint64(id), token.Description.WorkloadName, token.Description.Path); err != nil {
				return err
			}
		}
	}
	return nil
}
