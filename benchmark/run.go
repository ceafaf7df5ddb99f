package benchmark

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/report"
	"github.com/cipherbench/go-harness/timing"
	"github.com/cipherbench/go-harness/workload"
)

// dumpElements caps how many elements a validation failure dump shows.
const dumpElements = 16

// ValidationFailedError reports a provider result that disagrees with the
// locally computed ground truth.
type ValidationFailedError struct {
	Operand int
	Sample  uint64
	Element int
	// Dump holds the leading expected and actual elements as CSV columns.
	Dump string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("result validation failed: output operand %d, sample %d, element %d differs from ground truth", e.Operand, e.Sample, e.Element)
}

// Benchmark is a matched, runnable benchmark: the lifecycle state machine
// together with the generated dataset and the category run loop.
type Benchmark struct {
	PartialBenchmark
	dataset Dataset
}

// New assembles a runnable benchmark from a token minted by the owning
// family and the dataset generated for it. The returned benchmark is in
// the DescriptorBound state, awaiting InitBackend and PostInit.
func New(s Session, d *PartialDescription, token *Token, dataset Dataset) (*Benchmark, error) {
	if dataset == nil {
		return nil, fmt.Errorf("benchmark requires a dataset")
	}
	b := &Benchmark{dataset: dataset}
	if err := b.Bind(s, token, d.key); err != nil {
		return nil, err
	}
	return b, nil
}

// Dataset returns the dataset the benchmark operates on.
func (b *Benchmark) Dataset() Dataset { return b.dataset }

// Run executes the category loop of the bound descriptor, recording one
// timing event per provider operation into rep.
func (b *Benchmark) Run(rep *timing.Report) error {
	if err := b.checkReady(); err != nil {
		return err
	}
	switch b.desc.Category {
	case workload.Latency:
		return b.runLatency(rep)
	case workload.Offline:
		return b.runOffline(rep)
	}
	return fmt.Errorf("unsupported benchmark category: %s", b.desc.Category)
}

// singleSampleInputs packs the first sample of every input operand.
func (b *Benchmark) singleSampleInputs() ([]provider.DataPack, error) {
	packs := make([]provider.DataPack, b.dataset.InputOperands())
	for op := range packs {
		buf, err := b.dataset.InputSample(op, 0)
		if err != nil {
			return nil, err
		}
		packs[op] = provider.DataPack{Operand: op, Samples: [][]byte{buf}}
	}
	return packs, nil
}

// fullInputs packs every sample of every input operand.
func (b *Benchmark) fullInputs() ([]provider.DataPack, error) {
	packs := make([]provider.DataPack, b.dataset.InputOperands())
	for op := range packs {
		samples, err := b.dataset.InputPack(op)
		if err != nil {
			return nil, err
		}
		packs[op] = provider.DataPack{Operand: op, Samples: samples}
	}
	return packs, nil
}

func (b *Benchmark) runLatency(rep *timing.Report) error {
	lat := b.desc.CatParams.Latency
	minTime := time.Duration(lat.MinTestTimeMS) * time.Millisecond
	if minTime == 0 {
		minTime = time.Duration(b.cfg.DefaultMinTestTimeMS) * time.Millisecond
	}
	inputs, err := b.singleSampleInputs()
	if err != nil {
		return err
	}

	klog.InfoS("running latency warmup", "iterations", lat.WarmupIterations)
	for i := uint64(0); i < lat.WarmupIterations; i++ {
		if _, err := b.handle.Operate(inputs); err != nil {
			return errors.Wrap(err, "latency warmup operation")
		}
	}

	klog.InfoS("running latency test", "minTestTime", minTime)
	var (
		timer     timing.Timer
		elapsed   time.Duration
		validated bool
	)
	for iterations := uint64(0); iterations == 0 || elapsed < minTime; iterations++ {
		timer.Start()
		outputs, err := b.handle.Operate(inputs)
		event := timer.Stop(b.nextEventID(), 1, "Operation")
		if err != nil {
			return errors.Wrap(err, "latency operation")
		}
		rep.AddEvent(event)
		elapsed += event.WallTime

		if !validated {
			if err := b.checkOutputShape(outputs, 1); err != nil {
				return err
			}
			if err := b.validateSample(outputs, 0, 0); err != nil {
				return err
			}
			validated = true
		}
	}
	return nil
}

func (b *Benchmark) runOffline(rep *timing.Report) error {
	plan := b.dataset.Plan()
	inputs, err := b.fullInputs()
	if err != nil {
		return err
	}

	klog.InfoS("running offline operation", "resultSamples", plan.OutputCount())
	var timer timing.Timer
	timer.Start()
	outputs, err := b.handle.Operate(inputs)
	event := timer.Stop(b.nextEventID(), plan.OutputCount(), "Operation")
	if err != nil {
		return errors.Wrap(err, "offline operation")
	}
	rep.AddEvent(event)

	if err := b.checkOutputShape(outputs, plan.OutputCount()); err != nil {
		return err
	}
	return b.validateAll(outputs)
}

// checkOutputShape verifies the provider returned one pack per output
// operand, in operand order, each with the expected sample count.
func (b *Benchmark) checkOutputShape(outputs []provider.DataPack, samples uint64) error {
	name := b.session.Provider().Name()
	if len(outputs) != b.dataset.OutputOperands() {
		return &provider.ProtocolError{
			Provider: name,
			Reason:   fmt.Sprintf("operation returned %d output operands, expected %d", len(outputs), b.dataset.OutputOperands()),
		}
	}
	for i, pack := range outputs {
		if pack.Operand != i {
			return &provider.ProtocolError{
				Provider: name,
				Reason:   fmt.Sprintf("output pack %d is labeled operand %d", i, pack.Operand),
			}
		}
		if uint64(len(pack.Samples)) != samples {
			return &provider.ProtocolError{
				Provider: name,
				Reason:   fmt.Sprintf("output operand %d carries %d samples, expected %d", i, len(pack.Samples), samples),
			}
		}
	}
	return nil
}

// validateAll checks every result sample of an offline batch against the
// ground truth, walking the full cross product of input sample indices.
func (b *Benchmark) validateAll(outputs []provider.DataPack) error {
	if !b.cfg.ValidateResults {
		return nil
	}
	plan := b.dataset.Plan()
	comb := make([]uint64, plan.Operands())
	for {
		index, err := plan.ResultIndex(comb)
		if err != nil {
			return err
		}
		if err := b.validateSample(outputs, index, index); err != nil {
			return err
		}

		i := plan.Operands() - 1
		for ; i >= 0; i-- {
			comb[i]++
			if comb[i] < plan.InputCount(i) {
				break
			}
			comb[i] = 0
		}
		if i < 0 {
			return nil
		}
	}
}

// validateSample compares the provider result held at packSample in every
// output pack against the ground truth result sample at index.
func (b *Benchmark) validateSample(outputs []provider.DataPack, packSample, index uint64) error {
	if !b.cfg.ValidateResults {
		return nil
	}
	for op := 0; op < b.dataset.OutputOperands(); op++ {
		want, err := b.dataset.OutputSample(op, index)
		if err != nil {
			return err
		}
		got := outputs[op].Samples[packSample]
		element, err := datagen.CompareBuffers(b.dataset.DataType(), want, got, b.cfg.Tolerance)
		if err != nil {
			return err
		}
		if element >= 0 {
			return &ValidationFailedError{
				Operand: op,
				Sample:  index,
				Element: element,
				Dump:    dumpBuffers(b.dataset.DataType(), want, got),
			}
		}
	}
	return nil
}

// dumpBuffers renders the leading elements of the expected and actual
// buffers side by side for failure logs.
func dumpBuffers(t workload.DataType, want, got []byte) string {
	limit := dumpElements * int(t.Size())
	if len(want) > limit {
		want = want[:limit]
	}
	if len(got) > limit {
		got = got[:limit]
	}
	var sb strings.Builder
	sb.WriteString("index,expected,actual\n")
	if err := report.PrintColumns(&sb, t, [][]byte{want, got}, true, ","); err != nil {
		return ""
	}
	return sb.String()
}
