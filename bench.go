package qbench

import (
	"context"
	"fmt"
)

// BenchOptions controls Benchmark.
type BenchOptions struct {
	// Rounds is the number of timed cold and cached runs each; at least MinimumDataPoints.
	Rounds int
	// Warmup runs are executed on the cached path before timing starts.
	Warmup int
	// Thresholds are the relative speedups of cached over cold runs to test.
	Thresholds []float64
	// Precision is the number of bootstrap repetitions; at least 1.
	Precision uint64
}

// DefaultBenchOptions returns the options used by the CLI.
func DefaultBenchOptions() BenchOptions {
	return BenchOptions{
		Rounds:     31,
		Warmup:     2,
		Thresholds: []float64{0.0, 0.1, 0.25, 0.5},
		Precision:  10_000,
	}
}

// BenchReport is the outcome of one Benchmark call.
type BenchReport struct {
	Params       string               `json:"params" yaml:"params"`
	OptLevel     int                  `json:"opt_level" yaml:"opt_level"`
	Path         string               `json:"path" yaml:"path"`
	Qubits       int                  `json:"qubits" yaml:"qubits"`
	Ops          int                  `json:"ops" yaml:"ops"`
	ActiveQubits uint32               `json:"active_qubits" yaml:"active_qubits"`
	Fingerprint  string               `json:"fingerprint" yaml:"fingerprint"`
	CompileNs    int64                `json:"compile_ns" yaml:"compile_ns"`
	PrecisionNs  int64                `json:"timer_precision_ns" yaml:"timer_precision_ns"`
	Cold         Summary              `json:"cold" yaml:"cold"`
	Cached       Summary              `json:"cached" yaml:"cached"`
	Speedup      []RTcomparisonResult `json:"cached_speedup" yaml:"cached_speedup"`
}

// Benchmark compiles params once and then alternates timed cold runs (Simulate) with timed
// cached runs (Run). The report holds a summary of each sample and the bootstrap confidence that
// cached runs are faster than cold runs by each of opts.Thresholds.
func Benchmark(ctx context.Context, o *Orchestrator, params Params, optLevel int, opts BenchOptions) (*BenchReport, error) {
	if opts.Rounds < int(MinimumDataPoints) {
		return nil, fmt.Errorf("%w: need at least %d rounds, got %d", ErrInvalidArgument, MinimumDataPoints, opts.Rounds)
	}
	if opts.Warmup < 0 {
		return nil, fmt.Errorf("%w: negative warmup %d", ErrInvalidArgument, opts.Warmup)
	}
	if opts.Precision == 0 {
		return nil, fmt.Errorf("%w: need at least one bootstrap repetition", ErrInvalidArgument)
	}
	c, err := build(params)
	if err != nil {
		return nil, err
	}
	fp, err := c.Fingerprint()
	if err != nil {
		return nil, err
	}

	compileNs, err := TimeCall(func() error { return o.Compile(ctx, params, optLevel) })
	if err != nil {
		return nil, err
	}
	compiled, ok := o.Lookup(params, optLevel)
	if !ok {
		return nil, fmt.Errorf("compiled %v vanished from cache", params)
	}

	for range opts.Warmup {
		if _, err := o.Run(ctx, params, optLevel); err != nil {
			return nil, err
		}
	}

	cold := make([]float64, 0, opts.Rounds)
	cached := make([]float64, 0, opts.Rounds)
	for round := range opts.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ns, err := TimeCall(func() error {
			_, err := o.Simulate(ctx, params, optLevel)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("cold round %d: %w", round, err)
		}
		cold = append(cold, float64(ns))

		ns, err = TimeCall(func() error {
			_, err := o.Run(ctx, params, optLevel)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("cached round %d: %w", round, err)
		}
		cached = append(cached, float64(ns))
	}

	speedup, err := CompareRuntimes(cached, cold, opts.Thresholds, opts.Precision)
	if err != nil {
		return nil, err
	}

	return &BenchReport{
		Params:       params.String(),
		OptLevel:     optLevel,
		Path:         compiled.Path.String(),
		Qubits:       c.NumQubits,
		Ops:          c.Len(),
		ActiveQubits: c.ActiveQubits(),
		Fingerprint:  fp,
		CompileNs:    compileNs,
		PrecisionNs:  GetSampleTimePrecision(),
		Cold:         Summarize(cold),
		Cached:       Summarize(cached),
		Speedup:      speedup,
	}, nil
}
