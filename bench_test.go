package qbench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmark(t *testing.T) {
	o, preferred, _ := newTestOrchestrator()
	params := RandomParams{N: 3, Depth: 12, Seed: 42}
	opts := DefaultBenchOptions()
	opts.Rounds = 11
	opts.Warmup = 1
	opts.Precision = 200

	report, err := Benchmark(context.Background(), o, params, 1, opts)
	require.NoError(t, err)

	assert.Equal(t, params.String(), report.Params)
	assert.Equal(t, "preferred", report.Path)
	assert.Equal(t, 3, report.Qubits)
	assert.Equal(t, 12, report.Ops)
	assert.Len(t, report.Fingerprint, 64)
	assert.Equal(t, 11, report.Cold.N)
	assert.Equal(t, 11, report.Cached.N)
	require.Len(t, report.Speedup, len(opts.Thresholds))
	for _, r := range report.Speedup {
		assert.GreaterOrEqual(t, r.Confidence, 0.0)
		assert.LessOrEqual(t, r.Confidence, 1.0)
	}

	// one compile for the cache, one per cold round
	assert.Equal(t, int32(1+11), preferred.compiles.Load())
	// warmup, cold and cached rounds
	assert.Equal(t, int32(1+11+11), preferred.executes.Load())
}

func TestBenchmark_Errors(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	opts := DefaultBenchOptions()

	for _, rounds := range []int{5, 0, -1} {
		opts.Rounds = rounds
		_, err := Benchmark(context.Background(), o, RandomParams{N: 2, Depth: 2}, 1, opts)
		assert.ErrorIs(t, err, ErrInvalidArgument, "rounds=%d", rounds)
	}

	opts = DefaultBenchOptions()
	opts.Precision = 0
	_, err := Benchmark(context.Background(), o, RandomParams{N: 2, Depth: 2}, 1, opts)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	opts = DefaultBenchOptions()
	opts.Warmup = -1
	_, err = Benchmark(context.Background(), o, RandomParams{N: 2, Depth: 2}, 1, opts)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	opts = DefaultBenchOptions()
	_, err = Benchmark(context.Background(), o, SingleGateParams{N: 2, Gate: "T"}, 1, opts)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Benchmark(ctx, o, RandomParams{N: 2, Depth: 2}, 1, opts)
	assert.ErrorIs(t, err, context.Canceled)
}
