package qbench

import (
	"math"
	"math/rand"
	"slices"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantSample(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestCompareRuntimesTooFewData(t *testing.T) {
	_, err := CompareRuntimes(make([]float64, 10), make([]float64, 11), []float64{0.1}, 1000)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CompareRuntimes(make([]float64, 11), make([]float64, 3), []float64{0.1}, 1000)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCompareRuntimesDefaultThreshold(t *testing.T) {
	results, err := CompareRuntimes(constantSample(11, 100), constantSample(11, 120), nil, 1000)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].RelativeSpeedupSampleAvsSampleB)
	assert.Equal(t, 1.0, results[0].Confidence)
}

func TestCompareRuntimesSortsWithoutMutating(t *testing.T) {
	// every replicate sees medians 100 and 120, a speedup of 1/6
	thresholds := []float64{0.25, 0.0, 0.1}
	results, err := CompareRuntimes(constantSample(15, 100), constantSample(15, 120), thresholds, 500)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.25, 0.0, 0.1}, thresholds)
	assert.Equal(t, []RTcomparisonResult{
		{RelativeSpeedupSampleAvsSampleB: 0.0, Confidence: 1},
		{RelativeSpeedupSampleAvsSampleB: 0.1, Confidence: 1},
		{RelativeSpeedupSampleAvsSampleB: 0.25, Confidence: 0},
	}, results)
}

func TestCompareRuntimesConfidenceMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	A := make([]float64, 31)
	B := make([]float64, 31)
	for i := range A {
		A[i] = 100 + rng.NormFloat64()*5
		B[i] = 130 + rng.NormFloat64()*5
	}
	results, err := CompareRuntimes(A, B, []float64{0.4, 0.3, 0.2, 0.1}, 2000)
	require.NoError(t, err)
	for i, r := range results {
		assert.GreaterOrEqual(t, r.Confidence, 0.0)
		assert.LessOrEqual(t, r.Confidence, 1.0)
		if i > 0 && r.Confidence > results[i-1].Confidence {
			t.Errorf("Confidence not decreasing: %.3f > %.3f", r.Confidence, results[i-1].Confidence)
		}
	}
}

func TestBootstrapSampleBasic(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	orig := slices.Clone(xs)
	sample := bootstrapSample(xs, NewDPRNG(3))

	assert.Len(t, sample, len(xs))
	for _, v := range sample {
		assert.Contains(t, xs, v)
	}
	assert.Equal(t, orig, xs)
}

func TestBootstrapSampleDeterministic(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50, 60, 70}
	assert.Equal(t, bootstrapSample(xs, NewDPRNG(42)), bootstrapSample(xs, NewDPRNG(42)))
}

func TestBootstrapSampleEdgeCases(t *testing.T) {
	assert.Empty(t, bootstrapSample(nil, NewDPRNG(1)))
	assert.Equal(t, []float64{42}, bootstrapSample([]float64{42}, NewDPRNG(1)))
}

func TestBootstrapSampleDistribution(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	counts := map[float64]int{}
	n := 100_000
	rng := NewDPRNG(0xABCDEF)
	for range n {
		for _, v := range bootstrapSample(xs, rng) {
			counts[v]++
		}
	}
	expected := float64(n)
	for _, x := range xs {
		if rel := math.Abs(float64(counts[x])-expected) / expected; rel > 0.02 {
			t.Errorf("value %v drawn %d times, expected about %.0f", x, counts[x], expected)
		}
	}
}

func TestBootstrapConfidenceDeterministic(t *testing.T) {
	A := []float64{100, 101, 99, 98, 102}
	B := []float64{120, 118, 122, 119, 121}
	thresholds := []float64{0.1, 0.2}

	conf1 := BootstrapConfidence(A, B, thresholds, 1000, 42)
	conf2 := BootstrapConfidence(A, B, thresholds, 1000, 42)
	assert.Equal(t, conf1, conf2)
}

func TestBootstrapConfidenceHighAndLow(t *testing.T) {
	A := []float64{100, 101, 99, 98, 102}
	B := []float64{150, 160, 155, 158, 152}
	conf := BootstrapConfidence(A, B, []float64{0.3}, 1000, 123)
	assert.GreaterOrEqual(t, conf[0.3], 0.95)

	conf = BootstrapConfidence(A, A, []float64{0.1}, 1000, 456)
	assert.LessOrEqual(t, conf[0.1], 0.2)
}

func TestBootstrapConfidenceRange(t *testing.T) {
	thresholds := []float64{-0.5, 0.0, 0.1, 0.5, 0.9}
	prop := func(A, B []float64, seed uint64) bool {
		conf := BootstrapConfidence(A, B, thresholds, 50, seed)
		for _, threshold := range thresholds {
			v := conf[threshold]
			if v < 0.0 || v > 1.0 || math.IsNaN(v) {
				t.Logf("Invalid confidence value: %.4f for threshold %.2f", v, threshold)
				return false
			}
		}
		return true
	}
	if err := quick.Check(prop, &quick.Config{MaxCount: 2_000, Rand: rand.New(rand.NewSource(99))}); err != nil {
		t.Error(err)
	}
}

func TestBootstrapConfidence_RepsZero(t *testing.T) {
	thresholds := []float64{0.0, 0.1, 0.5}
	conf := BootstrapConfidence([]float64{1, 2, 3}, []float64{1, 2, 3}, thresholds, 0, 42)
	for _, th := range thresholds {
		v, ok := conf[th]
		require.True(t, ok, "missing threshold %v", th)
		assert.True(t, math.IsNaN(v), "expected NaN for threshold %v when reps==0, got %v", th, v)
	}
}

func TestBootstrapConfidence_EdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		A, B       []float64
		thresholds []float64
		want       map[float64]float64
	}{
		{"empty samples", nil, nil, []float64{0.0}, map[float64]float64{0.0: 0.0}},
		{"both zero medians", []float64{0, 0, 0}, []float64{0, 0, 0}, []float64{0.0, 0.1}, map[float64]float64{0.0: 1.0, 0.1: 0.0}},
		{"equal medians", []float64{5, 5, 5}, []float64{5, 5, 5}, []float64{0.0, 0.1}, map[float64]float64{0.0: 1.0, 0.1: 0.0}},
		{"both -Inf", []float64{math.Inf(-1)}, []float64{math.Inf(-1)}, []float64{0.0}, map[float64]float64{0.0: 1.0}},
		{"both +Inf", []float64{math.Inf(1)}, []float64{math.Inf(1)}, []float64{0.0}, map[float64]float64{0.0: 1.0}},
		{"zero median of B", []float64{1.0}, []float64{0.0}, []float64{0.0}, map[float64]float64{0.0: 0.0}},
		{"slower A", constantSample(5, 103), constantSample(5, 100), []float64{-0.05, 0.0, 0.01}, map[float64]float64{-0.05: 1.0, 0.0: 0.0, 0.01: 0.0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conf := BootstrapConfidence(tc.A, tc.B, tc.thresholds, 10, 42)
			assert.Equal(t, tc.want, conf)
		})
	}
}

func TestRelativeSpeedup(t *testing.T) {
	assert.InDelta(t, 0.2, relativeSpeedup(80, 100), 1e-12)
	assert.InDelta(t, -0.25, relativeSpeedup(125, 100), 1e-12)
	assert.Equal(t, 0.0, relativeSpeedup(math.Inf(1), math.Inf(1)))
	assert.True(t, math.IsNaN(relativeSpeedup(math.NaN(), 1)))
	assert.True(t, math.IsInf(relativeSpeedup(1, 0), -1))
}
