package qbench

import (
	"fmt"
	"math"
	"slices"
)

// RTcomparisonResult holds the confidence that runtime sample A is faster than sample B
// by at least RelativeSpeedupSampleAvsSampleB.
type RTcomparisonResult struct {
	RelativeSpeedupSampleAvsSampleB float64 `json:"relative_speedup" yaml:"relative_speedup"`
	Confidence                      float64 `json:"confidence" yaml:"confidence"`
}

// MinimumDataPoints is the smallest sample CompareRuntimes accepts.
const MinimumDataPoints uint64 = 11

// CompareRuntimes computes the confidence that runtimes in sampleA (e.g. nanoseconds) are
// lower than those in sampleB by at least each of relativeSpeedupsToTest, using precisionLevel
// bootstrap repetitions with a random seed. Without thresholds 0.0 is tested. Results are
// ordered by ascending speedup; the caller's slice is not modified.
func CompareRuntimes(sampleA, sampleB []float64, relativeSpeedupsToTest []float64, precisionLevel uint64) ([]RTcomparisonResult, error) {
	if uint64(len(sampleA)) < MinimumDataPoints || uint64(len(sampleB)) < MinimumDataPoints {
		return []RTcomparisonResult{}, fmt.Errorf("%w: need at least %d runtimes in each sample, got %d and %d",
			ErrInvalidArgument, MinimumDataPoints, len(sampleA), len(sampleB))
	}
	thresholds := slices.Clone(relativeSpeedupsToTest)
	if len(thresholds) == 0 {
		thresholds = []float64{0.0}
	}
	slices.Sort(thresholds)

	conf := confidences(sampleA, sampleB, thresholds, precisionLevel, NewDPRNG())
	result := make([]RTcomparisonResult, len(thresholds))
	for i, t := range thresholds {
		result[i] = RTcomparisonResult{RelativeSpeedupSampleAvsSampleB: t, Confidence: conf[i]}
	}
	return result, nil
}

// BootstrapConfidence estimates, for each threshold, the probability that A is faster than B by
// at least that relative amount. Each of the reps replicates resamples A and B with replacement
// and evaluates
//
//	delta = 1 - median(A_sample)/median(B_sample)
//
// reps == 0 maps every threshold to NaN. A seed of 0 selects a random seed.
func BootstrapConfidence(A, B []float64, thresholds []float64, reps uint64, prngSeed uint64) map[float64]float64 {
	conf := confidences(A, B, thresholds, reps, NewDPRNG(prngSeed))
	out := make(map[float64]float64, len(thresholds))
	for i, t := range thresholds {
		out[t] = conf[i]
	}
	return out
}

// confidences returns the share of replicates meeting thresholds[i] at index i.
func confidences(A, B []float64, thresholds []float64, reps uint64, rng *DPRNG) []float64 {
	conf := make([]float64, len(thresholds))
	if reps == 0 {
		for i := range conf {
			conf[i] = math.NaN()
		}
		return conf
	}

	hits := make([]uint64, len(thresholds))
	for range reps {
		delta := relativeSpeedup(QuickMedian(bootstrapSample(A, rng)), QuickMedian(bootstrapSample(B, rng)))
		for i, t := range thresholds {
			if delta >= t {
				hits[i]++
			}
		}
	}
	for i, h := range hits {
		conf[i] = float64(h) / float64(reps)
	}
	return conf
}

// relativeSpeedup returns 1 - medA/medB.
// NaN medians (empty samples) give NaN, which meets no threshold. Equal medians, including
// infinities of the same sign, give 0. A zero or tiny medB is replaced by a scale-aware
// epsilon so the result stays ordered.
func relativeSpeedup(medA, medB float64) float64 {
	switch {
	case math.IsNaN(medA) || math.IsNaN(medB):
		return math.NaN()
	case medA == medB:
		return 0
	}
	eps := math.Max(math.Abs(medB)*1e-12, math.SmallestNonzeroFloat64)
	denom := medB
	if math.Abs(medB) < eps {
		denom = eps
	}
	return 1 - medA/denom
}

// bootstrapSample returns a sample of len(xs) values drawn from xs with replacement.
func bootstrapSample(xs []float64, rng *DPRNG) []float64 {
	sample := make([]float64, len(xs))
	n := uint32(len(xs))
	for i := range sample {
		sample[i] = xs[rng.UInt32N(n)]
	}
	return sample
}
