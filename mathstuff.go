package qbench

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes one runtime sample in nanoseconds.
type Summary struct {
	N      int     `json:"n" yaml:"n"`
	Mean   float64 `json:"mean_ns" yaml:"mean_ns"`
	StdDev float64 `json:"stddev_ns" yaml:"stddev_ns"`
	Median float64 `json:"median_ns" yaml:"median_ns"`
	P90    float64 `json:"p90_ns" yaml:"p90_ns"`
	Min    float64 `json:"min_ns" yaml:"min_ns"`
	Max    float64 `json:"max_ns" yaml:"max_ns"`
}

// Summarize computes the summary of data. The standard deviation is the unbiased sample estimate;
// it is zero for fewer than two values. data is not modified.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	s := Summary{
		N:      len(sorted),
		Median: Median(sorted),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) < 2 {
		s.Mean = sorted[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	return s
}

// Median returns the median of data, averaging the two middle values for even lengths.
// It returns 0 for empty data. data is not modified.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	dataCopy := slices.Clone(data)
	slices.Sort(dataCopy)

	l := len(dataCopy)
	if l%2 == 0 {
		return (dataCopy[l/2-1] + dataCopy[l/2]) / 2
	}
	return dataCopy[l/2]
}

// Partition rearranges xs around a pivot and returns its final index
func partition(xs []float64, low, high uint64) uint64 {
	pivot := xs[high]
	i := low
	for j := low; j < high; j++ {
		if xs[j] < pivot {
			xs[i], xs[j] = xs[j], xs[i]
			i++
		}
	}
	xs[i], xs[high] = xs[high], xs[i]
	return i
}

// Quickselect finds the k-th smallest element (0-based index) in expected O(n) time.
// see https://en.wikipedia.org/wiki/Quickselect
func quickselect(xs []float64, k uint64, rng *DPRNG) float64 {
	low, high := uint64(0), uint64(len(xs)-1)
	for low <= high {
		pivotIndex := rng.Uint64()%(high-low+1) + low
		xs[pivotIndex], xs[high] = xs[high], xs[pivotIndex] // move pivot to end
		p := partition(xs, low, high)
		if p == k {
			return xs[p]
		} else if p < k {
			low = p + 1
		} else {
			high = p - 1
		}
	}
	return xs[k] // fallback
}

// QuickMedian returns the median in expected O(n) time.
// In case of an even number of elements, it returns the higher of the two middle ones.
// It returns NaN for an empty slice.
// Note: This function modifies the input slice. To avoid this, pass a copy of the slice.
func QuickMedian(xs []float64) float64 {
	n := uint64(len(xs))
	if n == 0 {
		return math.NaN()
	}
	return quickselect(xs, n/2, NewDPRNG())
}
