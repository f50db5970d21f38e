package testbench

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Number is any integer or float sample.
type Number interface {
	constraints.Integer | constraints.Float
}

// Summary is the spread of a set of samples: the average of the bottom 5%,
// the median and the average of the top 5%.
type Summary struct {
	Low    float64
	Median float64
	High   float64
}

// Summarize computes the Summary of samples. It does not modify samples.
func Summarize[N Number](samples []N) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return Summary{
		Low:    averageOfRange(sorted, 0.0, 0.05),
		Median: median(sorted),
		High:   averageOfRange(sorted, 0.95, 1.0),
	}
}

// averageOfRange returns the average of sorted in [startFrac, endFrac] of its length.
// E.g. averageOfRange(vals, 0, 0.05) is the average of the bottom 5%.
func averageOfRange[N Number](sorted []N, startFrac, endFrac float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	startIndex := max(int(float64(n)*startFrac), 0)
	endIndex := min(int(float64(n)*endFrac), n)
	if startIndex >= endIndex {
		// fallback to median if 5% slice is too small
		return median(sorted)
	}
	var sum float64
	for _, v := range sorted[startIndex:endIndex] {
		sum += float64(v)
	}
	return sum / float64(endIndex-startIndex)
}

func median[N Number](sorted []N) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return float64(sorted[mid])
	}
	return 0.5 * (float64(sorted[mid-1]) + float64(sorted[mid]))
}

// NsPerOp divides an elapsed time in nanoseconds by an operation count.
func NsPerOp[N Number](elapsedNs int64, ops N) float64 {
	if ops == 0 {
		return 0
	}
	return float64(elapsedNs) / float64(ops)
}
