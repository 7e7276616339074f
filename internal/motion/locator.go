package motion

import (
	"sort"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// refineWindow is how many indices around the binary-search hit are
// rescanned for a better bracketing pair.
const refineWindow = 5

// Bracket is the pair of samples surrounding a target time and the
// fractional progress between them.
type Bracket struct {
	Low      int
	High     int
	Progress float64
}

// Static reports whether the bracket refers to a single sample.
func (b Bracket) Static() bool { return b.Low == b.High }

// Locate finds the samples bracketing target, a time on the sample clock in
// milliseconds. Targets before the first or after the last sample clamp to
// the boundary pair with progress 0 or 1. A single sample yields a static
// bracket.
func Locate(samples []tracking.MouseSample, target float64) (Bracket, error) {
	n := len(samples)
	switch {
	case n == 0:
		return Bracket{}, tracking.ErrEmptySampleStore
	case n == 1:
		return Bracket{}, nil
	case target <= samples[0].Timestamp:
		return Bracket{Low: 0, High: 1, Progress: 0}, nil
	case target >= samples[n-1].Timestamp:
		return Bracket{Low: n - 2, High: n - 1, Progress: 1}, nil
	}

	// Closest sample at or before target.
	low := sort.Search(n, func(i int) bool { return samples[i].Timestamp > target }) - 1
	if low < 0 {
		low = 0
	}
	if low > n-2 {
		low = n - 2
	}

	// Sampling is irregular (polled moves interleave with hooked events) and
	// callers may hand in slices that are only roughly ordered. Prefer the
	// latest pair in the neighborhood that actually spans the target.
	from, to := max(0, low-refineWindow), min(n-2, low+refineWindow)
	for j := to; j >= from; j-- {
		a, b := samples[j].Timestamp, samples[j+1].Timestamp
		if b > a && a <= target && target <= b {
			low = j
			break
		}
	}

	high := low + 1
	return Bracket{Low: low, High: high, Progress: progress(samples[low].Timestamp, samples[high].Timestamp, target)}, nil
}

func progress(a, b, t float64) float64 {
	span := b - a
	if span <= 0 {
		return 0
	}
	return clamp01((t - a) / span)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
