package tracking

import "sort"

// SampleStore is an immutable, timestamp-ordered sequence of samples.
type SampleStore struct {
	samples []MouseSample
}

// NewSampleStore copies samples and orders them by timestamp. The sort is
// stable so samples sharing a timestamp keep their capture order (a polled
// move and a hooked click often land on the same millisecond).
func NewSampleStore(samples []MouseSample) *SampleStore {
	s := make([]MouseSample, len(samples))
	copy(s, samples)
	if !sort.SliceIsSorted(s, func(i, j int) bool { return s[i].Timestamp < s[j].Timestamp }) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Timestamp < s[j].Timestamp })
	}
	return &SampleStore{samples: s}
}

func (s *SampleStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.samples)
}

// At returns the i-th sample.
func (s *SampleStore) At(i int) MouseSample {
	return s.samples[i]
}

// Samples exposes the ordered samples. Callers must not modify the slice.
func (s *SampleStore) Samples() []MouseSample {
	if s == nil {
		return nil
	}
	return s.samples
}

// Span returns the first and last timestamps. ok is false for an empty store.
func (s *SampleStore) Span() (first, last float64, ok bool) {
	if s.Len() == 0 {
		return 0, 0, false
	}
	return s.samples[0].Timestamp, s.samples[len(s.samples)-1].Timestamp, true
}

// UpperBound returns the number of samples with a timestamp <= t.
func (s *SampleStore) UpperBound(t float64) int {
	return sort.Search(s.Len(), func(i int) bool { return s.samples[i].Timestamp > t })
}
