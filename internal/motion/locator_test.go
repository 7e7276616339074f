package motion

import (
	"errors"
	"math"
	"testing"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func samplesAt(ts ...float64) []tracking.MouseSample {
	out := make([]tracking.MouseSample, len(ts))
	for i, t := range ts {
		out[i] = tracking.MouseSample{X: float64(i) * 10, Timestamp: t}
	}
	return out
}

func TestLocateEmpty(t *testing.T) {
	_, err := Locate(nil, 10)
	if !errors.Is(err, tracking.ErrEmptySampleStore) {
		t.Fatalf("Locate(nil) err = %v, want ErrEmptySampleStore", err)
	}
}

func TestLocateSingle(t *testing.T) {
	b, err := Locate(samplesAt(50), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Static() || b.Low != 0 {
		t.Errorf("Locate(single) = %+v, want static bracket", b)
	}
}

func TestLocateClamps(t *testing.T) {
	s := samplesAt(100, 120, 150, 200)
	tests := []struct {
		target float64
		want   Bracket
	}{
		{-50, Bracket{0, 1, 0}},
		{0, Bracket{0, 1, 0}},
		{100, Bracket{0, 1, 0}},
		{200, Bracket{2, 3, 1}},
		{1e9, Bracket{2, 3, 1}},
	}
	for _, tt := range tests {
		got, err := Locate(s, tt.target)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Locate(%v) = %+v, want %+v", tt.target, got, tt.want)
		}
	}
}

func TestLocateInterior(t *testing.T) {
	s := samplesAt(0, 16, 33, 50, 100, 101, 180)
	tests := []struct {
		target   float64
		low      int
		progress float64
	}{
		{8, 0, 0.5},
		{16, 1, 0},
		{40, 2, 7.0 / 17.0},
		{75, 3, 0.5},
		{100.5, 4, 0.5},
		{140, 5, 39.0 / 79.0},
	}
	for _, tt := range tests {
		got, err := Locate(s, tt.target)
		if err != nil {
			t.Fatal(err)
		}
		if got.Low != tt.low || got.High != tt.low+1 || !approx(got.Progress, tt.progress, 1e-12) {
			t.Errorf("Locate(%v) = %+v, want low %d progress %v", tt.target, got, tt.low, tt.progress)
		}
	}
}

func TestLocateDuplicateTimestamps(t *testing.T) {
	s := samplesAt(0, 10, 10, 10, 20)
	got, err := Locate(s, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got.Low != 3 || got.High != 4 || got.Progress != 0 {
		t.Errorf("Locate(10) = %+v, want pair (3,4) at 0", got)
	}
}

func TestLocateRefinesRoughOrder(t *testing.T) {
	// A late event recorded slightly out of order near the target.
	s := samplesAt(0, 10, 20, 35, 30, 40, 50)
	got, err := Locate(s, 37)
	if err != nil {
		t.Fatal(err)
	}
	a, b := s[got.Low].Timestamp, s[got.High].Timestamp
	if !(a <= 37 && 37 <= b) {
		t.Errorf("Locate(37) = %+v spans [%v,%v], want a span containing 37", got, a, b)
	}
	if got.Progress < 0 || got.Progress > 1 {
		t.Errorf("progress %v outside [0,1]", got.Progress)
	}
}

func TestLocateProgressInRange(t *testing.T) {
	s := samplesAt(0, 3, 17, 18, 40, 41, 90, 200)
	for target := -10.0; target < 220; target += 0.5 {
		b, err := Locate(s, target)
		if err != nil {
			t.Fatal(err)
		}
		if b.Progress < 0 || b.Progress > 1 || b.High != b.Low+1 {
			t.Fatalf("Locate(%v) = %+v", target, b)
		}
	}
}
