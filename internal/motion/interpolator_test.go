package motion

import (
	"testing"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

func TestCubicBezierEndpoints(t *testing.T) {
	curves := []CubicBezier{CurveLinear, CurveEase, CurveEaseIn, CurveEaseOut, CurveEaseInOut}
	for _, p := range AllProfiles() {
		curves = append(curves, p.Curve)
	}
	for _, c := range curves {
		if got := c.Solve(0); got != 0 {
			t.Errorf("%+v.Solve(0) = %v, want 0", c, got)
		}
		if got := c.Solve(1); got != 1 {
			t.Errorf("%+v.Solve(1) = %v, want 1", c, got)
		}
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	curves := []CubicBezier{CurveLinear, CurveEase, CurveEaseIn, CurveEaseOut, CurveEaseInOut}
	for _, p := range AllProfiles() {
		curves = append(curves, p.Curve)
	}
	for _, c := range curves {
		prev := 0.0
		for i := 1; i <= 1000; i++ {
			y := c.Solve(float64(i) / 1000)
			if y < prev-1e-5 {
				t.Fatalf("%+v not monotonic at x=%v: %v < %v", c, float64(i)/1000, y, prev)
			}
			prev = y
		}
	}
}

func TestCubicBezierKnownValues(t *testing.T) {
	if got := CurveLinear.Solve(0.3); !approx(got, 0.3, 1e-6) {
		t.Errorf("linear Solve(0.3) = %v", got)
	}
	// CSS "ease" at the midpoint.
	if got := CurveEase.Solve(0.5); !approx(got, 0.8024, 1e-3) {
		t.Errorf("ease Solve(0.5) = %v, want ~0.8024", got)
	}
}

func TestProfilesStayInTunedRanges(t *testing.T) {
	for _, p := range AllProfiles() {
		if p.EffectStrength < 0.25 || p.EffectStrength > 0.9 {
			t.Errorf("EffectStrength %v outside [0.25,0.9]", p.EffectStrength)
		}
		if p.SpeedFactor < 1 || p.SpeedFactor > 1.5 {
			t.Errorf("SpeedFactor %v outside [1,1.5]", p.SpeedFactor)
		}
		if p.Ease(0) != 0 || p.Ease(1) != 1 {
			t.Errorf("profile %+v does not fix the endpoints", p)
		}
		prev := 0.0
		for i := 1; i <= 200; i++ {
			v := p.Ease(float64(i) / 200)
			if v < prev-1e-5 {
				t.Fatalf("profile %+v not monotonic at %d", p, i)
			}
			prev = v
		}
	}
}

func TestSelectProfileBuckets(t *testing.T) {
	far := SelectProfile(TransitionEase, 3, false)
	mid := SelectProfile(TransitionEase, 2, false)
	near := SelectProfile(TransitionEase, 1.2, false)
	if far == mid || mid == near {
		t.Error("distance buckets should select distinct profiles")
	}
	if SelectProfile(TransitionEase, 2.5, false) != mid {
		t.Error("d=2.5 belongs to the middle bucket")
	}
	if SelectProfile(TransitionEase, 1.2, true) == near {
		t.Error("click jumps should use the click profile")
	}
	if SelectProfile(TransitionType(99), 3, false) != far {
		t.Error("out-of-range transition types fall back to ease")
	}
}

func TestParseTransitionType(t *testing.T) {
	for _, name := range []string{"linear", "ease", "ease-in", "ease-out"} {
		tt, err := ParseTransitionType(name)
		if err != nil || tt.String() != name {
			t.Errorf("ParseTransitionType(%q) = %v, %v", name, tt, err)
		}
	}
	if _, err := ParseTransitionType("bounce"); err == nil {
		t.Error("expected error for unknown transition")
	}
}

func pair(x0, y0, x1, y1 float64) (tracking.MouseSample, tracking.MouseSample) {
	return tracking.MouseSample{X: x0, Y: y0, Timestamp: 0}, tracking.MouseSample{X: x1, Y: y1, Timestamp: 100}
}

func TestInterpolatorShortJumpIsLinear(t *testing.T) {
	in := NewInterpolator(TransitionEase)
	lo, hi := pair(0, 0, 10, 0)
	b, err := Locate([]tracking.MouseSample{lo, hi}, 50)
	if err != nil {
		t.Fatal(err)
	}
	got := in.Position(lo, hi, b.Progress)
	if got != (tracking.Point{X: 5, Y: 0}) {
		t.Errorf("Position = %v, want exactly (5,0)", got)
	}
	if _, eased := in.EasedProgress(lo, hi, 0.5); eased {
		t.Error("short jump should not use the eased transition")
	}
}

func TestInterpolatorLargeJumpIsEased(t *testing.T) {
	in := NewInterpolator(TransitionEase)
	lo, hi := pair(0, 0, 100, 0)
	b, err := Locate([]tracking.MouseSample{lo, hi}, 50)
	if err != nil {
		t.Fatal(err)
	}
	got := in.Position(lo, hi, b.Progress)
	if !(got.X > 0 && got.X < 100) || got.X == 50 {
		t.Errorf("Position.X = %v, want strictly inside (0,100) and not 50", got.X)
	}
	if _, eased := in.EasedProgress(lo, hi, 0.5); !eased {
		t.Error("100px jump should use the eased transition")
	}
}

func TestInterpolatorEndpoints(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 10, 5},
		{0.1, 0.2, 0.3, 0.7},
		{0, 0, 500, -300},
		{13.7, 91.1, 812.3, 4.9},
	}
	for _, kind := range []TransitionType{TransitionLinear, TransitionEase, TransitionEaseIn, TransitionEaseOut} {
		in := NewInterpolator(kind)
		for _, c := range cases {
			lo, hi := pair(c[0], c[1], c[2], c[3])
			if got := in.Position(lo, hi, 0); got != lo.Position() {
				t.Errorf("%v: Position(0) = %v, want %v", kind, got, lo.Position())
			}
			if got := in.Position(lo, hi, 1); got != hi.Position() {
				t.Errorf("%v: Position(1) = %v, want %v", kind, got, hi.Position())
			}
		}
	}
}

func TestInterpolatorDisplayScale(t *testing.T) {
	lo, hi := pair(0, 0, 60, 0)
	in := NewInterpolator(TransitionEase)
	if _, eased := in.EasedProgress(lo, hi, 0.5); eased {
		t.Error("60 recording px at scale 1 is below the threshold")
	}
	in.ScaleX, in.ScaleY = 2, 2
	if _, eased := in.EasedProgress(lo, hi, 0.5); !eased {
		t.Error("60 recording px at scale 2 is 120 display px, above the threshold")
	}
}

func TestInterpolatorClickProfile(t *testing.T) {
	in := NewInterpolator(TransitionEase)
	lo, hi := pair(0, 0, 100, 0)
	plain := in.Position(lo, hi, 0.5)
	hi.Event = tracking.EventDown
	click := in.Position(lo, hi, 0.5)
	if plain == click {
		t.Error("a click-spanning pair should use a different profile")
	}
	if !(click.X > 0 && click.X < 100) {
		t.Errorf("click Position.X = %v", click.X)
	}
}
