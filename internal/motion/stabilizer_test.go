package motion

import (
	"testing"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

const frame = 16 * time.Millisecond

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestStabilizeHeldPositionSnaps(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	raw := tracking.Point{X: 412.5, Y: 87.25}

	for i := 0; i < 10; i++ {
		k := s.Stabilize(raw, clock.Now(), cfg)
		if k.Position != raw {
			t.Fatalf("frame %d: Position = %v, want %v", i+1, k.Position, raw)
		}
		clock.Advance(frame)
	}
}

func TestStabilizeConverges(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)

	var raw tracking.Point
	var holdStart time.Time
	for i := 0; i <= 20; i++ {
		raw = tracking.Point{X: float64(i) * 10, Y: float64(i) * 3}
		holdStart = clock.Now()
		s.Stabilize(raw, clock.Now(), cfg)
		clock.Advance(frame)
	}

	checked := false
	var k Kinematics
	for i := 0; i < 60; i++ {
		k = s.Stabilize(raw, clock.Now(), cfg)
		if clock.Now().Sub(holdStart) > cfg.FreezeTimeout {
			if k.Position != raw {
				t.Fatalf("held %v: Position = %v, want %v", clock.Now().Sub(holdStart), k.Position, raw)
			}
			checked = true
		}
		clock.Advance(frame)
	}
	if !checked {
		t.Fatal("hold never passed the freeze timeout")
	}
	if k.Moving {
		t.Error("held cursor should not report movement")
	}
}

func TestStabilizeLandsOnRawRightAfterFreezeTimeout(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)

	var raw tracking.Point
	for i := 0; i <= 20; i++ {
		raw = tracking.Point{X: float64(i) * 10, Y: float64(i) * 3}
		s.Stabilize(raw, clock.Now(), cfg)
		clock.Advance(frame)
	}
	holdStart := clock.Now().Add(-frame)

	// 19 frames of 16ms put the hold at 304ms.
	var k Kinematics
	for i := 0; i < 19; i++ {
		k = s.Stabilize(raw, clock.Now(), cfg)
		clock.Advance(frame)
	}
	if held := clock.Now().Add(-frame).Sub(holdStart); held <= cfg.FreezeTimeout {
		t.Fatalf("hold is %v, want just over %v", held, cfg.FreezeTimeout)
	}
	if k.Position != raw {
		t.Errorf("Position = %v, want %v", k.Position, raw)
	}
}

func TestStabilizeTracksMotionWithoutLargeLag(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)

	prevX := -1.0
	for i := 0; i < 30; i++ {
		raw := tracking.Point{X: float64(i) * 10}
		k := s.Stabilize(raw, clock.Now(), cfg)
		if k.Position.X < prevX {
			t.Fatalf("frame %d: stabilized X went backwards: %v < %v", i, k.Position.X, prevX)
		}
		prevX = k.Position.X
		if i >= 10 {
			lag := raw.X - k.Position.X
			if lag < 0 || lag > 15 {
				t.Errorf("frame %d: lag %v outside [0,15]", i, lag)
			}
			if !k.Moving {
				t.Errorf("frame %d: expected Moving", i)
			}
			if k.Direction.X < 0.99 {
				t.Errorf("frame %d: Direction = %v, want +X", i, k.Direction)
			}
		}
		clock.Advance(frame)
	}
}

func TestStabilizeDeadZoneSuppressesJitter(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	base := tracking.Point{X: 100, Y: 100}
	s.Stabilize(base, clock.Now(), cfg)

	jitter := []tracking.Point{{X: 0.3}, {Y: -0.4}, {X: -0.2, Y: 0.2}, {X: 0.4}}
	for i, j := range jitter {
		clock.Advance(frame)
		k := s.Stabilize(base.Add(j), clock.Now(), cfg)
		if k.Position != base {
			t.Errorf("jitter %d: Position = %v, want %v", i, k.Position, base)
		}
	}
}

func TestStabilizeFreezeEscape(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	s.Stabilize(tracking.Point{}, clock.Now(), cfg)

	target := tracking.Point{X: 0.5}
	var k Kinematics
	for i := 0; i < 25; i++ {
		clock.Advance(frame)
		k = s.Stabilize(target, clock.Now(), cfg)
	}
	if k.Position != target {
		t.Errorf("after 400ms in the dead-zone Position = %v, want %v", k.Position, target)
	}
}

func TestStabilizeHistoryBounded(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	for i := 0; i < 50; i++ {
		s.Stabilize(tracking.Point{X: float64(i * i), Y: float64(i)}, clock.Now(), cfg)
		clock.Advance(frame)
	}
	p, sp, a := s.HistoryLen()
	if p > 8 || sp > 5 || a > 8 {
		t.Errorf("history sizes %d/%d/%d exceed 8/5/8", p, sp, a)
	}
	if p != 8 || sp != 5 {
		t.Errorf("history sizes %d/%d, want full buffers", p, sp)
	}
}

func TestStabilizeAccelerationIgnoresGaps(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	s.Stabilize(tracking.Point{}, clock.Now(), cfg)

	clock.Advance(frame)
	k := s.Stabilize(tracking.Point{X: 40}, clock.Now(), cfg)
	if k.Acceleration <= 0 {
		t.Fatalf("speeding up should give positive acceleration, got %v", k.Acceleration)
	}
	before := k.Acceleration

	// A 500ms gap (seek-like) must not produce an acceleration sample.
	clock.Advance(500 * time.Millisecond)
	k = s.Stabilize(tracking.Point{X: 400}, clock.Now(), cfg)
	if k.Acceleration != before {
		t.Errorf("acceleration changed across a 500ms gap: %v -> %v", before, k.Acceleration)
	}

	// Zero elapsed time is ignored too.
	k = s.Stabilize(tracking.Point{X: 450}, clock.Now(), cfg)
	if k.Acceleration != before {
		t.Errorf("acceleration changed with no elapsed time: %v -> %v", before, k.Acceleration)
	}
}

func TestStabilizeReversalBlendsDirection(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	for i := 0; i < 10; i++ {
		s.Stabilize(tracking.Point{X: float64(i) * 20}, clock.Now(), cfg)
		clock.Advance(frame)
	}
	// Jump far back so the new heading is clearly reversed.
	k := s.Stabilize(tracking.Point{X: -400}, clock.Now(), cfg)
	if k.Direction.X >= 0 {
		t.Errorf("Direction after reversal = %v, want -X", k.Direction)
	}
	if l := k.Direction.Length(); !approx(l, 1, 1e-9) {
		t.Errorf("Direction length = %v, want 1", l)
	}
}

func TestStabilizeReset(t *testing.T) {
	s := NewStabilizationState()
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	for i := 0; i < 10; i++ {
		s.Stabilize(tracking.Point{X: float64(i) * 30}, clock.Now(), cfg)
		clock.Advance(frame)
	}
	s.Reset()
	if _, ok := s.LastStable(); ok {
		t.Error("LastStable should be unset after Reset")
	}
	raw := tracking.Point{X: -50, Y: 900}
	k := s.Stabilize(raw, clock.Now(), cfg)
	if k.Position != raw || k.Speed != 0 {
		t.Errorf("first frame after Reset = %+v, want raw position at rest", k)
	}
}

func TestIndependentStatesDoNotInteract(t *testing.T) {
	cfg := DefaultStabilizerConfig()
	clock := NewManualClock(epoch)
	a, b := NewStabilizationState(), NewStabilizationState()
	held := tracking.Point{X: 10, Y: 10}
	for i := 0; i < 20; i++ {
		a.Stabilize(tracking.Point{X: float64(i) * 50}, clock.Now(), cfg)
		if k := b.Stabilize(held, clock.Now(), cfg); k.Position != held {
			t.Fatalf("frame %d: held session moved to %v", i, k.Position)
		}
		clock.Advance(frame)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{3.5, 3.5 - 2*3.141592653589793},
		{-3.5, -3.5 + 2*3.141592653589793},
		{7, 7 - 2*3.141592653589793},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); !approx(got, tt.want, 1e-12) {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
