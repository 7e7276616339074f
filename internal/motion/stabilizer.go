package motion

import (
	"math"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

const (
	positionHistorySize = 8
	speedHistorySize    = 5
	angleHistorySize    = 8

	// frameMs is the reference frame (60Hz) that speeds are expressed in.
	frameMs = 1000.0 / 60.0
)

// StabilizerConfig tunes the jitter filter.
type StabilizerConfig struct {
	// MinDistance is the dead-zone radius in pixels.
	MinDistance float64
	// MinSpeed is the speed below which movement is ignored.
	MinSpeed float64
	// FreezeTimeout releases the dead-zone once the position has been held
	// this long, so slow drifts still land.
	FreezeTimeout time.Duration
	// DecayWindow is the time constant of the history weights.
	DecayWindow time.Duration
	// BaseSmoothing is the weight of the history mean at rest.
	BaseSmoothing float64
	// MaxSmoothingReduction is how much of BaseSmoothing fast motion removes.
	MaxSmoothingReduction float64
	// SmoothingSpeedRef is the speed at which the full reduction applies.
	SmoothingSpeedRef float64
	// AccelerationGap is the longest interval between speed updates that
	// still yields an acceleration sample.
	AccelerationGap time.Duration
	// AngleSpeedRef is the speed at which the raw angle gets its full weight.
	AngleSpeedRef float64
}

// DefaultStabilizerConfig returns the tuned defaults.
func DefaultStabilizerConfig() StabilizerConfig {
	return StabilizerConfig{
		MinDistance:           0.6,
		MinSpeed:              0.3,
		FreezeTimeout:         300 * time.Millisecond,
		DecayWindow:           300 * time.Millisecond,
		BaseSmoothing:         0.35,
		MaxSmoothingReduction: 0.2,
		SmoothingSpeedRef:     50,
		AccelerationGap:       100 * time.Millisecond,
		AngleSpeedRef:         30,
	}
}

// Kinematics is the smoothed motion state for one frame.
type Kinematics struct {
	Position tracking.Point
	Raw      tracking.Point
	// Speed in pixels per 60Hz frame.
	Speed float64
	// Acceleration in speed units per 60Hz frame.
	Acceleration float64
	// Direction is the unit vector of recent movement.
	Direction tracking.Point
	// Angle of movement in radians.
	Angle  float64
	Moving bool
}

type timedPoint struct {
	p  tracking.Point
	at time.Time
}

// StabilizationState is the per-session memory of the jitter filter. Each
// playback view owns its own instance; sharing one between views makes
// their smoothing bleed into each other.
type StabilizationState struct {
	positions []timedPoint
	speeds    []float64
	angles    []float64

	initialized  bool
	lastStable   tracking.Point
	lastStableAt time.Time
	lastRaw      tracking.Point
	lastRawAt    time.Time
	// rawChangedAt is when the raw position last moved.
	rawChangedAt time.Time

	lastDirection    tracking.Point
	lastSpeed        float64
	lastSpeedAt      time.Time
	lastAcceleration float64
	lastAngle        float64
}

// NewStabilizationState returns an empty state.
func NewStabilizationState() *StabilizationState {
	return &StabilizationState{}
}

// Reset clears the state. Call it on every seek, scrub or loop.
func (s *StabilizationState) Reset() {
	*s = StabilizationState{}
}

// LastStable returns the last emitted stable position.
func (s *StabilizationState) LastStable() (tracking.Point, bool) {
	return s.lastStable, s.initialized
}

// HistoryLen reports the sizes of the position, speed and angle histories.
func (s *StabilizationState) HistoryLen() (positions, speeds, angles int) {
	return len(s.positions), len(s.speeds), len(s.angles)
}

// Stabilize feeds one raw position observed at now and returns the smoothed
// kinematics.
func (s *StabilizationState) Stabilize(raw tracking.Point, now time.Time, cfg StabilizerConfig) Kinematics {
	if !s.initialized {
		s.initialized = true
		s.lastStable, s.lastStableAt = raw, now
		s.lastRaw, s.lastRawAt = raw, now
		s.rawChangedAt = now
		s.lastSpeedAt = now
		s.positions = pushBounded(s.positions, timedPoint{p: raw, at: now}, positionHistorySize)
		return s.kinematics(raw, false)
	}

	dt := millis(now.Sub(s.lastRawAt))
	step := raw.Distance(s.lastRaw)
	rawSpeed := step
	if dt > 0 {
		rawSpeed = step / dt * frameMs
	}
	speed := 0.7*s.lastSpeed + 0.3*rawSpeed
	s.updateAcceleration(speed, now, cfg)
	s.lastSpeed = speed
	s.speeds = pushBounded(s.speeds, speed, speedHistorySize)
	if step > 0 {
		s.rawChangedAt = now
	}
	s.lastRaw, s.lastRawAt = raw, now
	s.positions = pushBounded(s.positions, timedPoint{p: raw, at: now}, positionHistorySize)

	if now.Sub(s.rawChangedAt) > cfg.FreezeTimeout {
		// Held long enough: land exactly on the raw position.
		s.lastStable, s.lastStableAt = raw, now
		return s.kinematics(raw, false)
	}

	offset := raw.Subtract(s.lastStable)
	if offset.Length() < cfg.MinDistance || speed < cfg.MinSpeed {
		if now.Sub(s.lastStableAt) <= cfg.FreezeTimeout {
			return s.kinematics(s.lastStable, false)
		}
		s.lastStable, s.lastStableAt = raw, now
		return s.kinematics(raw, false)
	}

	dir := offset.Normalize()
	s.blendDirection(dir)

	result := s.weightedMean(now, cfg).Lerp(raw, 1-s.dynamicWeight(speed, cfg))
	if result.Distance(s.lastStable) < cfg.MinDistance/2 {
		return s.kinematics(s.lastStable, false)
	}
	s.lastStable, s.lastStableAt = result, now
	s.stabilizeAngle(math.Atan2(dir.Y, dir.X), speed, cfg)
	return s.kinematics(result, true)
}

func (s *StabilizationState) kinematics(p tracking.Point, moving bool) Kinematics {
	return Kinematics{
		Position:     p,
		Raw:          s.lastRaw,
		Speed:        s.lastSpeed,
		Acceleration: s.lastAcceleration,
		Direction:    s.lastDirection,
		Angle:        s.lastAngle,
		Moving:       moving,
	}
}

func (s *StabilizationState) updateAcceleration(speed float64, now time.Time, cfg StabilizerConfig) {
	gap := now.Sub(s.lastSpeedAt)
	s.lastSpeedAt = now
	if gap <= 0 || gap > cfg.AccelerationGap {
		return
	}
	raw := (speed - s.lastSpeed) / millis(gap) * frameMs
	s.lastAcceleration = 0.6*s.lastAcceleration + 0.4*raw
}

// blendDirection eases the remembered direction towards dir, faster on a
// reversal so the cursor does not drag its old heading around.
func (s *StabilizationState) blendDirection(dir tracking.Point) {
	if dir == (tracking.Point{}) {
		return
	}
	if s.lastDirection == (tracking.Point{}) {
		s.lastDirection = dir
		return
	}
	factor := 0.6
	if dir.Dot(s.lastDirection) < 0 {
		factor = 0.8
	}
	blended := s.lastDirection.Lerp(dir, factor).Normalize()
	if blended == (tracking.Point{}) {
		blended = dir
	}
	s.lastDirection = blended
}

// weightedMean averages the position history, weighting each entry by its
// age decay and its recency rank.
func (s *StabilizationState) weightedMean(now time.Time, cfg StabilizerConfig) tracking.Point {
	window := millis(cfg.DecayWindow)
	if window <= 0 {
		window = 300
	}
	n := float64(len(s.positions))
	var sum tracking.Point
	var total float64
	for i, h := range s.positions {
		age := math.Max(0, millis(now.Sub(h.at)))
		w := math.Exp(-age/window) * float64(i+1) / n
		sum = sum.Add(h.p.Scale(w))
		total += w
	}
	if total == 0 {
		return s.lastRaw
	}
	return sum.Scale(1 / total)
}

// dynamicWeight is the share of the history mean in the output. Faster
// motion lowers it by up to MaxSmoothingReduction of the base.
func (s *StabilizationState) dynamicWeight(speed float64, cfg StabilizerConfig) float64 {
	ref := cfg.SmoothingSpeedRef
	if ref <= 0 {
		ref = 50
	}
	return clamp01(cfg.BaseSmoothing * (1 - cfg.MaxSmoothingReduction*clamp01(speed/ref)))
}

func (s *StabilizationState) stabilizeAngle(raw, speed float64, cfg StabilizerConfig) {
	s.angles = pushBounded(s.angles, raw, angleHistorySize)

	n := float64(len(s.angles))
	var sx, sy float64
	for i, a := range s.angles {
		p := float64(i+1) / n
		w := p*p + 0.1
		sx += math.Cos(a) * w
		sy += math.Sin(a) * w
	}
	avg := math.Atan2(sy, sx)

	ref := cfg.AngleSpeedRef
	if ref <= 0 {
		ref = 30
	}
	alpha := 0.3 + 0.5*clamp01(speed/ref)
	s.lastAngle = avg + wrapAngle(raw-avg)*alpha
}

// wrapAngle maps a to (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// pushBounded appends v, dropping the oldest entries beyond limit.
func pushBounded[T any](s []T, v T, limit int) []T {
	s = append(s, v)
	if len(s) > limit {
		copy(s, s[len(s)-limit:])
		s = s[:limit]
	}
	return s
}
