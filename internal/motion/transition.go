package motion

import "fmt"

// TransitionType selects the family of curves used for large jumps.
type TransitionType uint8

const (
	TransitionLinear TransitionType = iota
	TransitionEase
	TransitionEaseIn
	TransitionEaseOut

	transitionTypeCount
)

var transitionNames = [transitionTypeCount]string{
	TransitionLinear:  "linear",
	TransitionEase:    "ease",
	TransitionEaseIn:  "ease-in",
	TransitionEaseOut: "ease-out",
}

func (t TransitionType) String() string {
	if t < transitionTypeCount {
		return transitionNames[t]
	}
	return fmt.Sprintf("TransitionType(%d)", uint8(t))
}

// ParseTransitionType parses a configured transition name.
func ParseTransitionType(name string) (TransitionType, error) {
	for i, n := range transitionNames {
		if n == name {
			return TransitionType(i), nil
		}
	}
	return TransitionEase, fmt.Errorf("unknown cursor transition type %q", name)
}

// TransitionProfile is the easing applied to one large jump.
type TransitionProfile struct {
	Curve CubicBezier
	// EffectStrength blends between the sped-up linear progress (0) and the
	// full curve (1).
	EffectStrength float64
	// SpeedFactor compresses the move into the first 1/SpeedFactor of the
	// sample interval.
	SpeedFactor float64
}

// Ease maps linear progress to eased progress. Ease(0)=0, Ease(1)=1 and the
// result is non-decreasing.
func (p TransitionProfile) Ease(progress float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	speed := p.SpeedFactor
	if speed < 1 {
		speed = 1
	}
	q := clamp01(progress * speed)
	return q + (p.Curve.Solve(q)-q)*clamp01(p.EffectStrength)
}

// profileBuckets holds, per transition type, the tuned profile for
// normalized distances d>2.5, d>1.5 and d>1.
var profileBuckets = [transitionTypeCount][3]TransitionProfile{
	TransitionLinear: {
		{Curve: CurveLinear, EffectStrength: 0.25, SpeedFactor: 1.5},
		{Curve: CurveLinear, EffectStrength: 0.25, SpeedFactor: 1.25},
		{Curve: CurveLinear, EffectStrength: 0.25, SpeedFactor: 1.0},
	},
	TransitionEase: {
		{Curve: CubicBezier{0.22, 0.61, 0.36, 1}, EffectStrength: 0.9, SpeedFactor: 1.5},
		{Curve: CubicBezier{0.25, 0.1, 0.25, 1}, EffectStrength: 0.7, SpeedFactor: 1.25},
		{Curve: CubicBezier{0.25, 0.1, 0.25, 1}, EffectStrength: 0.5, SpeedFactor: 1.0},
	},
	TransitionEaseIn: {
		{Curve: CubicBezier{0.55, 0.055, 0.675, 0.19}, EffectStrength: 0.8, SpeedFactor: 1.4},
		{Curve: CubicBezier{0.47, 0, 0.745, 0.715}, EffectStrength: 0.6, SpeedFactor: 1.2},
		{Curve: CurveEaseIn, EffectStrength: 0.4, SpeedFactor: 1.0},
	},
	TransitionEaseOut: {
		{Curve: CubicBezier{0.23, 1, 0.32, 1}, EffectStrength: 0.9, SpeedFactor: 1.5},
		{Curve: CubicBezier{0.165, 0.84, 0.44, 1}, EffectStrength: 0.7, SpeedFactor: 1.3},
		{Curve: CurveEaseOut, EffectStrength: 0.5, SpeedFactor: 1.1},
	},
}

// clickProfiles are used when the jump starts or ends on a click. They are
// gentler so the cursor lands on the click target without overshooting the
// visual press.
var clickProfiles = [transitionTypeCount]TransitionProfile{
	TransitionLinear:  {Curve: CurveLinear, EffectStrength: 0.25, SpeedFactor: 1.0},
	TransitionEase:    {Curve: CubicBezier{0.4, 0, 0.2, 1}, EffectStrength: 0.6, SpeedFactor: 1.1},
	TransitionEaseIn:  {Curve: CurveEaseInOut, EffectStrength: 0.5, SpeedFactor: 1.0},
	TransitionEaseOut: {Curve: CubicBezier{0, 0, 0.2, 1}, EffectStrength: 0.6, SpeedFactor: 1.2},
}

// SelectProfile picks the profile for a jump of normalized distance d
// (distance divided by the large-distance threshold).
func SelectProfile(kind TransitionType, d float64, click bool) TransitionProfile {
	if kind >= transitionTypeCount {
		kind = TransitionEase
	}
	if click {
		return clickProfiles[kind]
	}
	buckets := profileBuckets[kind]
	switch {
	case d > 2.5:
		return buckets[0]
	case d > 1.5:
		return buckets[1]
	default:
		return buckets[2]
	}
}

// AllProfiles lists every tuned profile, for validation.
func AllProfiles() []TransitionProfile {
	var out []TransitionProfile
	for k := TransitionType(0); k < transitionTypeCount; k++ {
		out = append(out, profileBuckets[k][:]...)
		out = append(out, clickProfiles[k])
	}
	return out
}
