package motion

import "math"

const (
	newtonIterations = 8
	newtonEpsilon    = 1e-6
	bisectIterations = 40
)

// CubicBezier is a CSS-style timing curve from (0,0) to (1,1) with control
// points (X1,Y1) and (X2,Y2). X1 and X2 must lie in [0,1] for x(t) to be
// invertible.
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Polynomial coefficients of one axis: ax*t^3 + bx*t^2 + cx*t.
func coefficients(p1, p2 float64) (a, b, c float64) {
	c = 3 * p1
	b = 3*(p2-p1) - c
	a = 1 - c - b
	return a, b, c
}

func (cb CubicBezier) sampleX(t float64) float64 {
	a, b, c := coefficients(cb.X1, cb.X2)
	return ((a*t+b)*t + c) * t
}

func (cb CubicBezier) sampleY(t float64) float64 {
	a, b, c := coefficients(cb.Y1, cb.Y2)
	return ((a*t+b)*t + c) * t
}

func (cb CubicBezier) derivativeX(t float64) float64 {
	a, b, c := coefficients(cb.X1, cb.X2)
	return (3*a*t+2*b)*t + c
}

// solveT inverts x(t). Newton-Raphson converges in a few steps for the
// curves in use; flat spots in x'(t) fall back to bisection.
func (cb CubicBezier) solveT(x float64) float64 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		dx := cb.sampleX(t) - x
		if math.Abs(dx) < newtonEpsilon {
			return t
		}
		d := cb.derivativeX(t)
		if math.Abs(d) < newtonEpsilon {
			break
		}
		t -= dx / d
		if t < 0 || t > 1 {
			break
		}
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < bisectIterations; i++ {
		v := cb.sampleX(t)
		if math.Abs(v-x) < newtonEpsilon {
			return t
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

// Solve returns y for the given x in [0,1]. The endpoints are exact.
func (cb CubicBezier) Solve(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return cb.sampleY(cb.solveT(x))
}

// Standard timing curves.
var (
	CurveLinear    = CubicBezier{0.25, 0.25, 0.75, 0.75}
	CurveEase      = CubicBezier{0.25, 0.1, 0.25, 1}
	CurveEaseIn    = CubicBezier{0.42, 0, 1, 1}
	CurveEaseOut   = CubicBezier{0, 0, 0.58, 1}
	CurveEaseInOut = CubicBezier{0.42, 0, 0.58, 1}
)

// easeOutCubic is 1-(1-t)^3 over [0,1].
func easeOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}
