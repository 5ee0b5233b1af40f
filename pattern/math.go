package pattern

import "math"

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp linearly interpolates between a and b. The two-product form is
// exact at both endpoints, which the anchor interpolation relies on.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Smoothstep maps t in [0,1] through the cubic ease t²(3-2t).
// Values outside [0,1] are clamped first.
func Smoothstep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// approach moves current toward target at the given per-second rate,
// clamped so a large dt never overshoots.
func approach(current, target, rate, dt float64) float64 {
	step := (target - current) * rate * dt
	gap := target - current
	if math.Abs(step) > math.Abs(gap) {
		step = gap
	}
	return current + step
}

// wrapCoord wraps v into [-margin, limit+margin).
func wrapCoord(v, limit, margin float64) float64 {
	span := limit + 2*margin
	for v < -margin {
		v += span
	}
	for v >= limit+margin {
		v -= span
	}
	return v
}
