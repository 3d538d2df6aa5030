// internal/aggregate/interpolate.go
// Package aggregate turns raw benchmark records into grouped, averaged, and
// interpolated series ready for reporting.
package aggregate

// InterpolateOptions controls extrapolation clamping and easing.
type InterpolateOptions struct {
	// MaxExtrapolate, when set, clamps the query x before estimation.
	MaxExtrapolate *float64
	// Smooth applies smoothstep easing between bracketing samples.
	Smooth bool
}

// Interpolate estimates the y-value at x from measured samples.
//
// For query values:
//   - at or before xs[0]: returns max(ys[0], 0)
//   - at or after the last sample: linear extrapolation from the last two
//     samples (a single sample is held flat)
//   - in between: linear blend inside the bracketing interval, optionally
//     eased with smoothstep t²(3-2t)
//
// The result is never negative. xs must be sorted ascending, non-empty, and
// the same length as ys; an empty sample set is a caller bug.
func Interpolate(x float64, xs, ys []float64, opts InterpolateOptions) float64 {
	if opts.MaxExtrapolate != nil && x > *opts.MaxExtrapolate {
		x = *opts.MaxExtrapolate
	}

	if x <= xs[0] {
		return clampZero(ys[0])
	}

	last := len(xs) - 1
	if x >= xs[last] {
		if len(xs) >= 2 {
			slope := (ys[last] - ys[last-1]) / (xs[last] - xs[last-1])
			return clampZero(ys[last] + slope*(x-xs[last]))
		}
		return clampZero(ys[last])
	}

	for i := 1; i < len(xs); i++ {
		if xs[i-1] <= x && x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			if opts.Smooth {
				t = t * t * (3 - 2*t)
			}
			return clampZero(ys[i-1]*(1-t) + ys[i]*t)
		}
	}

	// Unreachable for sorted xs: x is strictly inside (xs[0], xs[last]).
	return clampZero(ys[last])
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
