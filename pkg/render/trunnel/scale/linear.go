package scale

import "math"

// Linear maps a continuous domain [D0, D1] onto a range [R0, R1].
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a linear scale from domain [d0, d1] to range [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the domain endpoints.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range endpoints.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Degenerate reports whether the domain has zero extent.
func (s Linear) Degenerate() bool { return s.d0 == s.d1 }

// Map returns the range value for x. Values outside the domain are
// extrapolated.
func (s Linear) Map(x float64) float64 {
	if s.Degenerate() {
		return s.r0
	}
	return lerp(s.r0, s.r1, (x-s.d0)/(s.d1-s.d0))
}

// lerp is exact at both ends: lerp(a, b, 0) == a and lerp(a, b, 1) == b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns roughly count evenly spaced, round values inside the
// domain. It returns nil if count is not positive and the single domain
// value if the domain is degenerate.
func (s Linear) Ticks(count int) []float64 {
	if count <= 0 {
		return nil
	}
	start, stop := s.d0, s.d1
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// TickStep returns the distance between consecutive values of Ticks(count).
func (s Linear) TickStep(count int) float64 {
	start, stop := s.d0, s.d1
	if count <= 0 || start == stop {
		return 0
	}
	if stop < start {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

// tickSpec returns the first and last tick indices and the increment. A
// negative increment is the reciprocal of the true step, which keeps
// fractional steps exact.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / count
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = round(start * inc)
		i2 = round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = round(start / inc)
		i2 = round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// round rounds half up, so tick boundaries do not depend on sign.
func round(x float64) float64 { return math.Floor(x + 0.5) }
