package scale

import "math"

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale from [d0, d1] to [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map projects a domain value into the range.
func (l *Linear) Map(v float64) float64 {
	if l.d1 == l.d0 {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + (v-l.d0)/(l.d1-l.d0)*(l.r1-l.r0)
}

// Invert projects a range value back into the domain.
func (l *Linear) Invert(x float64) float64 {
	if l.r1 == l.r0 {
		return (l.d0 + l.d1) / 2
	}
	return l.d0 + (x-l.r0)/(l.r1-l.r0)*(l.d1-l.d0)
}

// Ticks returns roughly count human-friendly values inside the domain,
// spaced by 1, 2 or 5 times a power of ten.
func (l *Linear) Ticks(count int) []float64 {
	return Ticks(l.d0, l.d1, count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns nicely rounded values between start and stop inclusive.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
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
	ticks := make([]float64, 0, int(i2-i1)+1)
	for i := i1; i <= i2; i++ {
		if inc < 0 {
			ticks = append(ticks, i/-inc)
		} else {
			ticks = append(ticks, i*inc)
		}
	}
	if reverse {
		for a, b := 0, len(ticks)-1; a < b; a, b = a+1, b-1 {
			ticks[a], ticks[b] = ticks[b], ticks[a]
		}
	}
	return ticks
}

// tickSpec returns the first and last tick multiples and the increment. A
// negative increment means "divide by -inc", which keeps fractional steps exact.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
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
		i1 = roundHalfUp(start * inc)
		i2 = roundHalfUp(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = roundHalfUp(start / inc)
		i2 = roundHalfUp(stop / inc)
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

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
