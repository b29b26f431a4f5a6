package scale

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultScheme is the red-yellow-blue diverging ramp.
const DefaultScheme = "RdYlBu"

// Interpolator maps t in [0, 1] to a colour. Values outside are clamped.
type Interpolator func(t float64) colorful.Color

// schemes holds the 11-stop diverging ramps from ColorBrewer, low to high.
var schemes = map[string]string{
	"RdYlBu":   "a50026d73027f46d43fdae61fee090ffffbfe0f3f8abd9e974add14575b4313695",
	"RdBu":     "67001fb2182bd6604df4a582fddbc7f7f7f7d1e5f092c5de4393c32166ac053061",
	"Spectral": "9e0142d53e4ff46d43fdae61fee08bffffbfe6f598abdda466c2a53288bd5e4fa2",
}

// Schemes returns the registered scheme names.
func Schemes() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	return names
}

// LookupScheme returns the continuous interpolator for a named scheme.
func LookupScheme(name string) (Interpolator, error) {
	stops, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	colors, err := parseStops(stops)
	if err != nil {
		return nil, fmt.Errorf("scheme %s: %w", name, err)
	}
	return basisInterpolator(colors), nil
}

func parseStops(packed string) ([]colorful.Color, error) {
	if len(packed)%6 != 0 {
		return nil, fmt.Errorf("stop list length %d is not a multiple of 6", len(packed))
	}
	colors := make([]colorful.Color, 0, len(packed)/6)
	for i := 0; i < len(packed); i += 6 {
		c, err := colorful.Hex("#" + strings.ToLower(packed[i:i+6]))
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// basisInterpolator fits a uniform cubic B-spline through the stops, channel
// by channel in RGB. The curve passes through the first and last stops and
// is smooth everywhere, so nearby t values give nearby colours.
func basisInterpolator(stops []colorful.Color) Interpolator {
	r := make([]float64, len(stops))
	g := make([]float64, len(stops))
	b := make([]float64, len(stops))
	for i, c := range stops {
		r[i], g[i], b[i] = c.R, c.G, c.B
	}
	return func(t float64) colorful.Color {
		return colorful.Color{R: basis(r, t), G: basis(g, t), B: basis(b, t)}.Clamped()
	}
}

func basis(values []float64, t float64) float64 {
	n := len(values) - 1
	var i int
	switch {
	case t <= 0 || math.IsNaN(t):
		t = 0
		i = 0
	case t >= 1:
		t = 1
		i = n - 1
	default:
		i = int(math.Floor(t * float64(n)))
	}
	v1, v2 := values[i], values[i+1]
	v0 := 2*v1 - v2
	if i > 0 {
		v0 = values[i-1]
	}
	v3 := 2*v2 - v1
	if i < n-1 {
		v3 = values[i+2]
	}
	return basisPoint((t-float64(i)/float64(n))*float64(n), v0, v1, v2, v3)
}

func basisPoint(t1, v0, v1, v2, v3 float64) float64 {
	t2 := t1 * t1
	t3 := t2 * t1
	return ((1-3*t1+3*t2-t3)*v0 +
		(4-6*t2+3*t3)*v1 +
		(1+3*t1+3*t2-3*t3)*v2 +
		t3*v3) / 6
}

// Hex renders a colour as #rrggbb, rounding each channel to the nearest byte.
func Hex(c colorful.Color) string {
	return c.Clamped().Hex()
}
