package render

import "strconv"

//go:generate templ generate -f page.templ

// SurfaceID and TooltipID are the element ids the hover script and external
// checks look up.
const (
	SurfaceID = "heatmap"
	TooltipID = "tooltip"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func translate(x, y float64) string {
	return "translate(" + num(x) + "," + num(y) + ")"
}
