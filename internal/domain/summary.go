package domain

import "time"

// RenderSummary describes one successful render. It is what the optional
// publisher emits; the dataset itself is never forwarded.
type RenderSummary struct {
	RenderID    string    `json:"render_id"`
	RenderedAt  time.Time `json:"rendered_at"`
	Records     int       `json:"records"`
	FirstYear   int       `json:"first_year"`
	LastYear    int       `json:"last_year"`
	Baseline    float64   `json:"baseline"`
	VarianceMin float64   `json:"variance_min"`
	VarianceMax float64   `json:"variance_max"`
	Scheme      string    `json:"scheme"`
}
