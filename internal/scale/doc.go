// Package scale maps the dataset onto the drawing surface.
//
// Three scales are built per render and shared by every visual element:
// a band scale from year to horizontal position, a band scale from month name
// to vertical position, and a sequential colour scale from variance to a hex
// colour. A linear scale with tick generation supports the legend axis.
//
// Lookups outside a scale's build-time domain are a caller error. The band
// scales report them with ok=false; the colour scale clamps to the ends of its
// scheme.
package scale
