// Package domain models the global land-surface temperature anomaly dataset.
//
// # Data Source
//
// The dataset is the freeCodeCamp reference copy of the Berkeley Earth monthly
// land-surface record, served as a single JSON document:
//
//	{
//	  "baseTemperature": 8.66,
//	  "monthlyVariance": [
//	    {"year": 1753, "month": 1, "variance": -1.366},
//	    ...
//	  ]
//	}
//
// baseTemperature is the 1951–1980 average in degrees Celsius. Every record's
// variance is the deviation of that month from the baseline, so the absolute
// temperature of a cell is baseline + variance (see [Temperature]).
//
// # Months
//
// Months are encoded 1–12 on the wire. The rendered markup exposes them
// zero-based (January = 0) through [MonthIndex]; display names come from
// [MonthNames]. A month outside 1–12 makes the whole document malformed.
//
// # Formatting
//
// Temperatures and variances are shown with two decimals and a Celsius sign,
// e.g. 9.50℃. The cell markup carries the bare number ("9.50") so automated
// checks can compare it without parsing units.
package domain
