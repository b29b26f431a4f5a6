package domain

import "strconv"

// Temperature returns the absolute temperature for a variance against the baseline.
func Temperature(baseline, variance float64) float64 {
	return baseline + variance
}

// FormatFixed renders v with two decimals, e.g. 9.5 -> "9.50".
func FormatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatCelsius renders v with two decimals and a Celsius sign, e.g. "9.50℃".
func FormatCelsius(v float64) string {
	return FormatFixed(v) + "℃"
}
