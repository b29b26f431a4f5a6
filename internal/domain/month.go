package domain

// MonthNames lists the display names in calendar order. The month scale's
// domain is always exactly this list.
var MonthNames = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// MonthIndex converts a 1–12 month to its zero-based index.
func MonthIndex(month int) int {
	return month - 1
}

// MonthName returns the display name for a 1–12 month, or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > len(MonthNames) {
		return ""
	}
	return MonthNames[month-1]
}
