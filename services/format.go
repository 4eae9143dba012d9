package services

import "fmt"

// FormatHours renders an hour figure for display and export, always with two
// decimals and the unit suffix, e.g. "13.20 h".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f h", hours)
}

// FormatPercent renders a fraction as a percentage, e.g. 0.05 -> "5.0 %".
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f %%", fraction*100)
}
