package exporter

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// formatFloat formats a value with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatSeconds renders a duration total with thousands separators and no
// trailing zeros: 3817 -> "3,817", 1529.866 -> "1,529.866"
func formatSeconds(f float64) string {
	return humanize.Commaf(f)
}

// formatDuration renders a single trip duration without trailing zeros
func formatDuration(f float64) string {
	return humanize.Ftoa(f)
}

// formatInt formats an int value
func formatInt(i int) string {
	return strconv.Itoa(i)
}
