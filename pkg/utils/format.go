// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatMoney formats a dollar amount in compact form (T/B/M) above one
// million, otherwise with thousands separators. Zero or negative amounts
// that represent missing upstream data should be handled by the caller;
// this only formats.
func FormatMoney(amount float64) string {
	negative := amount < 0
	abs := amount
	if negative {
		abs = -abs
	}

	var formatted string
	switch {
	case abs >= 1e12:
		formatted = fmt.Sprintf("$%.2f T", abs/1e12)
	case abs >= 1e9:
		formatted = fmt.Sprintf("$%.2f B", abs/1e9)
	case abs >= 1e6:
		formatted = fmt.Sprintf("$%.2f M", abs/1e6)
	default:
		formatted = "$" + groupThousands(fmt.Sprintf("%.2f", abs))
	}

	if negative {
		return "-" + formatted
	}
	return formatted
}

// groupThousands inserts commas into the integer part of a "%.2f" string.
func groupThousands(s string) string {
	parts := strings.Split(s, ".")
	intPart := parts[0]

	n := len(intPart)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + parts[1]
}

// FormatPercent formats a percentage with an explicit sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatSignedPct formats a percentage with sign and no decimals, the
// form used for sector-relative deviation.
func FormatSignedPct(value float64) string {
	return fmt.Sprintf("%+.0f%%", value)
}

// NA is the explicit marker for a missing optional metric.
const NA = "N/A"

// FormatOptional renders an optional float with the given format, or the
// "N/A" marker when absent.
func FormatOptional(v *float64, format string) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf(format, *v)
}
