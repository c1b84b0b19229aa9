package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{2.1e12, "$2.10 T"},
		{1.83e12, "$1.83 T"},
		{228e6, "$228.00 M"},
		{2.0e9, "$2.00 B"},
		{1.5e6, "$1.50 M"},
		{999999, "$999,999.00"},
		{1234.5, "$1,234.50"},
		{950, "$950.00"},
		{0, "$0.00"},
		{-1.5e6, "-$1.50 M"},
		{-1234.5, "-$1,234.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(15.34); got != "+15.34%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(-8.2); got != "-8.20%" {
		t.Errorf("FormatPercent = %q", got)
	}
}

func TestFormatSignedPct(t *testing.T) {
	if got := FormatSignedPct(50.0); got != "+50%" {
		t.Errorf("FormatSignedPct(50) = %q", got)
	}
	if got := FormatSignedPct(-12.3); got != "-12%" {
		t.Errorf("FormatSignedPct(-12.3) = %q", got)
	}
}

func TestFormatOptional(t *testing.T) {
	if got := FormatOptional(nil, "%.2f"); got != NA {
		t.Errorf("FormatOptional(nil) = %q, want %q", got, NA)
	}
	v := 1.2345
	if got := FormatOptional(&v, "%.2f"); got != "1.23" {
		t.Errorf("FormatOptional = %q", got)
	}
}
