package ingest

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  float64
		want float64
	}{
		{"plain", "12.50", 0, 12.5},
		{"comma decimal", "12,50", 0, 12.5},
		{"euro sign and spaces", " € 1.234,00 ", 0, 0}, // dot+comma: not a single-comma decimal, parse fails
		{"euro suffix", "99,90€", 0, 99.9},
		{"integer", "100", 0, 100},
		{"empty", "", 7, 7},
		{"whitespace only", "   ", 3, 3},
		{"garbage", "abc", 0, 0},
		{"garbage with default", "n.d.", 42, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.raw, tt.def); got != tt.want {
				t.Errorf("ParseAmount(%q, %v) = %v, want %v", tt.raw, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  int
		want int
	}{
		{"plain", "42", 0, 42},
		{"thousands dot", "1.250", 0, 1250},
		{"thousands comma", "1,250", 0, 1250},
		{"na token", "N/A", 9, 9},
		{"nd token lowercase", "nd", 5, 5},
		{"dash", "-", 1, 1},
		{"non disponibile", "Non Disponibile", 2, 2},
		{"empty", "", 3, 3},
		{"garbage", "12x", 0, 0},
		{"spaced digits", "1 250", 0, 1250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInt(tt.raw, tt.def); got != tt.want {
				t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.raw, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string // "" means nil expected
	}{
		{"31/01/2026", "2026-01-31"},
		{"31/01/2026 14:30", "2026-01-31"},
		{"2026-01-31", "2026-01-31"},
		{"2026-01-31 14:30:00", "2026-01-31"},
		{"2026-01-31T14:30:00Z", "2026-01-31"},
		{"not a date", ""},
		{"", ""},
		{"32/01/2026", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseDate(tt.raw)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("ParseDate(%q) = %v, want nil", tt.raw, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseDate(%q) = nil, want %s", tt.raw, tt.want)
			}
			if got.Format(time.DateOnly) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.raw, got.Format(time.DateOnly), tt.want)
			}
		})
	}
}
