package ingest

import (
	"strconv"
	"strings"
	"time"
)

// naTokens are the "not applicable" markers the management system leaves in
// integer cells.
var naTokens = map[string]bool{
	"N":               true,
	"NA":              true,
	"N/A":             true,
	"ND":              true,
	"-":               true,
	"NON DISPONIBILE": true,
}

// ParseAmount parses a currency/amount cell tolerantly. Whitespace and euro
// signs are stripped; a single comma with no dot is treated as the decimal
// separator. On failure it returns def rather than an error so a bad cell
// never aborts a batch; callers surface the default through counters.
func ParseAmount(raw string, def float64) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "€", "")
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseInt parses an integer cell. Known not-applicable tokens map to def.
// Dots and commas are stripped as thousands separators when the remainder is
// all digits; otherwise a direct parse is attempted. Failure returns def.
func ParseInt(raw string, def int) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	if naTokens[strings.ToUpper(s)] {
		return def
	}
	s = strings.ReplaceAll(s, " ", "")
	stripped := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", "")
	if stripped != "" && isDigits(stripped) {
		s = stripped
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseNullableAmount parses order-total cells exported with Italian
// formatting: dots are thousands separators, the comma is the decimal mark.
// Unparseable input yields nil so the column stays NULL instead of a fake 0.
func ParseNullableAmount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// dateLayouts are tried in order; the first successful pattern wins.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseDate normalizes the date formats the management system exports.
// Unparseable input yields nil: the row keeps going with no date.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
