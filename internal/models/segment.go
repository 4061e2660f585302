package models

import "strings"

// Segment enumerates the customer pricing segments.
type Segment string

const (
	SegmentDistributor Segment = "distributor"
	SegmentReseller    Segment = "reseller"
	SegmentReseller10  Segment = "reseller10"
)

// DefaultSegment is assigned to self-registered accounts and to imported
// clients whose segment cell is empty.
const DefaultSegment = SegmentReseller10

// Valid reports whether s is one of the three known segments.
func (s Segment) Valid() bool {
	switch s {
	case SegmentDistributor, SegmentReseller, SegmentReseller10:
		return true
	}
	return false
}

// ParseSegment maps a raw cell or request value to a segment, tolerating the
// Italian names used by the management system exports. Unknown values fall
// back to DefaultSegment.
func ParseSegment(raw string) Segment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "distributor", "distributore":
		return SegmentDistributor
	case "reseller", "rivenditore":
		return SegmentReseller
	case "reseller10", "rivenditore10":
		return SegmentReseller10
	}
	return DefaultSegment
}
