package entity

import "time"

// DateRangesOverlap reports whether two calendar date ranges intersect.
// Ranges are inclusive on both ends: a session occupying day D and
// another one starting or ending on day D share that day.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// TimeRangesOverlap reports whether two daily time windows intersect.
// A window with start >= end wraps past midnight and covers
// [start, 24:00) plus [00:00, end). Windows are half-open, so two
// windows that only touch at a boundary do not overlap.
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd Clock) bool {
	aWraps := aStart >= aEnd
	bWraps := bStart >= bEnd

	switch {
	case aWraps && bWraps:
		// Both windows occupy the band around midnight.
		return true
	case aWraps:
		return bEnd > aStart || bStart < aEnd
	case bWraps:
		return aEnd > bStart || aStart < bEnd
	default:
		return aStart < bEnd && bStart < aEnd
	}
}
