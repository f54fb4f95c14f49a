package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for stay dates.
const DateLayout = "2006-01-02"

// DateRange is a half-open [Start, End) range at day granularity.
// Dates are ISO "YYYY-MM-DD" strings, so lexicographic comparison is
// equivalent to chronological comparison.
type DateRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// NewDateRange validates both dates and the ordering Start < End.
func NewDateRange(start, end string) (DateRange, error) {
	if _, err := time.Parse(DateLayout, start); err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if _, err := time.Parse(DateLayout, end); err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if start >= end {
		return DateRange{}, fmt.Errorf("start date %q must be before end date %q", start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open ranges intersect. A checkout
// day equal to another range's check-in day is not a conflict.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start < o.End && r.End > o.Start
}

// Clip bounds the range to the given window. The second return value
// is false when the range lies entirely outside the window.
func (r DateRange) Clip(window DateRange) (DateRange, bool) {
	if !r.Overlaps(window) {
		return DateRange{}, false
	}
	clipped := r
	if clipped.Start < window.Start {
		clipped.Start = window.Start
	}
	if clipped.End > window.End {
		clipped.End = window.End
	}
	return clipped, true
}

// Days expands the range into its individual day values, excluding End.
func (r DateRange) Days() []string {
	start, err := time.Parse(DateLayout, r.Start)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, r.End)
	if err != nil {
		return nil
	}
	var days []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}

// Nights returns the number of nights covered by the range.
func (r DateRange) Nights() int {
	return len(r.Days())
}
