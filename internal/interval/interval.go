package interval

import (
	"errors"
	"time"
)

// DateLayout is the calendar date form used on all API boundaries.
const DateLayout = "2006-01-02"

// ErrInvalidDate reports malformed calendar date text.
var ErrInvalidDate = errors.New("interval: invalid date, use YYYY-MM-DD")

// ParseDate parses strict YYYY-MM-DD calendar date text into a UTC midnight time.
func ParseDate(text string) (time.Time, error) {
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Range is a calendar date range. Start and End are UTC midnights.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange parses a date range from boundary text.
func NewRange(startText, endText string) (Range, error) {
	start, err := ParseDate(startText)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseDate(endText)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

// IsDegenerate reports whether the range covers no time at all.
func (r Range) IsDegenerate() bool {
	return !r.Start.Before(r.End) && !r.Start.Equal(r.End)
}

// Overlaps reports strict half-open overlap: s1 < e2 && s2 < e1.
// Ranges that merely touch at a boundary do not overlap.
func Overlaps(a, b Range) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapsInclusive reports closed-interval intersection: s1 <= e2 && e1 >= s2.
// Used for tariff validity and fixed cost period matching, where a window
// touching a boundary day still counts.
func OverlapsInclusive(a, b Range) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// DayStart returns 00:00:00 of the day, preserving location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns 23:59:59 of the day, preserving location.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
