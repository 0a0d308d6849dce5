// Package timeperiod resolves relative period qualifiers into concrete
// calendar-aligned date ranges. It is the single range-computation
// authority: no other package derives date bounds on its own.
package timeperiod

import "time"

// Period is a calendar bucket unit.
type Period string

// Which qualifies a period relative to now.
type Which string

const (
	Today     Period = "today"
	Yesterday Period = "yesterday"
	Week      Period = "week"
	Month     Period = "month"
	Year      Period = "year"

	This Which = "this"
	Last Which = "last"
)

// Range is a resolved, inclusive [Start, End] window. End sits on the last
// representable millisecond of the closing day.
type Range struct {
	Period Period
	Which  Which
	Start  time.Time
	End    time.Time
}

// Days returns the number of calendar days the range spans.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolve computes the range for (period, which) anchored at now. It is
// pure: identical arguments always produce identical bounds.
//
//   - today/yesterday cover a single calendar day; which=last on today
//     shifts back one day, equivalent to yesterday.
//   - week covers Monday through Sunday of the week containing now;
//     which=last shifts back exactly seven days.
//   - month covers the first through last calendar day; which=last uses
//     the prior calendar month, rolling over year boundaries.
//   - year covers Jan 1 through Dec 31; which=last uses the prior year.
func Resolve(period Period, which Which, now time.Time) Range {
	var start, end time.Time

	switch period {
	case Today:
		base := now
		if which == Last {
			base = now.AddDate(0, 0, -1)
		}
		start = startOfDay(base)
		end = endOfDay(base)
	case Yesterday:
		base := now.AddDate(0, 0, -1)
		start = startOfDay(base)
		end = endOfDay(base)
	case Week:
		day := int(now.Weekday())
		if day == 0 {
			day = 7 // Sunday counts as the seventh day
		}
		monday := startOfDay(now.AddDate(0, 0, -(day - 1)))
		if which == Last {
			monday = monday.AddDate(0, 0, -7)
		}
		start = monday
		end = endOfDay(monday.AddDate(0, 0, 6))
	case Year:
		year := now.Year()
		if which == Last {
			year--
		}
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), now.Location())
	default: // month
		offset := 0
		if which == Last {
			offset = -1
		}
		first := time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
		start = first
		end = first.AddDate(0, 1, 0).Add(-time.Millisecond)
	}

	return Range{Period: period, Which: which, Start: start, End: end}
}

// DaysInMonth returns the number of days in the calendar month containing t.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
