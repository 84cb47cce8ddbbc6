package core

import (
	"sort"
	"time"
)

// Ranged is any record a calendar can place: it starts on a date and
// optionally spans until an end date (inclusive). EndsAt returns the start
// date again for single-day records.
type Ranged interface {
	StartsAt() time.Time
	EndsAt() time.Time
}

// Day is one calendar cell: its date and the records whose [start,end]
// interval covers it.
type Day[T Ranged] struct {
	Date    time.Time
	InMonth bool // false on leading/trailing days padding the first/last week
	Records []T
}

// MonthGrid projects records onto the month containing anchor. The grid spans
// full weeks (Sunday..Saturday), so it may include trailing days of the
// previous/next month to complete the first/last row. Day count is always a
// multiple of 7.
func MonthGrid[T Ranged](anchor time.Time, records []T) []Day[T] {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	grid := make([]Day[T], 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := Day[T]{Date: d, InMonth: d.Month() == first.Month()}
		for _, rec := range records {
			if covers(rec, d) {
				day.Records = append(day.Records, rec)
			}
		}
		grid = append(grid, day)
	}
	return grid
}

// covers reports whether rec's inclusive date range contains day d.
func covers(rec Ranged, d time.Time) bool {
	start := dateOf(rec.StartsAt())
	end := dateOf(rec.EndsAt())
	if end.Before(start) {
		end = start
	}
	return !d.Before(start) && !d.After(end)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Upcoming returns the records whose start date is today or later, sorted
// ascending by start date. A record starting today is included; yesterday's
// is not.
func Upcoming[T Ranged](records []T) []T {
	today := Today()
	up := make([]T, 0, len(records))
	for _, rec := range records {
		if !dateOf(rec.StartsAt()).Before(today) {
			up = append(up, rec)
		}
	}
	sort.SliceStable(up, func(i, j int) bool { return up[i].StartsAt().Before(up[j].StartsAt()) })
	return up
}

// NextMonth, PrevMonth and ThisMonth replace the anchor used by MonthGrid.
func NextMonth(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location()).AddDate(0, 1, 0)
}

func PrevMonth(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location()).AddDate(0, -1, 0)
}

func ThisMonth() time.Time {
	now := NowFunc()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
