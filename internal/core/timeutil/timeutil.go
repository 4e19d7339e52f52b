package timeutil

import "time"

const ISODate = "2006-01-02"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DiffDays returns the number of whole calendar days from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DiffDays(from, to time.Time) int {
	a := StartOfDay(from.UTC())
	b := StartOfDay(to.UTC())
	return int(b.Sub(a).Hours() / 24)
}

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISODate)
}

func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}

// DayIndex returns now's offset in days from weekStart. The result is not
// clamped: values >= 7 mean the week has elapsed, negative values mean the
// stored week start lies in the future (clock skew).
func DayIndex(weekStart, now time.Time) int {
	return DiffDays(weekStart, now)
}

// ClampDayIndex forces an offset into the valid 0..6 window for display.
func ClampDayIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > 6 {
		return 6
	}
	return i
}

// WeeksSince returns the number of complete weeks elapsed between epoch and
// now. Zero when now precedes epoch.
func WeeksSince(epoch, now time.Time) int {
	days := DiffDays(epoch, now)
	if days < 0 {
		return 0
	}
	return days / 7
}

// CalendarDiff decomposes the span from 'from' to 'to' into whole years,
// months and days: the largest anniversary count that fits, then the
// largest month count, then the day remainder. All zeros when 'to' is not
// after 'from'.
func CalendarDiff(from, to time.Time) (years, months, days int) {
	from = StartOfDay(from.UTC())
	to = StartOfDay(to.UTC())
	if !to.After(from) {
		return 0, 0, 0
	}

	for !from.AddDate(years+1, 0, 0).After(to) {
		years++
	}
	cursor := from.AddDate(years, 0, 0)

	for !cursor.AddDate(0, months+1, 0).After(to) {
		months++
	}
	cursor = cursor.AddDate(0, months, 0)

	days = DiffDays(cursor, to)
	return years, months, days
}
