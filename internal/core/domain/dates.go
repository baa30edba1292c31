package domain

import "time"

// DateKeyLayout is the calendar-local key format used by the completion
// ledger. Persisted ledgers depend on it staying exactly this.
const DateKeyLayout = "2006-01-02"

const (
	Mon = "Mon"
	Tue = "Tue"
	Wed = "Wed"
	Thu = "Thu"
	Fri = "Fri"
	Sat = "Sat"
	Sun = "Sun"
)

// WeekdayTags lists the weekday abbreviations in Monday-first order,
// matching the week convention used for quota windows.
var WeekdayTags = []string{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var weekdayTagByDay = map[time.Weekday]string{
	time.Monday:    Mon,
	time.Tuesday:   Tue,
	time.Wednesday: Wed,
	time.Thursday:  Thu,
	time.Friday:    Fri,
	time.Saturday:  Sat,
	time.Sunday:    Sun,
}

func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey returns the UTC midnight instant for a YYYY-MM-DD key.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}

// WeekdayTag maps a date to its Mon..Sun abbreviation.
func WeekdayTag(t time.Time) string {
	return weekdayTagByDay[t.Weekday()]
}

func IsValidWeekdayTag(tag string) bool {
	for _, d := range WeekdayTags {
		if d == tag {
			return true
		}
	}
	return false
}

// WeekStart returns the Monday of the ISO week containing t, at the same
// clock time as t truncated to midnight UTC.
func WeekStart(t time.Time) time.Time {
	day := truncateToDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b. Negative when b
// precedes a.
func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}
