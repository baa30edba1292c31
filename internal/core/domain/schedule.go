package domain

import "time"

// Trend labels derived from the trailing 30-day completion ratio.
const (
	TrendAccelerating = "Accelerating"
	TrendCruising     = "Cruising"
	TrendBreaking     = "Breaking"

	trendWindowDays = 30
)

// IsCompletedOn reports whether the progress recorded for dateKey
// satisfies the habit's completion criterion. It reads only the habit's
// own ledger; an absent entry is never completed.
func (h *Habit) IsCompletedOn(dateKey string) bool {
	entry := h.Completed.On(dateKey)

	if len(h.MicroHabits) > 0 {
		for _, m := range h.MicroHabits {
			if !entry.Subtask(m.ID) {
				return false
			}
		}
		return true
	}

	switch h.TrackingType {
	case TrackingCheckbox:
		return entry.Numeric() == 1
	case TrackingQuantitative:
		if h.GoalValue == nil {
			return false
		}
		return entry.Numeric() >= *h.GoalValue
	}

	return false
}

// IsDueOn reports whether the habit is scheduled on the given date as the
// list view sees it: N-times-week habits stop being due for the rest of
// the week once the quota is met. Deterministic for a fixed (habit, date,
// ledger) triple; missing recurrence fields degrade to not-due.
func (h *Habit) IsDueOn(date time.Time) bool {
	switch h.Frequency {
	case FreqDaily, FreqWeekly:
		return true
	case FreqCustom:
		for _, d := range h.Days {
			if d == WeekdayTag(date) {
				return true
			}
		}
		return false
	case FreqEveryNDays:
		return h.onInterval(date)
	case FreqNTimesWeek:
		if h.TimesPerWeek < 1 {
			return false
		}
		return h.CompletedCountInWeek(date) < h.TimesPerWeek
	}
	return false
}

// IsScheduledOn is IsDueOn without quota gating: N-times-week habits count
// toward every day's totals even after the weekly quota is met. The daily
// progress card uses this while the list view uses IsDueOn; the two views
// intentionally disagree on quota-met habits.
func (h *Habit) IsScheduledOn(date time.Time) bool {
	if h.Frequency == FreqNTimesWeek {
		return true
	}
	return h.IsDueOn(date)
}

func (h *Habit) onInterval(date time.Time) bool {
	if h.Interval < 1 || h.StartDate == "" {
		return false
	}

	start, err := ParseDateKey(h.StartDate)
	if err != nil {
		return false
	}

	diff := daysBetween(start, date)
	return diff >= 0 && diff%h.Interval == 0
}

// CompletedCountInWeek counts the completed days within the Monday-start
// week containing date. The whole week is scanned, not just days up to
// date: evaluating a past date must see completions recorded later in the
// same week.
func (h *Habit) CompletedCountInWeek(date time.Time) int {
	start := WeekStart(date)
	count := 0
	for i := 0; i < 7; i++ {
		if h.IsCompletedOn(DateKey(start.AddDate(0, 0, i))) {
			count++
		}
	}
	return count
}

// TrendOn classifies the habit's trailing 30-day completion ratio ending
// at today. The denominator is always 30, regardless of how often the
// recurrence makes the habit applicable; sparse recurrences therefore
// skew toward Breaking. That matches the shipped behavior and is kept
// as-is.
func (h *Habit) TrendOn(today time.Time) string {
	completed := 0
	for i := 0; i < trendWindowDays; i++ {
		if h.IsCompletedOn(DateKey(today.AddDate(0, 0, -i))) {
			completed++
		}
	}

	rate := float64(completed) / float64(trendWindowDays)
	switch {
	case rate >= 2.0/3.0:
		return TrendAccelerating
	case rate >= 1.0/3.0:
		return TrendCruising
	default:
		return TrendBreaking
	}
}
