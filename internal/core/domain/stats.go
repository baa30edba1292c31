package domain

// DailyProgress is one day's completion ratio over the habits scheduled
// that day. Ratio is a percentage; AllDone drives the success affordance
// at exactly 100%.
type DailyProgress struct {
	Date      string  `json:"date"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Ratio     float64 `json:"ratio"`
	AllDone   bool    `json:"all_done"`
}

// DayCount is one bar of the weekly overview chart: how many habits were
// completed on that date, with no applicability filtering.
type DayCount struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Completed int    `json:"completed"`
}

// HabitTrend pairs a habit with its 30-day trend classification.
type HabitTrend struct {
	HabitID string `json:"habit_id"`
	Name    string `json:"name"`
	Trend   string `json:"trend"`
}
