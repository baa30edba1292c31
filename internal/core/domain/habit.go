package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidPriority    = errors.New("invalid priority (must be High, Medium, or Low)")
	ErrInvalidTimeOfDay   = errors.New("invalid time of day")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidTracking    = errors.New("invalid tracking type (must be Checkbox or Quantitative)")
	ErrDaysRequired       = errors.New("custom frequency requires at least one weekday")
	ErrInvalidWeekday     = errors.New("invalid weekday tag (must be Mon..Sun)")
	ErrTimesPerWeekRange  = errors.New("times per week must be between 1 and 7")
	ErrIntervalTooSmall   = errors.New("interval must be at least 2 days")
	ErrGoalRequired       = errors.New("quantitative tracking requires a goal value and unit")
	ErrMicroHabitNoName   = errors.New("micro-habit name cannot be empty")
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	TimeMorning   = "Morning"
	TimeAfternoon = "Afternoon"
	TimeEvening   = "Evening"
	TimeAnytime   = "Anytime"

	FreqDaily      = "Daily"
	FreqWeekly     = "Weekly"
	FreqCustom     = "Custom"
	FreqNTimesWeek = "N-times-week"
	FreqEveryNDays = "Every-n-days"

	TrackingCheckbox     = "Checkbox"
	TrackingQuantitative = "Quantitative"

	MaxNameLen = 100
)

// TimeOfDayBuckets is the fixed display order of grouping buckets.
var TimeOfDayBuckets = []string{TimeMorning, TimeAfternoon, TimeEvening, TimeAnytime}

type MicroHabit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Habit struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Priority  string `json:"priority"`
	TimeOfDay string `json:"time_of_day"`
	Category  string `json:"category,omitempty"`

	Frequency    string   `json:"frequency"`
	Days         []string `json:"days,omitempty"`
	TimesPerWeek int      `json:"times_per_week,omitempty"`
	Interval     int      `json:"interval,omitempty"`
	// StartDate anchors Every-n-days interval arithmetic. Stamped once
	// when the habit first becomes interval-based, never reset by edits.
	StartDate string `json:"start_date,omitempty"`

	TrackingType string       `json:"tracking_type"`
	GoalValue    *float64     `json:"goal_value,omitempty"`
	GoalUnit     string       `json:"goal_unit,omitempty"`
	MicroHabits  []MicroHabit `json:"micro_habits,omitempty"`

	Completed Ledger `json:"completed"`

	Order int `json:"order"`

	// Derived analytics cached by the trend worker.
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Trend         string `json:"trend,omitempty"`

	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// HabitConfig carries every user-editable field. Configure validates the
// combination and clears fields that do not belong to the chosen
// frequency or tracking kind.
type HabitConfig struct {
	Name         string
	Priority     string
	TimeOfDay    string
	Category     string
	Frequency    string
	Days         []string
	TimesPerWeek int
	Interval     int
	TrackingType string
	GoalValue    *float64
	GoalUnit     string
	MicroHabits  []MicroHabit
}

func NewHabit(name, userID string) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrHabitNameTooLong
	}

	now := time.Now().UTC()

	return &Habit{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Priority:     PriorityMedium,
		TimeOfDay:    TimeAnytime,
		Frequency:    FreqDaily,
		TrackingType: TrackingCheckbox,
		Completed:    Ledger{},
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func normalizeDays(days []string) ([]string, error) {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if !IsValidWeekdayTag(d) {
			return nil, ErrInvalidWeekday
		}
		seen[d] = true
	}

	var out []string
	for _, d := range WeekdayTags {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out, nil
}

func normalizeMicroHabits(micros []MicroHabit) ([]MicroHabit, error) {
	if len(micros) == 0 {
		return nil, nil
	}

	out := make([]MicroHabit, 0, len(micros))
	for _, m := range micros {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, ErrMicroHabitNoName
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		out = append(out, MicroHabit{ID: m.ID, Name: name})
	}
	return out, nil
}

// Configure applies a full set of user-editable fields. The completion
// ledger is untouched: history written under a superseded rule is
// preserved and the evaluators keep operating against it.
func (h *Habit) Configure(cfg HabitConfig) error {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrHabitNameTooLong
	}

	switch cfg.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return ErrInvalidPriority
	}

	switch cfg.TimeOfDay {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeAnytime:
	default:
		return ErrInvalidTimeOfDay
	}

	var days []string
	var err error

	switch cfg.Frequency {
	case FreqDaily, FreqWeekly:
	case FreqCustom:
		if days, err = normalizeDays(cfg.Days); err != nil {
			return err
		}
		if len(days) == 0 {
			return ErrDaysRequired
		}
	case FreqNTimesWeek:
		if cfg.TimesPerWeek < 1 || cfg.TimesPerWeek > 7 {
			return ErrTimesPerWeekRange
		}
	case FreqEveryNDays:
		if cfg.Interval < 2 {
			return ErrIntervalTooSmall
		}
	default:
		return ErrInvalidFrequency
	}

	switch cfg.TrackingType {
	case TrackingCheckbox:
	case TrackingQuantitative:
		if cfg.GoalValue == nil || *cfg.GoalValue <= 0 || strings.TrimSpace(cfg.GoalUnit) == "" {
			return ErrGoalRequired
		}
	default:
		return ErrInvalidTracking
	}

	micros, err := normalizeMicroHabits(cfg.MicroHabits)
	if err != nil {
		return err
	}

	h.Name = name
	h.Priority = cfg.Priority
	h.TimeOfDay = cfg.TimeOfDay
	h.Category = strings.TrimSpace(cfg.Category)
	h.Frequency = cfg.Frequency
	h.TrackingType = cfg.TrackingType
	h.MicroHabits = micros

	h.Days = nil
	h.TimesPerWeek = 0
	h.Interval = 0
	h.GoalValue = nil
	h.GoalUnit = ""

	switch cfg.Frequency {
	case FreqCustom:
		h.Days = days
	case FreqNTimesWeek:
		h.TimesPerWeek = cfg.TimesPerWeek
	case FreqEveryNDays:
		h.Interval = cfg.Interval
		if h.StartDate == "" {
			h.StartDate = DateKey(time.Now().UTC())
		}
	}

	if cfg.TrackingType == TrackingQuantitative {
		v := *cfg.GoalValue
		h.GoalValue = &v
		h.GoalUnit = strings.TrimSpace(cfg.GoalUnit)
	}

	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) ChangePosition(newOrder int) {
	h.Order = newOrder
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) ensureLedger() {
	if h.Completed == nil {
		h.Completed = Ledger{}
	}
}

// ToggleCheckbox flips the day's value strictly between 0 and 1. Any
// recorded value other than exactly 1 toggles to 1, so two toggles always
// land back on the starting state.
func (h *Habit) ToggleCheckbox(dateKey string) {
	h.ensureLedger()
	if h.Completed.On(dateKey).Numeric() == 1 {
		h.Completed[dateKey] = NumericEntry(0)
	} else {
		h.Completed[dateKey] = NumericEntry(1)
	}
	h.UpdatedAt = time.Now().UTC()
}

// SetProgress overwrites the day's magnitude. Negative input clamps to 0.
func (h *Habit) SetProgress(dateKey string, value float64) {
	h.ensureLedger()
	h.Completed[dateKey] = NumericEntry(value)
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) IncrementProgress(dateKey string) {
	h.SetProgress(dateKey, h.Completed.On(dateKey).Numeric()+1)
}

func (h *Habit) DecrementProgress(dateKey string) {
	h.SetProgress(dateKey, h.Completed.On(dateKey).Numeric()-1)
}

func (h *Habit) SetMicroHabitDone(dateKey, microID string, done bool) {
	h.ensureLedger()
	m := h.Completed.On(dateKey).subtaskCopy()
	m[microID] = done
	h.Completed[dateKey] = Entry{kind: entrySubtasks, subtasks: m}
	h.UpdatedAt = time.Now().UTC()
}
