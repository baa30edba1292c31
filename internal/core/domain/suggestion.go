package domain

import "context"

// SuggestionGroup is one category of suggested habit names returned by
// the suggestion collaborator.
type SuggestionGroup struct {
	Category   string   `json:"category"`
	HabitNames []string `json:"habit_names"`
}

// PackHabit is a habit template inside a themed pack. It carries the
// user-editable fields only; ids and ledgers are assigned at creation.
type PackHabit struct {
	Name         string   `json:"name"`
	Priority     string   `json:"priority"`
	TimeOfDay    string   `json:"time_of_day"`
	Frequency    string   `json:"frequency"`
	TrackingType string   `json:"tracking_type"`
	GoalValue    *float64 `json:"goal_value,omitempty"`
	GoalUnit     string   `json:"goal_unit,omitempty"`
	Category     string   `json:"category,omitempty"`
}

type HabitPack struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Habits      []PackHabit `json:"habits"`
}

// Suggester is the opaque AI-suggestion collaborator. Neither call is
// deterministic; both may fail independently of the core.
type Suggester interface {
	Suggest(ctx context.Context, interests, goals, recentlyCompleted string) ([]SuggestionGroup, error)

	// SuggestPack returns nil (no error) when the collaborator declines
	// to produce a pack for the theme.
	SuggestPack(ctx context.Context, theme string) (*HabitPack, error)
}
