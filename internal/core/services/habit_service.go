package services

import (
	"context"
	"fmt"

	"github.com/habitualhq/habitual/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID       string
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
	MicroHabits  []domain.MicroHabit
}

type UpdateHabitInput struct {
	ID           string
	UserID       string
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
	MicroHabits  []domain.MicroHabit
	Version      int
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.UserID)
	if err != nil {
		return nil, err
	}

	cfg := domain.HabitConfig{
		Name:         input.Name,
		Priority:     mergeString(input.Priority, habit.Priority),
		TimeOfDay:    mergeString(input.TimeOfDay, habit.TimeOfDay),
		Category:     input.Category,
		Frequency:    mergeString(input.Frequency, habit.Frequency),
		Days:         input.Days,
		TimesPerWeek: input.TimesPerWeek,
		Interval:     input.Interval,
		TrackingType: mergeString(input.TrackingType, habit.TrackingType),
		GoalValue:    input.GoalValue,
		GoalUnit:     input.GoalUnit,
		MicroHabits:  input.MicroHabits,
	}

	if err := habit.Configure(cfg); err != nil {
		return nil, err
	}

	// New habits land at the end of their time-of-day bucket.
	existing, err := s.repo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("habit service: listing for order assignment: %w", err)
	}
	habit.Order = countInBucket(existing, habit.TimeOfDay)

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func countInBucket(habits []*domain.Habit, timeOfDay string) int {
	n := 0
	for _, h := range habits {
		if h.TimeOfDay == timeOfDay {
			n++
		}
	}
	return n
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Update edits a habit's definition. The completion ledger is carried
// over untouched so history written under the old rule survives the edit.
func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	cfg := domain.HabitConfig{
		Name:         mergeString(input.Name, habit.Name),
		Priority:     mergeString(input.Priority, habit.Priority),
		TimeOfDay:    mergeString(input.TimeOfDay, habit.TimeOfDay),
		Category:     mergeString(input.Category, habit.Category),
		Frequency:    mergeString(input.Frequency, habit.Frequency),
		Days:         input.Days,
		TimesPerWeek: input.TimesPerWeek,
		Interval:     input.Interval,
		TrackingType: mergeString(input.TrackingType, habit.TrackingType),
		GoalValue:    input.GoalValue,
		GoalUnit:     mergeString(input.GoalUnit, habit.GoalUnit),
		MicroHabits:  input.MicroHabits,
	}

	if cfg.Days == nil {
		cfg.Days = habit.Days
	}
	if cfg.TimesPerWeek == 0 {
		cfg.TimesPerWeek = habit.TimesPerWeek
	}
	if cfg.Interval == 0 {
		cfg.Interval = habit.Interval
	}
	if cfg.GoalValue == nil {
		cfg.GoalValue = habit.GoalValue
	}
	if cfg.MicroHabits == nil {
		cfg.MicroHabits = habit.MicroHabits
	}

	if err := habit.Configure(cfg); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// Delete removes the habit and its entire ledger.
func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
