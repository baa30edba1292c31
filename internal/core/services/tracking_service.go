package services

import (
	"context"
	"time"

	"github.com/habitualhq/habitual/internal/core/domain"
)

// TrendEnqueuer accepts habit ids whose cached analytics need a
// background recompute.
type TrendEnqueuer interface {
	Enqueue(habitID string)
}

// TrackingService applies per-day progress mutations. Every mutation
// computes the next full-record state from the last known record, writes
// it once, and reports the completion-state transition to gamification.
type TrackingService struct {
	repo         domain.HabitRepository
	gamification *GamificationService
	trends       TrendEnqueuer
}

func NewTrackingService(repo domain.HabitRepository, gamification *GamificationService, trends TrendEnqueuer) *TrackingService {
	return &TrackingService{
		repo:         repo,
		gamification: gamification,
		trends:       trends,
	}
}

func (s *TrackingService) Toggle(ctx context.Context, habitID, userID string, date time.Time) (*domain.Habit, error) {
	return s.mutate(ctx, habitID, userID, date, func(h *domain.Habit, dateKey string) {
		h.ToggleCheckbox(dateKey)
	})
}

func (s *TrackingService) SetProgress(ctx context.Context, habitID, userID string, date time.Time, value float64) (*domain.Habit, error) {
	return s.mutate(ctx, habitID, userID, date, func(h *domain.Habit, dateKey string) {
		h.SetProgress(dateKey, value)
	})
}

func (s *TrackingService) Increment(ctx context.Context, habitID, userID string, date time.Time) (*domain.Habit, error) {
	return s.mutate(ctx, habitID, userID, date, func(h *domain.Habit, dateKey string) {
		h.IncrementProgress(dateKey)
	})
}

func (s *TrackingService) Decrement(ctx context.Context, habitID, userID string, date time.Time) (*domain.Habit, error) {
	return s.mutate(ctx, habitID, userID, date, func(h *domain.Habit, dateKey string) {
		h.DecrementProgress(dateKey)
	})
}

func (s *TrackingService) SetMicroHabit(ctx context.Context, habitID, userID string, date time.Time, microID string, done bool) (*domain.Habit, error) {
	return s.mutate(ctx, habitID, userID, date, func(h *domain.Habit, dateKey string) {
		h.SetMicroHabitDone(dateKey, microID, done)
	})
}

func (s *TrackingService) mutate(ctx context.Context, habitID, userID string, date time.Time, apply func(h *domain.Habit, dateKey string)) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	dateKey := domain.DateKey(date)
	wasDone := habit.IsCompletedOn(dateKey)

	apply(habit, dateKey)

	isDone := habit.IsCompletedOn(dateKey)

	// Persist before awarding points: a failed write must leave the
	// gamification ledger untouched.
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	if s.gamification != nil {
		s.gamification.ApplyTransition(ctx, userID, habitID, wasDone, isDone)
	}
	if s.trends != nil {
		s.trends.Enqueue(habitID)
	}

	return habit, nil
}
