package services

import (
	"context"
	"time"

	"github.com/habitualhq/habitual/internal/core/domain"
)

const weeklyWindowDays = 7

// ProgressService derives the read-side aggregates: daily completion
// ratio, weekly bar series, and per-habit trend classifications. All
// three consume the same completion predicate but apply different
// windowing policies.
type ProgressService struct {
	repo domain.HabitRepository
}

func NewProgressService(repo domain.HabitRepository) *ProgressService {
	return &ProgressService{
		repo: repo,
	}
}

// DailyProgress computes the completion ratio for one date. The
// denominator uses IsScheduledOn, so N-times-week habits are counted
// every day even after their weekly quota is met — the list view hides
// them, the progress card does not.
func (s *ProgressService) DailyProgress(ctx context.Context, userID string, date time.Time) (*domain.DailyProgress, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dateKey := domain.DateKey(date)
	progress := &domain.DailyProgress{Date: dateKey}

	for _, h := range habits {
		if !h.IsScheduledOn(date) {
			continue
		}
		progress.Total++
		if h.IsCompletedOn(dateKey) {
			progress.Completed++
		}
	}

	if progress.Total > 0 {
		progress.Ratio = float64(progress.Completed) / float64(progress.Total) * 100
		progress.AllDone = progress.Completed == progress.Total
	}

	return progress, nil
}

// WeeklyOverview returns one bar per day for the trailing 7 days ending
// at today, oldest first. Every habit completed on a date counts, with no
// applicability filtering.
func (s *ProgressService) WeeklyOverview(ctx context.Context, userID string, today time.Time) ([]domain.DayCount, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	series := make([]domain.DayCount, 0, weeklyWindowDays)
	for i := weeklyWindowDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		dateKey := domain.DateKey(date)

		count := 0
		for _, h := range habits {
			if h.IsCompletedOn(dateKey) {
				count++
			}
		}

		series = append(series, domain.DayCount{
			Date:      dateKey,
			Day:       domain.WeekdayTag(date),
			Completed: count,
		})
	}

	return series, nil
}

// TrendsForUser classifies every habit's trailing 30-day window.
func (s *ProgressService) TrendsForUser(ctx context.Context, userID string, today time.Time) ([]domain.HabitTrend, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	trends := make([]domain.HabitTrend, 0, len(habits))
	for _, h := range habits {
		trends = append(trends, domain.HabitTrend{
			HabitID: h.ID,
			Name:    h.Name,
			Trend:   h.TrendOn(today),
		})
	}

	return trends, nil
}

// DueOn filters the user's habits to those the list view shows for a
// date, grouped and ordered for display: Morning, Afternoon, Evening,
// Anytime buckets, ascending sort position within each.
func (s *ProgressService) DueOn(ctx context.Context, userID string, date time.Time) ([]*domain.Habit, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var due []*domain.Habit
	for _, bucket := range domain.TimeOfDayBuckets {
		for _, h := range sortedBucket(habits, bucket) {
			if h.IsDueOn(date) {
				due = append(due, h)
			}
		}
	}

	return due, nil
}
