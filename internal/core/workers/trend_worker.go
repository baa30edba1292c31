package workers

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/habitualhq/habitual/internal/core/domain"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStats(ctx context.Context, id string, current, longest int, trend string) error
}

type TrendJob struct {
	HabitID string
}

// TrendWorker recomputes a habit's cached streak counters and 30-day
// trend label in the background whenever its ledger changes. The queue is
// lossy: dropping a job only delays the recompute until the next
// mutation.
type TrendWorker struct {
	repo domain.HabitRepository
	log  *zap.Logger
	jobs chan TrendJob
}

func NewTrendWorker(repo domain.HabitRepository, log *zap.Logger) *TrendWorker {
	return &TrendWorker{
		repo: repo,
		log:  log,
		jobs: make(chan TrendJob, 100),
	}
}

func (w *TrendWorker) Start(ctx context.Context) {
	go func() {
		w.log.Info("trend worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("trend worker shutting down")
				return
			}
		}
	}()
}

func (w *TrendWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- TrendJob{HabitID: habitID}:
	default:
		w.log.Warn("trend worker queue full, dropping job", zap.String("habit_id", habitID))
	}
}

func (w *TrendWorker) processJob(ctx context.Context, job TrendJob) {
	habit, err := w.repo.GetByID(ctx, job.HabitID)
	if err != nil {
		w.log.Error("trend worker: fetch failed", zap.String("habit_id", job.HabitID), zap.Error(err))
		return
	}

	now := time.Now().UTC()
	current, longest := CalculateStreaks(habit, now)
	trend := habit.TrendOn(now)

	if habit.CurrentStreak == current && habit.LongestStreak == longest && habit.Trend == trend {
		return
	}

	if err := w.repo.UpdateStats(ctx, habit.ID, current, longest, trend); err != nil {
		w.log.Error("trend worker: stats write failed", zap.String("habit_id", habit.ID), zap.Error(err))
		return
	}

	w.log.Debug("habit stats updated",
		zap.String("habit_id", habit.ID),
		zap.Int("current_streak", current),
		zap.Int("longest_streak", longest),
		zap.String("trend", trend),
	)
}

// CalculateStreaks walks the habit's completed days through the same
// completion predicate every other consumer uses. The current streak
// counts consecutive completed days ending today or yesterday; the
// longest streak is the best run anywhere in the ledger.
func CalculateStreaks(habit *domain.Habit, today time.Time) (int, int) {
	var days []time.Time
	for key := range habit.Completed {
		if !habit.IsCompletedOn(key) {
			continue
		}
		t, err := domain.ParseDateKey(key)
		if err != nil {
			continue
		}
		days = append(days, t)
	}

	if len(days) == 0 {
		return 0, 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	current := 0
	todayKey := domain.DateKey(today)
	yesterdayKey := domain.DateKey(today.AddDate(0, 0, -1))
	lastKey := domain.DateKey(days[0])

	if lastKey == todayKey || lastKey == yesterdayKey {
		current = 1
		for i := 0; i < len(days)-1; i++ {
			if days[i].Sub(days[i+1]) == 24*time.Hour {
				current++
			} else {
				break
			}
		}
	}

	longest := 0
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if days[i].Sub(days[i+1]) == 24*time.Hour {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	return current, longest
}
