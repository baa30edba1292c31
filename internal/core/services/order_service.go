package services

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/habitualhq/habitual/internal/core/domain"
)

var (
	ErrCrossBucketMove = errors.New("habits cannot be reordered across time-of-day groups")
	ErrBucketMismatch  = errors.New("reorder must cover exactly the habits of one time-of-day group")
	ErrUnknownBucket   = errors.New("unknown time-of-day group")
)

// OrderService reassigns contiguous sort positions within one time-of-day
// bucket. A reorder issues one write per habit; there is no rollback, so
// a partial failure can leave positions inconsistent until the next
// successful reorder.
type OrderService struct {
	repo domain.HabitRepository
	log  *zap.Logger
}

func NewOrderService(repo domain.HabitRepository, log *zap.Logger) *OrderService {
	return &OrderService{
		repo: repo,
		log:  log,
	}
}

func (s *OrderService) Reorder(ctx context.Context, userID, timeOfDay string, orderedIDs []string) error {
	if !validBucket(timeOfDay) {
		return ErrUnknownBucket
	}

	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}

	byID := make(map[string]*domain.Habit, len(habits))
	bucketSize := 0
	for _, h := range habits {
		byID[h.ID] = h
		if h.TimeOfDay == timeOfDay {
			bucketSize++
		}
	}

	// Reject before any write: a drop into a different bucket is a no-op.
	for _, id := range orderedIDs {
		h, ok := byID[id]
		if !ok {
			return domain.ErrHabitNotFound
		}
		if h.TimeOfDay != timeOfDay {
			return ErrCrossBucketMove
		}
	}
	if len(orderedIDs) != bucketSize {
		return ErrBucketMismatch
	}

	var firstErr error
	for i, id := range orderedIDs {
		if err := s.repo.UpdateOrder(ctx, id, i); err != nil {
			s.log.Warn("order write failed, continuing batch",
				zap.String("habit_id", id),
				zap.Int("order", i),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func validBucket(timeOfDay string) bool {
	for _, b := range domain.TimeOfDayBuckets {
		if b == timeOfDay {
			return true
		}
	}
	return false
}

func sortedBucket(habits []*domain.Habit, timeOfDay string) []*domain.Habit {
	var bucket []*domain.Habit
	for _, h := range habits {
		if h.TimeOfDay == timeOfDay {
			bucket = append(bucket, h)
		}
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].Order < bucket[j].Order
	})
	return bucket
}
