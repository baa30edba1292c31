package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
)

func TestOrderService_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: reassigns contiguous positions", func(t *testing.T) {
		repo := NewMockRepo()
		svc := services.NewOrderService(repo, testLogger())

		a := seedHabit(t, repo, "u1", "A", domain.TimeMorning, 0)
		b := seedHabit(t, repo, "u1", "B", domain.TimeMorning, 1)
		c := seedHabit(t, repo, "u1", "C", domain.TimeMorning, 2)

		err := svc.Reorder(ctx, "u1", domain.TimeMorning, []string{c.ID, a.ID, b.ID})
		require.NoError(t, err)

		for i, id := range []string{c.ID, a.ID, b.ID} {
			h, _ := repo.GetByID(ctx, id)
			assert.Equal(t, i, h.Order)
		}
	})

	t.Run("Error: id from another bucket rejects before any write", func(t *testing.T) {
		repo := NewMockRepo()
		svc := services.NewOrderService(repo, testLogger())

		a := seedHabit(t, repo, "u1", "A", domain.TimeMorning, 0)
		e := seedHabit(t, repo, "u1", "E", domain.TimeEvening, 0)

		err := svc.Reorder(ctx, "u1", domain.TimeMorning, []string{e.ID, a.ID})

		assert.ErrorIs(t, err, services.ErrCrossBucketMove)
		assert.Empty(t, repo.orderWrites, "no position may change on a rejected drop")

		got, _ := repo.GetByID(ctx, e.ID)
		assert.Equal(t, 0, got.Order)
	})

	t.Run("Error: unknown id", func(t *testing.T) {
		repo := NewMockRepo()
		svc := services.NewOrderService(repo, testLogger())

		seedHabit(t, repo, "u1", "A", domain.TimeMorning, 0)

		err := svc.Reorder(ctx, "u1", domain.TimeMorning, []string{"ghost"})
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Error: incomplete cover of the bucket", func(t *testing.T) {
		repo := NewMockRepo()
		svc := services.NewOrderService(repo, testLogger())

		a := seedHabit(t, repo, "u1", "A", domain.TimeMorning, 0)
		seedHabit(t, repo, "u1", "B", domain.TimeMorning, 1)

		err := svc.Reorder(ctx, "u1", domain.TimeMorning, []string{a.ID})
		assert.ErrorIs(t, err, services.ErrBucketMismatch)
	})

	t.Run("Error: unknown bucket name", func(t *testing.T) {
		repo := NewMockRepo()
		svc := services.NewOrderService(repo, testLogger())

		err := svc.Reorder(ctx, "u1", "Dawn", nil)
		assert.ErrorIs(t, err, services.ErrUnknownBucket)
	})

	t.Run("Partial failure: batch continues, first error surfaces", func(t *testing.T) {
		repo := NewMockRepo()
		svc := services.NewOrderService(repo, testLogger())

		a := seedHabit(t, repo, "u1", "A", domain.TimeMorning, 0)
		b := seedHabit(t, repo, "u1", "B", domain.TimeMorning, 1)
		c := seedHabit(t, repo, "u1", "C", domain.TimeMorning, 2)

		repo.failOrderFor[b.ID] = errBoom

		err := svc.Reorder(ctx, "u1", domain.TimeMorning, []string{c.ID, b.ID, a.ID})

		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, []string{c.ID, a.ID}, repo.orderWrites, "later writes still happen")

		gotC, _ := repo.GetByID(ctx, c.ID)
		gotA, _ := repo.GetByID(ctx, a.ID)
		gotB, _ := repo.GetByID(ctx, b.ID)
		assert.Equal(t, 0, gotC.Order)
		assert.Equal(t, 2, gotA.Order)
		assert.Equal(t, 1, gotB.Order, "failed write leaves the old position")
	})
}
