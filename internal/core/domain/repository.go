package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound        = errors.New("habit not found")
	ErrHabitConflict        = errors.New("habit version conflict")
	ErrJournalEntryNotFound = errors.New("journal entry not found")
)

type HabitRepository interface {
	// Create persists a new habit definition with an empty ledger.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves an active habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all active habits owned by a user, ordered
	// by sort position.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update writes the full habit record, ledger included.
	// Implementations must apply optimistic locking on Version.
	Update(ctx context.Context, habit *Habit) error

	// Delete removes a habit and its entire completion ledger.
	Delete(ctx context.Context, id string) error

	// UpdateOrder writes only the sort position of one habit. Reorders
	// issue one call per habit and are not atomic across the batch.
	UpdateOrder(ctx context.Context, id string, order int) error

	// UpdateStats writes the worker-derived streak and trend fields
	// without bumping the record version.
	UpdateStats(ctx context.Context, id string, current, longest int, trend string) error
}

type JournalRepository interface {
	// Get retrieves the entry for one date key, or ErrJournalEntryNotFound
	// when the user never wrote one for that day.
	Get(ctx context.Context, userID, dateKey string) (*JournalEntry, error)

	// Save upserts the entry for its date key.
	Save(ctx context.Context, entry *JournalEntry) error
}

type GamificationRepository interface {
	// Get returns the user's state, or a fresh level-1 state when the
	// user has none yet.
	Get(ctx context.Context, userID string) (*GamificationState, error)

	Save(ctx context.Context, state *GamificationState) error
}
