package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/habitualhq/habitual/internal/core/domain"
)

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[habit.ID]; exists {
		return domain.ErrHabitConflict
	}

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].Order != habits[j].Order {
			return habits[i].Order < habits[j].Order
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryHabitRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}

	h.Order = order
	return nil
}

func (r *InMemoryHabitRepository) UpdateStats(ctx context.Context, id string, current, longest int, trend string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}

	h.CurrentStreak = current
	h.LongestStreak = longest
	h.Trend = trend
	return nil
}

type InMemoryJournalRepository struct {
	store map[string]*domain.JournalEntry

	mu sync.RWMutex
}

func NewInMemoryJournalRepository() *InMemoryJournalRepository {
	return &InMemoryJournalRepository{
		store: make(map[string]*domain.JournalEntry),
	}
}

func journalKey(userID, dateKey string) string {
	return userID + "/" + dateKey
}

func (r *InMemoryJournalRepository) Get(ctx context.Context, userID, dateKey string) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[journalKey(userID, dateKey)]
	if !ok {
		return nil, domain.ErrJournalEntryNotFound
	}
	clone := *entry
	return &clone, nil
}

func (r *InMemoryJournalRepository) Save(ctx context.Context, entry *domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *entry
	r.store[journalKey(entry.UserID, entry.Date)] = &clone
	return nil
}

type InMemoryGamificationRepository struct {
	store map[string]*domain.GamificationState

	mu sync.RWMutex
}

func NewInMemoryGamificationRepository() *InMemoryGamificationRepository {
	return &InMemoryGamificationRepository{
		store: make(map[string]*domain.GamificationState),
	}
}

func (r *InMemoryGamificationRepository) Get(ctx context.Context, userID string) (*domain.GamificationState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.store[userID]
	if !ok {
		return domain.NewGamificationState(userID), nil
	}
	clone := *state
	return &clone, nil
}

func (r *InMemoryGamificationRepository) Save(ctx context.Context, state *domain.GamificationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *state
	r.store[state.UserID] = &clone
	return nil
}
