package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/habitualhq/habitual/internal/core/domain"
)

// DefaultHighlightTTL is how long the transient "just completed" marker
// survives before self-clearing.
const DefaultHighlightTTL = 1500 * time.Millisecond

// GamificationService reacts to completion-state transitions with point
// and level changes, and keeps the short-lived per-habit completion
// highlight. The highlight is process-local state, never persisted.
type GamificationService struct {
	repo         domain.GamificationRepository
	log          *zap.Logger
	highlightTTL time.Duration

	mu         sync.Mutex
	highlights map[string]*time.Timer
}

func NewGamificationService(repo domain.GamificationRepository, log *zap.Logger, highlightTTL time.Duration) *GamificationService {
	if highlightTTL <= 0 {
		highlightTTL = DefaultHighlightTTL
	}
	return &GamificationService{
		repo:         repo,
		log:          log,
		highlightTTL: highlightTTL,
		highlights:   make(map[string]*time.Timer),
	}
}

func (s *GamificationService) Get(ctx context.Context, userID string) (*domain.GamificationState, error) {
	return s.repo.Get(ctx, userID)
}

// ApplyTransition reconciles the point ledger with a completion-state
// change. Equal before/after states are a no-op: re-saving an already
// completed day or nudging a quantitative value that stays over goal
// never moves points.
func (s *GamificationService) ApplyTransition(ctx context.Context, userID, habitID string, wasDone, isDone bool) {
	if wasDone == isDone {
		return
	}

	state, err := s.repo.Get(ctx, userID)
	if err != nil {
		s.log.Error("gamification state unavailable, skipping transition",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}

	if isDone {
		state.ApplyCompletion()
		s.markJustCompleted(habitID)
	} else {
		state.ApplyRemoval()
	}

	if err := s.repo.Save(ctx, state); err != nil {
		s.log.Error("failed to persist gamification state",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

// JustCompleted reports whether a habit's completion highlight is still
// live.
func (s *GamificationService) JustCompleted(habitID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.highlights[habitID]
	return ok
}

// markJustCompleted arms the highlight for a habit. A repeat completion
// replaces the pending expiry instead of stacking a second timer.
func (s *GamificationService) markJustCompleted(habitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.highlights[habitID]; ok {
		t.Stop()
	}

	s.highlights[habitID] = time.AfterFunc(s.highlightTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.highlights, habitID)
	})
}

// Stop cancels all pending highlight timers. Called on shutdown.
func (s *GamificationService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.highlights {
		t.Stop()
		delete(s.highlights, id)
	}
}
