package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/habitualhq/habitual/internal/core/domain"
)

// SuggestionService fronts the opaque AI collaborator. Failures are
// recovered locally: the caller gets an empty result, never an error, and
// nothing is retried. The collaborator is optional; a nil Suggester means
// the feature is unconfigured and every call yields the empty result.
type SuggestionService struct {
	suggester domain.Suggester
	log       *zap.Logger
}

func NewSuggestionService(suggester domain.Suggester, log *zap.Logger) *SuggestionService {
	return &SuggestionService{
		suggester: suggester,
		log:       log,
	}
}

func (s *SuggestionService) Suggest(ctx context.Context, interests, goals, recentlyCompleted string) []domain.SuggestionGroup {
	if s.suggester == nil {
		return []domain.SuggestionGroup{}
	}

	groups, err := s.suggester.Suggest(ctx, interests, goals, recentlyCompleted)
	if err != nil {
		s.log.Warn("suggestion collaborator failed", zap.Error(err))
		return []domain.SuggestionGroup{}
	}
	if groups == nil {
		groups = []domain.SuggestionGroup{}
	}
	return groups
}

func (s *SuggestionService) SuggestPack(ctx context.Context, theme string) *domain.HabitPack {
	if s.suggester == nil {
		return nil
	}

	pack, err := s.suggester.SuggestPack(ctx, theme)
	if err != nil {
		s.log.Warn("habit pack collaborator failed",
			zap.String("theme", theme),
			zap.Error(err),
		)
		return nil
	}
	return pack
}
