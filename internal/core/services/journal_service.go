package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/habitualhq/habitual/internal/core/domain"
)

// JournalService reads and writes the per-day reflection entries. A day
// with no entry reads back as an empty one rather than an error, so the
// client can always render the editor.
type JournalService struct {
	repo domain.JournalRepository
}

func NewJournalService(repo domain.JournalRepository) *JournalService {
	return &JournalService{repo: repo}
}

func (s *JournalService) EntryFor(ctx context.Context, userID string, date time.Time) (*domain.JournalEntry, error) {
	dateKey := date.Format(domain.DateKeyLayout)

	entry, err := s.repo.Get(ctx, userID, dateKey)
	if err != nil {
		if errors.Is(err, domain.ErrJournalEntryNotFound) {
			return &domain.JournalEntry{UserID: userID, Date: dateKey}, nil
		}
		return nil, fmt.Errorf("loading journal entry: %w", err)
	}

	return entry, nil
}

// Save replaces the entry for the given day. Empty content is a valid
// entry: clearing the textarea and saving is how users erase a day.
func (s *JournalService) Save(ctx context.Context, userID string, date time.Time, content string) (*domain.JournalEntry, error) {
	entry := &domain.JournalEntry{
		UserID:    userID,
		Date:      date.Format(domain.DateKeyLayout),
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving journal entry: %w", err)
	}

	return entry, nil
}
