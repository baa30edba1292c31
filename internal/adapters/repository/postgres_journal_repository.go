package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/habitualhq/habitual/internal/core/domain"
)

type PostgresJournalRepository struct {
	db *sqlx.DB
}

func NewPostgresJournalRepository(db *sqlx.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

func (r *PostgresJournalRepository) Get(ctx context.Context, userID, dateKey string) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry

	query := `
        SELECT user_id, entry_date, content, updated_at
        FROM journal_entries
        WHERE user_id = $1 AND entry_date = $2`

	err := r.db.QueryRowContext(ctx, query, userID, dateKey).Scan(
		&entry.UserID, &entry.Date, &entry.Content, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJournalEntryNotFound
		}
		return nil, fmt.Errorf("journal query failed: %w", err)
	}

	return &entry, nil
}

func (r *PostgresJournalRepository) Save(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
        INSERT INTO journal_entries (user_id, entry_date, content, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, entry_date) DO UPDATE SET
            content = EXCLUDED.content,
            updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.Date, entry.Content, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("journal upsert failed: %w", err)
	}

	return nil
}
