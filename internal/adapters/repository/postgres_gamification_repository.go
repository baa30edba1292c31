package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/habitualhq/habitual/internal/core/domain"
)

type PostgresGamificationRepository struct {
	db *sqlx.DB
}

func NewPostgresGamificationRepository(db *sqlx.DB) *PostgresGamificationRepository {
	return &PostgresGamificationRepository{db: db}
}

// Get returns the user's point ledger, or a fresh level-1 state when the
// user has never earned points.
func (r *PostgresGamificationRepository) Get(ctx context.Context, userID string) (*domain.GamificationState, error) {
	var state domain.GamificationState

	query := `
        SELECT user_id, level, points, points_to_next_level, updated_at
        FROM gamification
        WHERE user_id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&state.UserID, &state.Level, &state.Points, &state.PointsToNextLevel, &state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewGamificationState(userID), nil
		}
		return nil, fmt.Errorf("gamification query failed: %w", err)
	}

	return &state, nil
}

func (r *PostgresGamificationRepository) Save(ctx context.Context, state *domain.GamificationState) error {
	query := `
        INSERT INTO gamification (user_id, level, points, points_to_next_level, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id) DO UPDATE SET
            level = EXCLUDED.level,
            points = EXCLUDED.points,
            points_to_next_level = EXCLUDED.points_to_next_level,
            updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		state.UserID, state.Level, state.Points, state.PointsToNextLevel, state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("gamification upsert failed: %w", err)
	}

	return nil
}
