package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/habitualhq/habitual/internal/core/domain"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresHabitRepository) scanRow(row scannable) (*domain.Habit, error) {
	var h domain.Habit
	var daysJSON, microsJSON, ledgerJSON []byte
	var startDate, trend sql.NullString

	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Priority, &h.TimeOfDay, &h.Category,
		&h.Frequency, &daysJSON, &h.TimesPerWeek, &h.Interval, &startDate,
		&h.TrackingType, &h.GoalValue, &h.GoalUnit, &microsJSON,
		&ledgerJSON, &h.Order,
		&h.CurrentStreak, &h.LongestStreak, &trend,
		&h.Version, &h.CreatedAt, &h.UpdatedAt, &h.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	h.StartDate = startDate.String
	h.Trend = trend.String

	if len(daysJSON) > 0 {
		if err := json.Unmarshal(daysJSON, &h.Days); err != nil {
			return nil, fmt.Errorf("failed to unmarshal days: %w", err)
		}
	}
	if len(microsJSON) > 0 {
		if err := json.Unmarshal(microsJSON, &h.MicroHabits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal micro habits: %w", err)
		}
	}

	h.Completed = domain.Ledger{}
	if len(ledgerJSON) > 0 {
		if err := json.Unmarshal(ledgerJSON, &h.Completed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal completion ledger: %w", err)
		}
	}

	return &h, nil
}

func (r *PostgresHabitRepository) marshalFields(h *domain.Habit) (days, micros, ledger []byte, err error) {
	if days, err = json.Marshal(h.Days); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal days: %w", err)
	}
	if micros, err = json.Marshal(h.MicroHabits); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal micro habits: %w", err)
	}
	if ledger, err = json.Marshal(h.Completed); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal completion ledger: %w", err)
	}
	return days, micros, ledger, nil
}

const habitColumns = `
        id, user_id, name, priority, time_of_day, category,
        frequency, days, times_per_week, interval, start_date,
        tracking_type, goal_value, goal_unit, micro_habits,
        completed, sort_order,
        current_streak, longest_streak, trend,
        version, created_at, updated_at, deleted_at`

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	daysJSON, microsJSON, ledgerJSON, err := r.marshalFields(h)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO habits (
            id, user_id, name, priority, time_of_day, category,
            frequency, days, times_per_week, interval, start_date,
            tracking_type, goal_value, goal_unit, micro_habits,
            completed, sort_order,
            current_streak, longest_streak, trend,
            version, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6,
            $7, $8, $9, $10, NULLIF($11, ''),
            $12, $13, $14, $15,
            $16, $17,
            0, 0, NULL,
            1, $18, $19
        )`

	_, err = r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Priority, h.TimeOfDay, h.Category,
		h.Frequency, daysJSON, h.TimesPerWeek, h.Interval, h.StartDate,
		h.TrackingType, h.GoalValue, h.GoalUnit, microsJSON,
		ledgerJSON, h.Order,
		h.CreatedAt, h.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	h.Version = 1
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 AND deleted_at IS NULL`

	row := r.db.QueryRowContext(ctx, query, id)

	h, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit

	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	daysJSON, microsJSON, ledgerJSON, err := r.marshalFields(h)
	if err != nil {
		return err
	}

	query := `
        UPDATE habits SET
            name=$1, priority=$2, time_of_day=$3, category=$4,
            frequency=$5, days=$6, times_per_week=$7, interval=$8, start_date=NULLIF($9, ''),
            tracking_type=$10, goal_value=$11, goal_unit=$12, micro_habits=$13,
            completed=$14, sort_order=$15,
            updated_at=NOW(), version = version + 1
        WHERE id=$16 AND version=$17 AND deleted_at IS NULL
        RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		h.Name, h.Priority, h.TimeOfDay, h.Category,
		h.Frequency, daysJSON, h.TimesPerWeek, h.Interval, h.StartDate,
		h.TrackingType, h.GoalValue, h.GoalUnit, microsJSON,
		ledgerJSON, h.Order,
		h.ID, h.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time

	if err := row.Scan(&newVersion, &newUpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var count int
			existsQuery := `SELECT count(*) FROM habits WHERE id = $1 AND deleted_at IS NULL`
			if checkErr := r.db.QueryRowContext(ctx, existsQuery, h.ID).Scan(&count); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}
			if count == 0 {
				return domain.ErrHabitNotFound
			}
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	h.Version = newVersion
	h.UpdatedAt = newUpdatedAt

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	query := `
        UPDATE habits
        SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
        WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

// UpdateOrder writes only the sort position. It deliberately skips the
// version bump: reorders are batched one call per habit and must not
// conflict with each other.
func (r *PostgresHabitRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	query := `
        UPDATE habits
        SET sort_order = $1, updated_at = NOW()
        WHERE id = $2 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, order, id)
	if err != nil {
		return fmt.Errorf("order update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

func (r *PostgresHabitRepository) UpdateStats(ctx context.Context, id string, current, longest int, trend string) error {
	query := `
        UPDATE habits
        SET current_streak = $1, longest_streak = $2, trend = NULLIF($3, '')
        WHERE id = $4 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, current, longest, trend, id)
	if err != nil {
		return fmt.Errorf("stats update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
