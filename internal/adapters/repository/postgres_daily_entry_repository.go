package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

const entryColumns = `
	id, habit_id, user_id, entry_date, target_dose, actual_value,
	operations, notes, version, created_at, updated_at, deleted_at`

func (r *PostgresEntryRepository) Create(ctx context.Context, entry *domain.DailyEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO daily_entries (` + entryColumns + `)
		VALUES (
			:id, :habit_id, :user_id, :entry_date, :target_dose, :actual_value,
			:operations, :notes, :version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		switch pgCode(err) {
		case pgForeignKeyViolation:
			return fmt.Errorf("referenced habit or user does not exist: %w", domain.ErrHabitNotFound)
		case pgUniqueViolation:
			return domain.ErrEntryConflict
		}
		return err
	}
	return nil
}

func (r *PostgresEntryRepository) GetByID(ctx context.Context, id string) (*domain.DailyEntry, error) {
	var entry domain.DailyEntry
	query := `SELECT ` + entryColumns + ` FROM daily_entries WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresEntryRepository) GetByHabitAndDate(ctx context.Context, habitID string, date domain.Date) (*domain.DailyEntry, error) {
	var entry domain.DailyEntry
	query := `
		SELECT ` + entryColumns + ` FROM daily_entries
		WHERE habit_id = $1 AND entry_date = $2 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &entry, query, habitID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresEntryRepository) ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	entries := []*domain.DailyEntry{}

	query := `
		SELECT ` + entryColumns + ` FROM daily_entries
		WHERE habit_id = $1
		  AND entry_date >= $2
		  AND entry_date <= $3
		  AND deleted_at IS NULL
		ORDER BY entry_date DESC`

	if err := r.db.SelectContext(ctx, &entries, query, habitID, from, to); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresEntryRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	entries := []*domain.DailyEntry{}

	query := `
		SELECT ` + entryColumns + ` FROM daily_entries
		WHERE user_id = $1
		  AND entry_date BETWEEN $2 AND $3
		  AND deleted_at IS NULL
		ORDER BY entry_date ASC, habit_id ASC`

	if err := r.db.SelectContext(ctx, &entries, query, userID, from, to); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update bumps the version and succeeds only against the version the caller read.
func (r *PostgresEntryRepository) Update(ctx context.Context, entry *domain.DailyEntry) error {
	entry.Version++
	entry.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE daily_entries
		SET actual_value = :actual_value,
		    operations = :operations,
		    notes = :notes,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, entry.ID)
		if !exists {
			return domain.ErrEntryNotFound
		}
		return domain.ErrEntryConflict
	}

	return nil
}

func (r *PostgresEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE daily_entries
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

func (r *PostgresEntryRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM daily_entries WHERE id = $1 AND deleted_at IS NULL", id)
	return count > 0, err
}
