package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

// pauseList is stored as a JSONB array.
type pauseList []domain.Pause

func (p pauseList) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

func (p *pauseList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into pauses", src)
	}
}

// habitRow flattens the progression variant into nullable columns.
type habitRow struct {
	ID                string          `db:"id"`
	UserID            string          `db:"user_id"`
	Title             string          `db:"title"`
	Direction         string          `db:"direction"`
	StartValue        float64         `db:"start_value"`
	Unit              string          `db:"unit"`
	ProgressionMode   sql.NullString  `db:"progression_mode"`
	ProgressionValue  sql.NullFloat64 `db:"progression_value"`
	ProgressionPeriod sql.NullString  `db:"progression_period"`
	TargetValue       sql.NullFloat64 `db:"target_value"`
	EntryMode         string          `db:"entry_mode"`
	StartDate         domain.Date     `db:"start_date"`
	ArchivedOn        *domain.Date    `db:"archived_on"`
	Pauses            pauseList       `db:"pauses"`
	CurrentStreak     int             `db:"current_streak"`
	LongestStreak     int             `db:"longest_streak"`
	Version           int             `db:"version"`
	UpdatedAt         time.Time       `db:"updated_at"`
	DeletedAt         *time.Time      `db:"deleted_at"`
}

func toHabitRow(h *domain.Habit) habitRow {
	row := habitRow{
		ID:            h.ID,
		UserID:        h.UserID,
		Title:         h.Title,
		Direction:     string(h.Direction),
		StartValue:    h.StartValue,
		Unit:          h.Unit,
		EntryMode:     string(h.EntryMode),
		StartDate:     h.CreatedAt,
		ArchivedOn:    h.ArchivedAt,
		Pauses:        pauseList(h.Pauses),
		CurrentStreak: h.CurrentStreak,
		LongestStreak: h.LongestStreak,
		Version:       h.Version,
		UpdatedAt:     h.UpdatedAt,
		DeletedAt:     h.DeletedAt,
	}
	if p := h.Progression; p != nil {
		row.ProgressionMode = sql.NullString{String: string(p.Mode), Valid: true}
		row.ProgressionValue = sql.NullFloat64{Float64: p.Value, Valid: true}
		row.ProgressionPeriod = sql.NullString{String: string(p.Period), Valid: true}
	}
	if h.TargetValue != nil {
		row.TargetValue = sql.NullFloat64{Float64: *h.TargetValue, Valid: true}
	}
	return row
}

func (row habitRow) toDomain() *domain.Habit {
	h := &domain.Habit{
		ID:            row.ID,
		UserID:        row.UserID,
		Title:         row.Title,
		Direction:     domain.Direction(row.Direction),
		StartValue:    row.StartValue,
		Unit:          row.Unit,
		EntryMode:     domain.EntryMode(row.EntryMode),
		CreatedAt:     row.StartDate,
		ArchivedAt:    row.ArchivedOn,
		Pauses:        []domain.Pause(row.Pauses),
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
		Version:       row.Version,
		UpdatedAt:     row.UpdatedAt,
		DeletedAt:     row.DeletedAt,
	}
	if row.ProgressionMode.Valid {
		h.Progression = &domain.Progression{
			Mode:   domain.ProgressionMode(row.ProgressionMode.String),
			Value:  row.ProgressionValue.Float64,
			Period: domain.Period(row.ProgressionPeriod.String),
		}
	}
	if row.TargetValue.Valid {
		t := row.TargetValue.Float64
		h.TargetValue = &t
	}
	return h
}

const habitColumns = `
	id, user_id, title, direction, start_value, unit,
	progression_mode, progression_value, progression_period, target_value,
	entry_mode, start_date, archived_on, pauses,
	current_streak, longest_streak, version, updated_at, deleted_at`

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	if h.Version == 0 {
		h.Version = 1
	}

	query := `
		INSERT INTO habits (` + habitColumns + `)
		VALUES (
			:id, :user_id, :title, :direction, :start_value, :unit,
			:progression_mode, :progression_value, :progression_period, :target_value,
			:entry_mode, :start_date, :archived_on, :pauses,
			:current_streak, :longest_streak, :version, :updated_at, NULL
		)`

	if _, err := r.db.NamedExecContext(ctx, query, toHabitRow(h)); err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("failed to insert habit: %w", domain.ErrUserNotFound)
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var row habitRow
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	var rows []habitRow
	query := `
		SELECT ` + habitColumns + ` FROM habits
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY start_date ASC, id ASC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.Habit, 0, len(rows))
	for _, row := range rows {
		habits = append(habits, row.toDomain())
	}
	return habits, nil
}

// Update writes the configuration and lifecycle columns. Streak counters are
// owned by UpdateStreaks and left untouched.
func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
		UPDATE habits SET
			title = :title, direction = :direction, start_value = :start_value, unit = :unit,
			progression_mode = :progression_mode, progression_value = :progression_value,
			progression_period = :progression_period, target_value = :target_value,
			entry_mode = :entry_mode, archived_on = :archived_on, pauses = :pauses,
			updated_at = NOW(), version = version + 1
		WHERE id = :id AND version = :version AND deleted_at IS NULL
		RETURNING version, updated_at`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare update failed: %w", err)
	}
	defer stmt.Close()

	var out struct {
		Version   int       `db:"version"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := stmt.GetContext(ctx, &out, toHabitRow(h)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			exists, checkErr := r.exists(ctx, h.ID)
			if checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}
			if !exists {
				return domain.ErrHabitNotFound
			}
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	h.Version = out.Version
	h.UpdatedAt = out.UpdatedAt
	return nil
}

func (r *PostgresHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	query := `
		UPDATE habits SET current_streak = $1, longest_streak = $2
		WHERE id = $3 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, current, longest, id)
	if err != nil {
		return fmt.Errorf("streak update failed: %w", err)
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

func (r *PostgresHabitRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)
	return count > 0, err
}
