package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

type PostgresMilestoneRepository struct {
	db *sqlx.DB
}

func NewPostgresMilestoneRepository(db *sqlx.DB) *PostgresMilestoneRepository {
	return &PostgresMilestoneRepository{db: db}
}

func (r *PostgresMilestoneRepository) GetCelebrated(ctx context.Context, habitID string) (domain.CelebratedSet, error) {
	var keys []string
	query := `SELECT milestone_key FROM habit_milestones WHERE habit_id = $1`

	if err := r.db.SelectContext(ctx, &keys, query, habitID); err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}

	set := domain.NewCelebratedSet()
	for _, k := range keys {
		set[domain.MilestoneKey(k)] = struct{}{}
	}
	return set, nil
}

func (r *PostgresMilestoneRepository) Celebrate(ctx context.Context, habitID string, keys ...domain.MilestoneKey) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin milestone tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO habit_milestones (habit_id, milestone_key)
		VALUES ($1, $2)
		ON CONFLICT (habit_id, milestone_key) DO NOTHING`

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, query, habitID, string(k)); err != nil {
			if pgCode(err) == pgForeignKeyViolation {
				return domain.ErrHabitNotFound
			}
			return fmt.Errorf("failed to record milestone %s: %w", k, err)
		}
	}

	return tx.Commit()
}
