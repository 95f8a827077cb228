package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/progression"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/metrics"
)

type MilestoneService struct {
	repo      domain.MilestoneRepository
	habitRepo domain.HabitRepository
	logger    *zap.Logger
}

func NewMilestoneService(repo domain.MilestoneRepository, habitRepo domain.HabitRepository, logger *zap.Logger) *MilestoneService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MilestoneService{
		repo:      repo,
		habitRepo: habitRepo,
		logger:    logger,
	}
}

// List returns the celebrated keys of a habit, sorted.
func (s *MilestoneService) List(ctx context.Context, habitID, userID string) ([]domain.MilestoneKey, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	set, err := s.repo.GetCelebrated(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return set.Keys(), nil
}

// Detect runs the detector against the stored set and persists every key the
// detector added, reported or suppressed.
func (s *MilestoneService) Detect(ctx context.Context, in progression.CheckIn) (progression.Detection, error) {
	celebrated, err := s.repo.GetCelebrated(ctx, in.Habit.ID)
	if err != nil {
		return progression.Detection{}, fmt.Errorf("milestone service: failed to load celebrated set: %w", err)
	}

	det := progression.DetectMilestone(in, celebrated)

	var added []domain.MilestoneKey
	for _, k := range det.Celebrated.Keys() {
		if !celebrated.Has(k) {
			added = append(added, k)
		}
	}
	if len(added) == 0 {
		return det, nil
	}

	if err := s.repo.Celebrate(ctx, in.Habit.ID, added...); err != nil {
		return progression.Detection{}, fmt.Errorf("milestone service: failed to record milestones: %w", err)
	}

	if det.Fired() {
		metrics.RecordMilestone(string(det.Milestone))
		s.logger.Info("milestone reached",
			zap.String("habit_id", in.Habit.ID),
			zap.String("milestone", string(det.Milestone)),
			zap.Int("suppressed", len(added)-1),
		)
	}
	return det, nil
}
