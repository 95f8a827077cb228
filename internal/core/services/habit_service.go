package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/progression"
)

// MaxScheduleDays bounds dose schedules and stats ranges.
const MaxScheduleDays = 366

type HabitService struct {
	repo      domain.HabitRepository
	entryRepo domain.DailyEntryRepository
}

func NewHabitService(repo domain.HabitRepository, entryRepo domain.DailyEntryRepository) *HabitService {
	return &HabitService{
		repo:      repo,
		entryRepo: entryRepo,
	}
}

type CreateHabitInput struct {
	UserID      string
	Title       string
	Direction   domain.Direction
	StartValue  float64
	Unit        string
	Progression *domain.Progression
	TargetValue *float64
	EntryMode   domain.EntryMode
	StartDate   domain.Date
}

// UpdateHabitInput merges onto the stored habit: nil fields keep their value.
// Switching to maintain drops progression and target.
type UpdateHabitInput struct {
	ID          string
	UserID      string
	Title       *string
	Direction   *domain.Direction
	StartValue  *float64
	Unit        *string
	Progression *domain.Progression
	TargetValue *float64
	ClearTarget bool
	EntryMode   *domain.EntryMode
	Version     int
}

type DoseResult struct {
	HabitID  string                      `json:"habit_id"`
	Date     domain.Date                 `json:"date"`
	Dose     float64                     `json:"dose"`
	Unit     string                      `json:"unit"`
	Status   progression.Status          `json:"status"`
	Actual   *float64                    `json:"actual_value,omitempty"`
	Schedule []progression.ScheduledDose `json:"schedule,omitempty"`
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.StartDate, domain.HabitParams{
		Title:       input.Title,
		Direction:   input.Direction,
		StartValue:  input.StartValue,
		Unit:        input.Unit,
		Progression: input.Progression,
		TargetValue: input.TargetValue,
		EntryMode:   input.EntryMode,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetByID hides habits of other users behind ErrHabitNotFound.
func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	params := habit.Params()
	if input.Title != nil {
		params.Title = *input.Title
	}
	if input.Unit != nil {
		params.Unit = *input.Unit
	}
	if input.StartValue != nil {
		params.StartValue = *input.StartValue
	}
	if input.EntryMode != nil {
		params.EntryMode = *input.EntryMode
	}
	if input.Direction != nil {
		params.Direction = *input.Direction
		if params.Direction == domain.DirectionMaintain {
			params.Progression = nil
			params.TargetValue = nil
		}
	}
	if input.Progression != nil {
		params.Progression = input.Progression
	}
	if input.ClearTarget {
		params.TargetValue = nil
	}
	if input.TargetValue != nil {
		params.TargetValue = input.TargetValue
	}

	if err := habit.Update(params); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *HabitService) Archive(ctx context.Context, id, userID string, on domain.Date) (*domain.Habit, error) {
	return s.transition(ctx, id, userID, func(h *domain.Habit) error {
		h.Archive(on)
		return nil
	})
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.transition(ctx, id, userID, (*domain.Habit).Restore)
}

func (s *HabitService) Pause(ctx context.Context, id, userID string, on domain.Date) (*domain.Habit, error) {
	return s.transition(ctx, id, userID, func(h *domain.Habit) error {
		return h.Pause(on)
	})
}

func (s *HabitService) Resume(ctx context.Context, id, userID string, on domain.Date) (*domain.Habit, error) {
	return s.transition(ctx, id, userID, func(h *domain.Habit) error {
		return h.Resume(on)
	})
}

func (s *HabitService) transition(ctx context.Context, id, userID string, apply func(*domain.Habit) error) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := apply(habit); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Dose reports the prescribed amount for date. A recorded day reports the dose
// snapshotted on its entry; days > 0 appends the schedule starting at date.
func (s *HabitService) Dose(ctx context.Context, id, userID string, date domain.Date, days int) (*DoseResult, error) {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	res := &DoseResult{
		HabitID: habit.ID,
		Date:    date,
		Dose:    progression.TargetDose(habit, date),
		Unit:    habit.Unit,
		Status:  progression.StatusPending,
	}

	entry, err := s.entryRepo.GetByHabitAndDate(ctx, habit.ID, date)
	switch {
	case err == nil:
		res.Dose = entry.TargetDose
		res.Status = progression.EntryStatus(entry, habit.Direction)
		actual := entry.ActualValue
		res.Actual = &actual
	case !isNotFound(err):
		return nil, err
	}

	if days > 0 {
		days = min(days, MaxScheduleDays)
		res.Schedule = progression.DoseSchedule(habit, date, date.AddDays(days-1))
	}
	return res, nil
}

func (s *HabitService) CompoundEffect(ctx context.Context, id, userID string, ref domain.Date) (*progression.CompoundEffect, error) {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	ce := progression.ComputeCompoundEffect(habit, ref)
	return &ce, nil
}
