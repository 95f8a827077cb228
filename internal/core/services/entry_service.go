package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/progression"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/metrics"
)

// StreakScheduler queues a streak refresh for a habit.
type StreakScheduler interface {
	Enqueue(habitID string)
}

type EntryService struct {
	repo       domain.DailyEntryRepository
	habitRepo  domain.HabitRepository
	milestones *MilestoneService
	worker     StreakScheduler
	logger     *zap.Logger
	today      func() domain.Date
}

func NewEntryService(
	repo domain.DailyEntryRepository,
	habitRepo domain.HabitRepository,
	milestones *MilestoneService,
	worker StreakScheduler,
	logger *zap.Logger,
) *EntryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryService{
		repo:       repo,
		habitRepo:  habitRepo,
		milestones: milestones,
		worker:     worker,
		logger:     logger,
		today:      domain.Today,
	}
}

// CheckInInput records Value on Date. Replace habits store Value as the day's
// total; cumulative habits append it as a signed delta.
type CheckInInput struct {
	HabitID string
	UserID  string
	Date    domain.Date
	Value   float64
	Notes   *string
}

type UndoInput struct {
	HabitID string
	UserID  string
	Date    domain.Date
}

type CheckInResult struct {
	Entry      *domain.DailyEntry  `json:"entry,omitempty"`
	Status     progression.Status  `json:"status"`
	Completion float64             `json:"completion_percentage"`
	Milestone  domain.MilestoneKey `json:"milestone,omitempty"`
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrEntryNotFound)
}

func (s *EntryService) ownedHabit(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return habit, nil
}

func (s *EntryService) CheckIn(ctx context.Context, input CheckInInput) (*CheckInResult, error) {
	if input.Date.IsZero() {
		input.Date = s.today()
	}
	if input.Date.After(s.today()) {
		return nil, domain.ErrFutureEntry
	}

	habit, err := s.ownedHabit(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !habit.ActiveOn(input.Date) {
		return nil, domain.ErrHabitInactive
	}

	entry, previous, err := s.record(ctx, habit, input)
	if errors.Is(err, domain.ErrEntryConflict) {
		// Another request created or changed the day first; replay on top of it.
		entry, previous, err = s.record(ctx, habit, input)
	}
	if err != nil {
		return nil, err
	}

	res := &CheckInResult{
		Entry:      entry,
		Status:     progression.EntryStatus(entry, habit.Direction),
		Completion: progression.EntryCompletion(entry, habit.Direction),
	}
	metrics.RecordCheckIn(string(res.Status))

	if s.milestones != nil {
		res.Milestone = s.detectMilestone(ctx, habit, entry, previous)
	}

	s.worker.Enqueue(habit.ID)

	return res, nil
}

// record applies the input to the day's entry and persists it. previous is
// the value before the change, nil when the day had no entry.
func (s *EntryService) record(ctx context.Context, habit *domain.Habit, input CheckInInput) (*domain.DailyEntry, *float64, error) {
	existing, err := s.repo.GetByHabitAndDate(ctx, habit.ID, input.Date)
	if err != nil && !isNotFound(err) {
		return nil, nil, err
	}

	var previous *float64
	entry := existing
	if entry == nil {
		entry = domain.NewDailyEntry(habit.ID, input.UserID, input.Date, progression.TargetDose(habit, input.Date))
		entry.ID = uuid.NewString()
	} else {
		v := entry.ActualValue
		previous = &v
	}

	switch habit.EntryMode {
	case domain.EntryModeCumulative:
		err = entry.ApplyOperation(input.Value, time.Now())
	default:
		err = entry.SetValue(input.Value)
	}
	if err != nil {
		return nil, nil, err
	}

	if input.Notes != nil {
		entry.Notes = *input.Notes
	}
	if err := entry.Validate(); err != nil {
		return nil, nil, err
	}

	if existing == nil {
		err = s.repo.Create(ctx, entry)
	} else {
		err = s.repo.Update(ctx, entry)
	}
	if err != nil {
		return nil, nil, err
	}
	return entry, previous, nil
}

// detectMilestone never fails the check-in: the value is already stored.
func (s *EntryService) detectMilestone(ctx context.Context, habit *domain.Habit, entry *domain.DailyEntry, previous *float64) domain.MilestoneKey {
	history, err := s.repo.ListByHabitID(ctx, habit.ID, habit.CreatedAt, entry.Date.AddDays(-1))
	if err != nil {
		s.logger.Error("failed to load history for milestones", zap.String("habit_id", habit.ID), zap.Error(err))
		return ""
	}

	det, err := s.milestones.Detect(ctx, progression.CheckIn{
		Habit:         habit,
		Date:          entry.Date,
		TargetDose:    entry.TargetDose,
		PreviousValue: previous,
		NewValue:      entry.ActualValue,
		History:       history,
	})
	if err != nil {
		s.logger.Error("milestone detection failed", zap.String("habit_id", habit.ID), zap.Error(err))
		return ""
	}
	return det.Milestone
}

// Undo drops the last operation of a cumulative entry. Milestones are not
// re-evaluated: they never un-fire.
func (s *EntryService) Undo(ctx context.Context, input UndoInput) (*CheckInResult, error) {
	if input.Date.IsZero() {
		input.Date = s.today()
	}

	habit, err := s.ownedHabit(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}
	if habit.EntryMode != domain.EntryModeCumulative {
		return nil, domain.ErrWrongEntryMode
	}

	entry, err := s.repo.GetByHabitAndDate(ctx, habit.ID, input.Date)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNothingToUndo
		}
		return nil, err
	}

	if err := entry.UndoLastOperation(); err != nil {
		return nil, err
	}

	// An emptied log means nothing was recorded: the day goes back to pending.
	if len(entry.Operations) == 0 {
		if err := s.repo.Delete(ctx, entry.ID, input.UserID); err != nil {
			return nil, err
		}
		s.worker.Enqueue(habit.ID)
		return &CheckInResult{Status: progression.StatusPending}, nil
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.worker.Enqueue(habit.ID)

	return &CheckInResult{
		Entry:      entry,
		Status:     progression.EntryStatus(entry, habit.Direction),
		Completion: progression.EntryCompletion(entry, habit.Direction),
	}, nil
}

func (s *EntryService) GetByID(ctx context.Context, id string, userID string) (*domain.DailyEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return entry, nil
}

func (s *EntryService) ListByHabitID(ctx context.Context, habitID string, userID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	if _, err := s.ownedHabit(ctx, habitID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByHabitID(ctx, habitID, from, to)
}

func (s *EntryService) Delete(ctx context.Context, id string, userID string) error {
	entry, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.worker.Enqueue(entry.HabitID)

	return nil
}
