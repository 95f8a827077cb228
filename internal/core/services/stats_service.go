package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/progression"
)

type StatsService struct {
	habitRepo domain.HabitRepository
	entryRepo domain.DailyEntryRepository
}

func NewStatsService(habitRepo domain.HabitRepository, entryRepo domain.DailyEntryRepository) *StatsService {
	return &StatsService{
		habitRepo: habitRepo,
		entryRepo: entryRepo,
	}
}

type StatsInput struct {
	UserID    string
	StartDate domain.Date
	EndDate   domain.Date
}

type DailyHabitStatus struct {
	HabitID    string             `json:"habit_id"`
	Title      string             `json:"title"`
	Unit       string             `json:"unit"`
	Dose       float64            `json:"dose"`
	Actual     *float64           `json:"actual_value,omitempty"`
	Status     progression.Status `json:"status"`
	Completion float64            `json:"completion_percentage"`
}

type DailyStats struct {
	Date                 domain.Date        `json:"date"`
	CompletionPercentage float64            `json:"completion_percentage"`
	Habits               []DailyHabitStatus `json:"habits"`
}

func (s *StatsService) HabitStats(ctx context.Context, habitID string, input StatsInput) (*progression.HabitStats, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	entries, err := s.entryRepo.ListByHabitID(ctx, habitID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("stats service: failed to load entries: %w", err)
	}

	stats := progression.ComputeHabitStats(habit, entries, input.StartDate, input.EndDate)
	return &stats, nil
}

// Daily lists the habits active on date with their dose and status.
func (s *StatsService) Daily(ctx context.Context, userID string, date domain.Date) (*DailyStats, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByUserIDAndDateRange(ctx, userID, date, date)
	if err != nil {
		return nil, fmt.Errorf("stats service: failed to load entries: %w", err)
	}

	byHabit := make(map[string]*domain.DailyEntry, len(entries))
	for _, e := range entries {
		if prev, ok := byHabit[e.HabitID]; ok && prev.UpdatedAt.After(e.UpdatedAt) {
			continue
		}
		byHabit[e.HabitID] = e
	}

	out := &DailyStats{
		Date:                 date,
		CompletionPercentage: progression.DailyCompletionPercentage(entries, habits, date),
		Habits:               make([]DailyHabitStatus, 0, len(habits)),
	}

	for _, h := range habits {
		if !h.ActiveOn(date) {
			continue
		}

		e := byHabit[h.ID]
		row := DailyHabitStatus{
			HabitID:    h.ID,
			Title:      h.Title,
			Unit:       h.Unit,
			Dose:       progression.TargetDose(h, date),
			Status:     progression.EntryStatus(e, h.Direction),
			Completion: progression.EntryCompletion(e, h.Direction),
		}
		if e != nil {
			row.Dose = e.TargetDose
			actual := e.ActualValue
			row.Actual = &actual
		}
		out.Habits = append(out.Habits, row)
	}

	return out, nil
}

func (s *StatsService) Overview(ctx context.Context, input StatsInput) (*progression.Overview, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByUserIDAndDateRange(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("stats service: failed to load entries: %w", err)
	}

	ov := progression.ComputeOverview(habits, entries, input.StartDate, input.EndDate)
	return &ov, nil
}
