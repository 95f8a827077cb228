package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/progression"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/services"
)

func newHabitService() (*services.HabitService, *MockHabitRepo, *MockEntryRepo) {
	hRepo, eRepo := new(MockHabitRepo), new(MockEntryRepo)
	return services.NewHabitService(hRepo, eRepo), hRepo, eRepo
}

func TestHabitService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Should create a progressive habit", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		hRepo.On("Create", ctx, mock.AnythingOfType("*domain.Habit")).Return(nil)

		h, err := service.Create(ctx, services.CreateHabitInput{
			UserID:      "user-1",
			Title:       "  Push-ups ",
			Direction:   domain.DirectionIncrease,
			StartValue:  10,
			Unit:        "reps",
			Progression: &domain.Progression{Mode: domain.ProgressionPercentage, Value: 5, Period: domain.PeriodWeekly},
			TargetValue: ptr(50.0),
			StartDate:   day("2025-01-01"),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Push-ups", h.Title)
		assert.Equal(t, domain.EntryModeReplace, h.EntryMode)
		assert.Equal(t, day("2025-01-01"), h.CreatedAt)
		assert.Equal(t, 1, h.Version)
		hRepo.AssertExpectations(t)
	})

	t.Run("Fail: Invalid configuration never reaches the repository", func(t *testing.T) {
		service, hRepo, _ := newHabitService()

		_, err := service.Create(ctx, services.CreateHabitInput{
			UserID:     "user-1",
			Title:      "Run",
			Direction:  domain.DirectionIncrease,
			StartValue: 10,
		})

		assert.ErrorIs(t, err, domain.ErrProgressionRequired)
		hRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHabitService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Fail: Foreign habit is reported as not found", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		hRepo.On("GetByID", ctx, "habit-1").Return(maintainHabit("owner"), nil)

		_, err := service.GetByID(ctx, "habit-1", "intruder")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestHabitService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Merges only provided fields", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		stored := increaseHabit("user-1")
		hRepo.On("GetByID", ctx, "habit-1").Return(stored, nil)
		hRepo.On("Update", ctx, stored).Return(nil)

		h, err := service.Update(ctx, services.UpdateHabitInput{
			ID:          "habit-1",
			UserID:      "user-1",
			Title:       ptr("Morning push-ups"),
			TargetValue: ptr(40.0),
			Version:     1,
		})

		require.NoError(t, err)
		assert.Equal(t, "Morning push-ups", h.Title)
		assert.Equal(t, "reps", h.Unit)
		assert.Equal(t, 40.0, *h.TargetValue)
		require.NotNil(t, h.Progression)
		assert.Equal(t, 5.0, h.Progression.Value)
	})

	t.Run("Success: Switching to maintain drops the progression", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		stored := increaseHabit("user-1")
		stored.TargetValue = ptr(30.0)
		hRepo.On("GetByID", ctx, "habit-1").Return(stored, nil)
		hRepo.On("Update", ctx, stored).Return(nil)

		h, err := service.Update(ctx, services.UpdateHabitInput{
			ID:        "habit-1",
			UserID:    "user-1",
			Direction: ptr(domain.DirectionMaintain),
		})

		require.NoError(t, err)
		assert.Nil(t, h.Progression)
		assert.Nil(t, h.TargetValue)
	})

	t.Run("Fail: Stale version conflicts", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		stored := increaseHabit("user-1")
		stored.Version = 3
		hRepo.On("GetByID", ctx, "habit-1").Return(stored, nil)

		_, err := service.Update(ctx, services.UpdateHabitInput{ID: "habit-1", UserID: "user-1", Title: ptr("x"), Version: 2})

		assert.ErrorIs(t, err, domain.ErrHabitConflict)
		hRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Archived habits are read-only", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		stored := increaseHabit("user-1")
		stored.Archive(day("2025-02-01"))
		hRepo.On("GetByID", ctx, "habit-1").Return(stored, nil)

		_, err := service.Update(ctx, services.UpdateHabitInput{ID: "habit-1", UserID: "user-1", Title: ptr("x")})
		assert.ErrorIs(t, err, domain.ErrHabitArchived)
	})
}

func TestHabitService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Pause then resume records a closed pause", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		stored := maintainHabit("user-1")
		hRepo.On("GetByID", ctx, "habit-1").Return(stored, nil)
		hRepo.On("Update", ctx, stored).Return(nil)

		_, err := service.Pause(ctx, "habit-1", "user-1", day("2025-02-01"))
		require.NoError(t, err)

		h, err := service.Resume(ctx, "habit-1", "user-1", day("2025-02-05"))
		require.NoError(t, err)
		require.Len(t, h.Pauses, 1)
		assert.Equal(t, day("2025-02-05"), h.Pauses[0].To)
		assert.False(t, h.IsPaused())
	})

	t.Run("Fail: Restoring an active habit", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		hRepo.On("GetByID", ctx, "habit-1").Return(maintainHabit("user-1"), nil)

		_, err := service.Restore(ctx, "habit-1", "user-1")
		assert.ErrorIs(t, err, domain.ErrHabitNotArchived)
		hRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Success: Archive and restore", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		stored := maintainHabit("user-1")
		hRepo.On("GetByID", ctx, "habit-1").Return(stored, nil)
		hRepo.On("Update", ctx, stored).Return(nil)

		h, err := service.Archive(ctx, "habit-1", "user-1", day("2025-03-01"))
		require.NoError(t, err)
		require.NotNil(t, h.ArchivedAt)

		h, err = service.Restore(ctx, "habit-1", "user-1")
		require.NoError(t, err)
		assert.Nil(t, h.ArchivedAt)
	})

	t.Run("Success: Delete checks ownership first", func(t *testing.T) {
		service, hRepo, _ := newHabitService()
		hRepo.On("GetByID", ctx, "habit-1").Return(maintainHabit("user-1"), nil)
		hRepo.On("Delete", ctx, "habit-1").Return(nil)

		require.NoError(t, service.Delete(ctx, "habit-1", "user-1"))
		assert.ErrorIs(t, service.Delete(ctx, "habit-1", "user-2"), domain.ErrHabitNotFound)
		hRepo.AssertNumberOfCalls(t, "Delete", 1)
	})
}

func TestHabitService_Dose(t *testing.T) {
	ctx := context.Background()

	t.Run("Worked example: weekly 5% from 10 is 11 after a week", func(t *testing.T) {
		service, hRepo, eRepo := newHabitService()
		hRepo.On("GetByID", ctx, "habit-1").Return(increaseHabit("user-1"), nil)
		eRepo.On("GetByHabitAndDate", ctx, "habit-1", day("2025-01-08")).Return(nil, domain.ErrEntryNotFound)

		res, err := service.Dose(ctx, "habit-1", "user-1", day("2025-01-08"), 0)
		require.NoError(t, err)
		assert.Equal(t, 11.0, res.Dose)
		assert.Equal(t, progression.StatusPending, res.Status)
		assert.Nil(t, res.Actual)
		assert.Empty(t, res.Schedule)
	})

	t.Run("Recorded day reports its snapshot", func(t *testing.T) {
		service, hRepo, eRepo := newHabitService()
		hRepo.On("GetByID", ctx, "habit-1").Return(increaseHabit("user-1"), nil)
		snap := &domain.DailyEntry{HabitID: "habit-1", Date: day("2025-01-08"), TargetDose: 12, ActualValue: 12}
		eRepo.On("GetByHabitAndDate", ctx, "habit-1", day("2025-01-08")).Return(snap, nil)

		res, err := service.Dose(ctx, "habit-1", "user-1", day("2025-01-08"), 3)
		require.NoError(t, err)
		assert.Equal(t, 12.0, res.Dose)
		assert.Equal(t, progression.StatusCompleted, res.Status)
		require.NotNil(t, res.Actual)
		assert.Len(t, res.Schedule, 3)
	})
}

func TestHabitService_CompoundEffect(t *testing.T) {
	ctx := context.Background()
	service, hRepo, _ := newHabitService()
	hRepo.On("GetByID", ctx, "habit-1").Return(increaseHabit("user-1"), nil)

	ce, err := service.CompoundEffect(ctx, "habit-1", "user-1", day("2025-01-08"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, ce.StartDose)
	assert.Equal(t, 11.0, ce.CurrentDose)
	assert.Equal(t, 7, ce.DaysElapsed)
}
