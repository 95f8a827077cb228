package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

var today = domain.MustParseDate("2025-03-31")

func daysAgo(n int) domain.Date {
	return today.AddDays(-n)
}

func testHabit() *domain.Habit {
	return &domain.Habit{
		ID:         "habit-1",
		UserID:     "user-1",
		Direction:  domain.DirectionMaintain,
		StartValue: 10,
		EntryMode:  domain.EntryModeReplace,
		CreatedAt:  daysAgo(60),
	}
}

func done(d domain.Date) *domain.DailyEntry {
	return &domain.DailyEntry{HabitID: "habit-1", Date: d, TargetDose: 10, ActualValue: 10}
}

func partial(d domain.Date) *domain.DailyEntry {
	return &domain.DailyEntry{HabitID: "habit-1", Date: d, TargetDose: 10, ActualValue: 3}
}

func TestCalculateStreaks(t *testing.T) {
	tests := []struct {
		name        string
		entries     []*domain.DailyEntry
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "Empty entries",
			entries:     nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Single entry today",
			entries:     []*domain.DailyEntry{done(today)},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Single entry yesterday (Streak still alive)",
			entries:     []*domain.DailyEntry{done(daysAgo(1))},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Single entry 2 days ago (Streak broken)",
			entries:     []*domain.DailyEntry{done(daysAgo(2))},
			wantCurrent: 0,
			wantLongest: 1,
		},
		{
			name:        "Perfect streak (Today, Yesterday, 2 days ago)",
			entries:     []*domain.DailyEntry{done(today), done(daysAgo(1)), done(daysAgo(2))},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Partial day breaks the chain",
			entries:     []*domain.DailyEntry{done(today), partial(daysAgo(1)), done(daysAgo(2))},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Partial today breaks the chain",
			entries:     []*domain.DailyEntry{partial(today), done(daysAgo(1)), done(daysAgo(2))},
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name: "Longest streak in the past",
			entries: []*domain.DailyEntry{
				done(today),
				done(daysAgo(10)),
				done(daysAgo(11)),
				done(daysAgo(12)),
			},
			wantCurrent: 1,
			wantLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := calculateStreaks(testHabit(), tt.entries, today)
			assert.Equal(t, tt.wantCurrent, current, "current streak")
			assert.Equal(t, tt.wantLongest, longest, "longest streak")
		})
	}
}

func TestCalculateStreaks_PauseDoesNotBreak(t *testing.T) {
	h := testHabit()
	h.Pauses = []domain.Pause{{From: daysAgo(3), To: daysAgo(1)}}

	entries := []*domain.DailyEntry{done(today), done(daysAgo(1)), done(daysAgo(4)), done(daysAgo(5))}

	current, longest := calculateStreaks(h, entries, today)
	assert.Equal(t, 4, current)
	assert.Equal(t, 4, longest)
}

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	return m.Called(ctx, id, current, longest).Error(0)
}

type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	args := m.Called(ctx, habitID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyEntry), args.Error(1)
}

func newTestWorker(h *MockHabitRepo, e *MockEntryRepo) *StreakWorker {
	w := NewStreakWorker(h, e, nil)
	w.today = func() domain.Date { return today }
	return w
}

func TestStreakWorker_ProcessJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Persists changed streaks", func(t *testing.T) {
		hRepo, eRepo := new(MockHabitRepo), new(MockEntryRepo)
		h := testHabit()

		hRepo.On("GetByID", mock.Anything, "habit-1").Return(h, nil)
		eRepo.On("ListByHabitID", mock.Anything, "habit-1", h.CreatedAt, today).
			Return([]*domain.DailyEntry{done(today), done(daysAgo(1))}, nil)
		hRepo.On("UpdateStreaks", mock.Anything, "habit-1", 2, 2).Return(nil)

		newTestWorker(hRepo, eRepo).processJob(ctx, StreakJob{HabitID: "habit-1"})

		hRepo.AssertExpectations(t)
		eRepo.AssertExpectations(t)
	})

	t.Run("Success: Skips the write when nothing changed", func(t *testing.T) {
		hRepo, eRepo := new(MockHabitRepo), new(MockEntryRepo)
		h := testHabit()
		h.CurrentStreak, h.LongestStreak = 1, 1

		hRepo.On("GetByID", mock.Anything, "habit-1").Return(h, nil)
		eRepo.On("ListByHabitID", mock.Anything, "habit-1", h.CreatedAt, today).
			Return([]*domain.DailyEntry{done(today)}, nil)

		newTestWorker(hRepo, eRepo).processJob(ctx, StreakJob{HabitID: "habit-1"})

		hRepo.AssertNotCalled(t, "UpdateStreaks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fail: Missing habit stops the job", func(t *testing.T) {
		hRepo, eRepo := new(MockHabitRepo), new(MockEntryRepo)
		hRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrHabitNotFound)

		newTestWorker(hRepo, eRepo).processJob(ctx, StreakJob{HabitID: "ghost"})

		eRepo.AssertNotCalled(t, "ListByHabitID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fail: Entry error stops the job", func(t *testing.T) {
		hRepo, eRepo := new(MockHabitRepo), new(MockEntryRepo)
		h := testHabit()
		hRepo.On("GetByID", mock.Anything, "habit-1").Return(h, nil)
		eRepo.On("ListByHabitID", mock.Anything, "habit-1", h.CreatedAt, today).Return(nil, errors.New("db down"))

		newTestWorker(hRepo, eRepo).processJob(ctx, StreakJob{HabitID: "habit-1"})

		hRepo.AssertNotCalled(t, "UpdateStreaks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStreakWorker_EnqueueDropsWhenFull(t *testing.T) {
	w := NewStreakWorker(new(MockHabitRepo), new(MockEntryRepo), nil)

	for i := 0; i < queueSize+10; i++ {
		w.Enqueue("habit-1")
	}
	assert.Len(t, w.jobs, queueSize)
}

func TestStreakWorker_StartConsumesJobs(t *testing.T) {
	hRepo, eRepo := new(MockHabitRepo), new(MockEntryRepo)
	h := testHabit()
	processed := make(chan struct{})

	hRepo.On("GetByID", mock.Anything, "habit-1").Return(h, nil)
	eRepo.On("ListByHabitID", mock.Anything, "habit-1", h.CreatedAt, today).
		Return([]*domain.DailyEntry{done(today)}, nil)
	hRepo.On("UpdateStreaks", mock.Anything, "habit-1", 1, 1).
		Run(func(mock.Arguments) { close(processed) }).
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newTestWorker(hRepo, eRepo)
	w.Start(ctx)
	w.Enqueue("habit-1")

	<-processed
	hRepo.AssertExpectations(t)
}
