package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHabitRepo) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	return m.Called(ctx, id, current, longest).Error(0)
}

type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) Create(ctx context.Context, entry *domain.DailyEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepo) Update(ctx context.Context, entry *domain.DailyEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockEntryRepo) GetByID(ctx context.Context, id string) (*domain.DailyEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyEntry), args.Error(1)
}

func (m *MockEntryRepo) GetByHabitAndDate(ctx context.Context, habitID string, date domain.Date) (*domain.DailyEntry, error) {
	args := m.Called(ctx, habitID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyEntry), args.Error(1)
}

func (m *MockEntryRepo) ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	args := m.Called(ctx, habitID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyEntry), args.Error(1)
}

func (m *MockEntryRepo) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyEntry), args.Error(1)
}

type MockMilestoneRepo struct {
	mock.Mock
}

func (m *MockMilestoneRepo) GetCelebrated(ctx context.Context, habitID string) (domain.CelebratedSet, error) {
	args := m.Called(ctx, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CelebratedSet), args.Error(1)
}

func (m *MockMilestoneRepo) Celebrate(ctx context.Context, habitID string, keys ...domain.MilestoneKey) error {
	return m.Called(ctx, habitID, keys).Error(0)
}

type fakeScheduler struct {
	mu     sync.Mutex
	queued []string
}

func (f *fakeScheduler) Enqueue(habitID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, habitID)
}

func ptr[T any](v T) *T {
	return &v
}

func day(s string) domain.Date {
	return domain.MustParseDate(s)
}

func maintainHabit(userID string) *domain.Habit {
	return &domain.Habit{
		ID:         "habit-1",
		UserID:     userID,
		Title:      "Read",
		Direction:  domain.DirectionMaintain,
		StartValue: 10,
		Unit:       "pages",
		EntryMode:  domain.EntryModeReplace,
		CreatedAt:  day("2025-01-01"),
		Version:    1,
	}
}

func increaseHabit(userID string) *domain.Habit {
	h := maintainHabit(userID)
	h.Title = "Push-ups"
	h.Unit = "reps"
	h.Direction = domain.DirectionIncrease
	h.Progression = &domain.Progression{Mode: domain.ProgressionPercentage, Value: 5, Period: domain.PeriodWeekly}
	return h
}
