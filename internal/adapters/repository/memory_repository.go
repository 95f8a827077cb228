package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

// cloneHabit copies h deeply so callers never share state with the store.
func cloneHabit(h *domain.Habit) *domain.Habit {
	c := *h
	if h.Progression != nil {
		p := *h.Progression
		c.Progression = &p
	}
	if h.TargetValue != nil {
		t := *h.TargetValue
		c.TargetValue = &t
	}
	if h.ArchivedAt != nil {
		a := *h.ArchivedAt
		c.ArchivedAt = &a
	}
	if h.Pauses != nil {
		c.Pauses = append([]domain.Pause(nil), h.Pauses...)
	}
	return &c
}

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if habit.Version == 0 {
		habit.Version = 1
	}
	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(habit), nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.store {
		if h.UserID == userID && h.DeletedAt == nil {
			habits = append(habits, cloneHabit(h))
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.Before(habits[j].CreatedAt)
		}
		return habits[i].ID < habits[j].ID
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[habit.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	if stored.Version != habit.Version {
		return domain.ErrHabitConflict
	}

	habit.Version++
	habit.UpdatedAt = time.Now().UTC()

	next := cloneHabit(habit)
	next.CurrentStreak = stored.CurrentStreak
	next.LongestStreak = stored.LongestStreak
	r.store[habit.ID] = next
	return nil
}

func (r *InMemoryHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	stored.CurrentStreak = current
	stored.LongestStreak = longest
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	now := time.Now().UTC()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	stored.Version++
	return nil
}
