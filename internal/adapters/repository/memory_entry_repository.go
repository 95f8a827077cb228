package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

func cloneEntry(e *domain.DailyEntry) *domain.DailyEntry {
	c := *e
	if e.Operations != nil {
		c.Operations = append(domain.Operations(nil), e.Operations...)
	}
	return &c
}

type dayKey struct {
	habitID string
	date    domain.Date
}

// InMemoryEntryRepository mirrors the Postgres constraints: one live entry
// per (habit, day) and optimistic versioning on updates.
type InMemoryEntryRepository struct {
	store map[string]*domain.DailyEntry
	byDay map[dayKey]string

	mu sync.RWMutex
}

func NewInMemoryEntryRepository() *InMemoryEntryRepository {
	return &InMemoryEntryRepository{
		store: make(map[string]*domain.DailyEntry),
		byDay: make(map[dayKey]string),
	}
}

func (r *InMemoryEntryRepository) Create(ctx context.Context, entry *domain.DailyEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	key := dayKey{entry.HabitID, entry.Date}
	if _, taken := r.byDay[key]; taken {
		return domain.ErrEntryConflict
	}
	if _, taken := r.store[entry.ID]; taken {
		return domain.ErrEntryConflict
	}

	r.store[entry.ID] = cloneEntry(entry)
	r.byDay[key] = entry.ID
	return nil
}

func (r *InMemoryEntryRepository) live(id string) (*domain.DailyEntry, bool) {
	e, ok := r.store[id]
	if !ok || e.DeletedAt != nil {
		return nil, false
	}
	return e, true
}

func (r *InMemoryEntryRepository) GetByID(ctx context.Context, id string) (*domain.DailyEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.live(id)
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return cloneEntry(e), nil
}

func (r *InMemoryEntryRepository) GetByHabitAndDate(ctx context.Context, habitID string, date domain.Date) (*domain.DailyEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDay[dayKey{habitID, date}]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return cloneEntry(r.store[id]), nil
}

func (r *InMemoryEntryRepository) list(match func(*domain.DailyEntry) bool, from, to domain.Date) []*domain.DailyEntry {
	out := []*domain.DailyEntry{}
	for _, e := range r.store {
		if e.DeletedAt != nil || !match(e) || e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, cloneEntry(e))
	}
	return out
}

func (r *InMemoryEntryRepository) ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.list(func(e *domain.DailyEntry) bool { return e.HabitID == habitID }, from, to)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *InMemoryEntryRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.DailyEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.list(func(e *domain.DailyEntry) bool { return e.UserID == userID }, from, to)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].HabitID < out[j].HabitID
	})
	return out, nil
}

func (r *InMemoryEntryRepository) Update(ctx context.Context, entry *domain.DailyEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.live(entry.ID)
	if !ok {
		return domain.ErrEntryNotFound
	}
	if stored.Version != entry.Version {
		return domain.ErrEntryConflict
	}

	entry.Version++
	entry.UpdatedAt = time.Now().UTC()

	next := cloneEntry(entry)
	next.HabitID, next.UserID, next.Date = stored.HabitID, stored.UserID, stored.Date
	next.TargetDose = stored.TargetDose
	r.store[entry.ID] = next
	return nil
}

func (r *InMemoryEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.live(id)
	if !ok || stored.UserID != userID {
		return domain.ErrEntryNotFound
	}

	now := time.Now().UTC()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	stored.Version++
	delete(r.byDay, dayKey{stored.HabitID, stored.Date})
	return nil
}
