package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

type InMemoryMilestoneRepository struct {
	store map[string]domain.CelebratedSet

	mu sync.RWMutex
}

func NewInMemoryMilestoneRepository() *InMemoryMilestoneRepository {
	return &InMemoryMilestoneRepository{
		store: make(map[string]domain.CelebratedSet),
	}
}

func (r *InMemoryMilestoneRepository) GetCelebrated(ctx context.Context, habitID string) (domain.CelebratedSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store[habitID].With(), nil
}

func (r *InMemoryMilestoneRepository) Celebrate(ctx context.Context, habitID string, keys ...domain.MilestoneKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habitID] = r.store[habitID].With(keys...)
	return nil
}
