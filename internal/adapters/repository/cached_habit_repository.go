package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/metrics"
)

const habitListTTL = 30 * time.Minute

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

// CachedHabitRepository keeps each user's habit list in Redis.
// Every write through it drops the owner's key.
type CachedHabitRepository struct {
	next   domain.HabitRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client, logger *zap.Logger) *CachedHabitRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedHabitRepository{
		next:   next,
		cache:  cache,
		logger: logger.Named("habit_cache"),
	}
}

func (r *CachedHabitRepository) cacheKey(userID string) string {
	return fmt.Sprintf("habits:%s", userID)
}

func (r *CachedHabitRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.logger.Warn("failed to invalidate habit list", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *CachedHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var habits []*domain.Habit
		if err := json.Unmarshal(val, &habits); err == nil {
			metrics.RecordCache("habits", "hit")
			return habits, nil
		}
		r.logger.Warn("corrupted habit list, cleaning up key", zap.String("user_id", userID))
		r.cache.Del(ctx, key)
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("redis read error", zap.Error(err))
	}
	metrics.RecordCache("habits", "miss")

	habits, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, key, data, habitListTTL).Err(); setErr != nil {
			r.logger.Warn("redis set error", zap.Error(setErr))
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id string) error {
	habit, err := r.next.GetByID(ctx, id)
	if err == nil && habit != nil {
		defer r.invalidate(ctx, habit.UserID)
	}

	return r.next.Delete(ctx, id)
}

func (r *CachedHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	habit, err := r.next.GetByID(ctx, id)
	if err == nil && habit != nil {
		defer r.invalidate(ctx, habit.UserID)
	}

	return r.next.UpdateStreaks(ctx, id, current, longest)
}
