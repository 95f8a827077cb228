package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/metrics"
)

const (
	milestoneSetTTL = 24 * time.Hour

	// loadedMarker keeps a habit with no celebrations distinguishable from a cold key.
	loadedMarker = "_loaded"
)

var _ domain.MilestoneRepository = (*CachedMilestoneRepository)(nil)

// CachedMilestoneRepository mirrors each habit's celebrated set into a Redis set.
type CachedMilestoneRepository struct {
	next   domain.MilestoneRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewCachedMilestoneRepository(next domain.MilestoneRepository, cache *redis.Client, logger *zap.Logger) *CachedMilestoneRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedMilestoneRepository{
		next:   next,
		cache:  cache,
		logger: logger.Named("milestone_cache"),
	}
}

func (r *CachedMilestoneRepository) cacheKey(habitID string) string {
	return fmt.Sprintf("milestones:%s", habitID)
}

func (r *CachedMilestoneRepository) GetCelebrated(ctx context.Context, habitID string) (domain.CelebratedSet, error) {
	key := r.cacheKey(habitID)

	members, err := r.cache.SMembers(ctx, key).Result()
	if err != nil {
		r.logger.Warn("redis read error", zap.Error(err))
	}
	if err == nil && len(members) > 0 {
		metrics.RecordCache("milestones", "hit")
		set := domain.NewCelebratedSet()
		for _, m := range members {
			if m != loadedMarker {
				set[domain.MilestoneKey(m)] = struct{}{}
			}
		}
		return set, nil
	}
	metrics.RecordCache("milestones", "miss")

	set, err := r.next.GetCelebrated(ctx, habitID)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, key, set.Keys())
	return set, nil
}

func (r *CachedMilestoneRepository) Celebrate(ctx context.Context, habitID string, keys ...domain.MilestoneKey) error {
	if err := r.next.Celebrate(ctx, habitID, keys...); err != nil {
		return err
	}

	// Only extend a warm set; a cold key reloads from storage on next read.
	key := r.cacheKey(habitID)
	warm, err := r.cache.Exists(ctx, key).Result()
	if err != nil || warm == 0 {
		return nil
	}
	r.fill(ctx, key, keys)
	return nil
}

func (r *CachedMilestoneRepository) fill(ctx context.Context, key string, keys []domain.MilestoneKey) {
	members := make([]any, 0, len(keys)+1)
	members = append(members, loadedMarker)
	for _, k := range keys {
		members = append(members, string(k))
	}

	pipe := r.cache.TxPipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, milestoneSetTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("redis write error", zap.String("key", key), zap.Error(err))
	}
}
