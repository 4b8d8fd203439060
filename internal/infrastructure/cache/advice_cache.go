// Package cache provides cache-first decorators over the persistence
// repositories.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nutriplan/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// adviceKeyPrefix namespaces medical advice entries in the shared cache.
const adviceKeyPrefix = "medical-advice:"

// DefaultAdviceTTL bounds how long derived advice is served without hitting
// the store. Guidance changes rarely; a day is conservative.
const DefaultAdviceTTL = 24 * time.Hour

// MedicalAdviceRepository is a cache-first decorator over a persistent
// advice repository. Cache failures are invisible to callers; every
// degradation falls through to the inner repository.
type MedicalAdviceRepository struct {
	inner  outbound.MedicalAdviceRepository
	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewMedicalAdviceRepository wraps the inner repository with a cache layer.
func NewMedicalAdviceRepository(inner outbound.MedicalAdviceRepository, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) *MedicalAdviceRepository {
	if ttl <= 0 {
		ttl = DefaultAdviceTTL
	}
	return &MedicalAdviceRepository{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("advice-cache"),
	}
}

// FindByUser checks the cache before the store and backfills on a store hit.
func (r *MedicalAdviceRepository) FindByUser(ctx context.Context, userID int64) (*outbound.MedicalAdvice, error) {
	key := adviceKey(userID)

	if data, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Debug("advice cache read failed", zap.String("key", key), zap.Error(err))
	} else if data != nil {
		var advice outbound.MedicalAdvice
		if err := json.Unmarshal(data, &advice); err == nil {
			return &advice, nil
		}
		r.logger.Warn("corrupt advice cache entry, evicting", zap.String("key", key))
		if err := r.cache.Delete(ctx, key); err != nil {
			r.logger.Debug("advice cache eviction failed", zap.String("key", key), zap.Error(err))
		}
	}

	advice, err := r.inner.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if advice != nil {
		r.backfill(ctx, key, advice)
	}
	return advice, nil
}

// Save writes through to the store and refreshes the cache entry.
func (r *MedicalAdviceRepository) Save(ctx context.Context, advice *outbound.MedicalAdvice) error {
	if err := r.inner.Save(ctx, advice); err != nil {
		return err
	}
	r.backfill(ctx, adviceKey(advice.UserID), advice)
	return nil
}

func (r *MedicalAdviceRepository) backfill(ctx context.Context, key string, advice *outbound.MedicalAdvice) {
	data, err := json.Marshal(advice)
	if err != nil {
		r.logger.Warn("failed to marshal advice for cache", zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Debug("advice cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func adviceKey(userID int64) string {
	return fmt.Sprintf("%s%d", adviceKeyPrefix, userID)
}
