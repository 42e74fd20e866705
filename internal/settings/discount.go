package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alaqsa-transport/backend/internal/pricing"
)

const (
	discountCacheKey = "settings:discount"
	discountCacheTTL = 60 * time.Second
)

// DiscountProvider loads the current discount settings snapshot, cached in
// Redis for a bounded interval. Callers get a per-request snapshot; slight
// staleness between reads is acceptable because every quote and booking
// carries its own frozen result.
type DiscountProvider struct {
	repo   *Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewDiscountProvider creates a discount settings provider. rdb may be nil,
// in which case every call reads from the database.
func NewDiscountProvider(repo *Repository, rdb *redis.Client, logger *zap.Logger) *DiscountProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscountProvider{repo: repo, rdb: rdb, logger: logger}
}

// Current returns the discount settings snapshot to price against.
func (p *DiscountProvider) Current(ctx context.Context) (pricing.DiscountSettings, error) {
	if p.rdb != nil {
		raw, err := p.rdb.Get(ctx, discountCacheKey).Bytes()
		if err == nil {
			var d pricing.DiscountSettings
			if err := json.Unmarshal(raw, &d); err == nil {
				return d, nil
			}
		} else if err != redis.Nil {
			p.logger.Debug("discount cache read failed", zap.Error(err))
		}
	}

	values, err := p.repo.GetAll(ctx)
	if err != nil {
		return pricing.DiscountSettings{}, err
	}
	d := pricing.ParseDiscountSettings(values)

	if p.rdb != nil {
		if raw, err := json.Marshal(d); err == nil {
			if err := p.rdb.Set(ctx, discountCacheKey, raw, discountCacheTTL).Err(); err != nil {
				p.logger.Debug("discount cache write failed", zap.Error(err))
			}
		}
	}
	return d, nil
}

// Invalidate drops the cached snapshot; called after settings updates so
// admin changes take effect without waiting for the TTL.
func (p *DiscountProvider) Invalidate(ctx context.Context) {
	if p.rdb == nil {
		return
	}
	if err := p.rdb.Del(ctx, discountCacheKey).Err(); err != nil {
		p.logger.Warn("discount cache invalidate failed", zap.Error(err))
	}
}
