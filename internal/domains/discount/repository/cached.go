package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

const discountCacheTTL = 10 * time.Minute

// cachedRepository: cache-aside cho GetByCode (đọc nhiều khi checkout),
// invalidate khi admin ghi. Usage KHÔNG cache: unique index là nguồn sự thật.
type cachedRepository struct {
	RepositoryInterface
	cache cache.Cache
}

func NewCachedRepository(inner RepositoryInterface, c cache.Cache) RepositoryInterface {
	if c == nil {
		return inner
	}
	return &cachedRepository{RepositoryInterface: inner, cache: c}
}

func discountCacheKey(code string) string {
	return fmt.Sprintf("discount:code:%s", utils.NormalizeCode(code))
}

func (r *cachedRepository) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	key := discountCacheKey(code)

	var cached model.Discount
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		// cache lỗi thì đọc DB, không fail request
		logger.Warn("Discount cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	d, err := r.RepositoryInterface.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, d, discountCacheTTL); err != nil {
		logger.Warn("Discount cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return d, nil
}

func (r *cachedRepository) Create(ctx context.Context, d *model.Discount) error {
	if err := r.RepositoryInterface.Create(ctx, d); err != nil {
		return err
	}
	r.invalidate(ctx, d.Code)
	return nil
}

func (r *cachedRepository) Deactivate(ctx context.Context, code string) (*model.Discount, error) {
	d, err := r.RepositoryInterface.Deactivate(ctx, code)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, code)
	return d, nil
}

func (r *cachedRepository) invalidate(ctx context.Context, code string) {
	if err := r.cache.Delete(ctx, discountCacheKey(code)); err != nil {
		logger.Warn("Discount cache invalidation failed", map[string]interface{}{"code": code, "error": err.Error()})
	}
}

var _ RepositoryInterface = (*cachedRepository)(nil)
