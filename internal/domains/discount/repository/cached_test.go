package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/discount/repository"
	"storefront-backend/internal/domains/discount/repository/mocks"
)

// memoryCache: pkg/cache.Cache trong memory, encode JSON giống RedisCache
type memoryCache struct {
	items  map[string][]byte
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func save10() *model.Discount {
	return &model.Discount{
		Code:     "SAVE10",
		Type:     model.DiscountTypePercentage,
		Value:    decimal.NewFromInt(10),
		Category: "electronics",
		IsActive: true,
	}
}

func TestCachedRepository_GetByCodeReadsThrough(t *testing.T) {
	inner := new(mocks.Repository)
	inner.On("GetByCode", mock.Anything, "save10").Return(save10(), nil).Once()

	repo := repository.NewCachedRepository(inner, newMemoryCache())

	first, err := repo.GetByCode(context.Background(), "save10")
	require.NoError(t, err)
	second, err := repo.GetByCode(context.Background(), " Save10 ")
	require.NoError(t, err)

	assert.Equal(t, "SAVE10", first.Code)
	assert.True(t, second.Value.Equal(decimal.NewFromInt(10)))
	inner.AssertNumberOfCalls(t, "GetByCode", 1)
}

func TestCachedRepository_CacheErrorFallsBackToDB(t *testing.T) {
	inner := new(mocks.Repository)
	inner.On("GetByCode", mock.Anything, "SAVE10").Return(save10(), nil)

	c := newMemoryCache()
	c.getErr = errors.New("connection refused")
	repo := repository.NewCachedRepository(inner, c)

	d, err := repo.GetByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "electronics", d.Category)
}

func TestCachedRepository_NotFoundIsNotCached(t *testing.T) {
	inner := new(mocks.Repository)
	inner.On("GetByCode", mock.Anything, "NOPE").Return(nil, model.ErrDiscountNotFound)

	c := newMemoryCache()
	repo := repository.NewCachedRepository(inner, c)

	_, err := repo.GetByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, model.ErrDiscountNotFound)
	assert.Empty(t, c.items)
}

func TestCachedRepository_DeactivateInvalidates(t *testing.T) {
	inner := new(mocks.Repository)
	active := save10()
	inactive := save10()
	inactive.IsActive = false
	inner.On("GetByCode", mock.Anything, "SAVE10").Return(active, nil).Once()
	inner.On("Deactivate", mock.Anything, "SAVE10").Return(inactive, nil)
	inner.On("GetByCode", mock.Anything, "SAVE10").Return(inactive, nil).Once()

	repo := repository.NewCachedRepository(inner, newMemoryCache())

	d, err := repo.GetByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	require.True(t, d.IsActive)

	_, err = repo.Deactivate(context.Background(), "SAVE10")
	require.NoError(t, err)

	d, err = repo.GetByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.False(t, d.IsActive)
}
