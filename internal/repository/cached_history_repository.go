package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/racemarks/internal/metrics"
	"github.com/yourusername/racemarks/internal/models"
)

// CachedHistoryRepository memoises history lookups. Results before a given
// date do not change once settled, so entries only expire by TTL.
type CachedHistoryRepository struct {
	inner    HistoryRepository
	cache    *cache.Cache
	ttl      time.Duration
	maxItems int
}

// NewCachedHistoryRepository wraps inner with a TTL cache
func NewCachedHistoryRepository(inner HistoryRepository, ttl time.Duration, maxItems int) *CachedHistoryRepository {
	return &CachedHistoryRepository{
		inner:    inner,
		cache:    cache.New(ttl, ttl*2),
		ttl:      ttl,
		maxItems: maxItems,
	}
}

func historyCacheKey(horseID uuid.UUID, asOf time.Time, limit int) string {
	return fmt.Sprintf("%s:%s:%d", horseID, formatDate(asOf), limit)
}

// GetRecent returns cached history or loads and caches it
func (c *CachedHistoryRepository) GetRecent(ctx context.Context, horseID uuid.UUID, asOf time.Time, limit int) ([]models.PastResult, error) {
	key := historyCacheKey(horseID, asOf, limit)
	if cached, found := c.cache.Get(key); found {
		if history, ok := cached.([]models.PastResult); ok {
			metrics.RecordHistoryCacheLookup(true)
			return append([]models.PastResult(nil), history...), nil
		}
	}
	metrics.RecordHistoryCacheLookup(false)

	history, err := c.inner.GetRecent(ctx, horseID, asOf, limit)
	if err != nil {
		return nil, err
	}

	if c.maxItems > 0 && c.cache.ItemCount() >= c.maxItems {
		c.cache.DeleteExpired()
	}
	if c.maxItems <= 0 || c.cache.ItemCount() < c.maxItems {
		c.cache.Set(key, append([]models.PastResult(nil), history...), c.ttl)
	}
	return history, nil
}

// Flush drops every cached entry
func (c *CachedHistoryRepository) Flush() {
	c.cache.Flush()
}

// ItemCount returns the number of cached entries
func (c *CachedHistoryRepository) ItemCount() int {
	return c.cache.ItemCount()
}
