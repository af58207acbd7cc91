package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

type Config struct {
	TTL           time.Duration `mapstructure:"ttl"`
	Retries       uint64        `mapstructure:"retries"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

func DefaultConfig() Config {
	return Config{
		TTL:           5 * time.Minute,
		Retries:       3,
		RetryInterval: 200 * time.Millisecond,
	}
}

// CategoryCache holds the category reference list. A failed refresh
// keeps serving the last good list.
type CategoryCache struct {
	src dependency.Categories
	c   Config

	mu       sync.RWMutex
	list     []entity.Category
	byID     map[int]entity.Category
	loadedAt time.Time
	now      func() time.Time
}

func NewCategoryCache(src dependency.Categories, c Config) *CategoryCache {
	return &CategoryCache{
		src:  src,
		c:    c,
		byID: make(map[int]entity.Category),
		now:  time.Now,
	}
}

// Refresh loads the list with a bounded constant backoff. Only network
// and server failures are retried.
func (cc *CategoryCache) Refresh(ctx context.Context) error {
	var cs []entity.Category
	err := backoff.Retry(
		func() error {
			var err error
			cs, err = cc.src.Categories(ctx)
			if err == nil {
				return nil
			}
			switch gerr.KindOf(err) {
			case gerr.KindNetwork, gerr.KindServer:
				return err
			}
			return backoff.Permanent(err)
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(cc.c.RetryInterval), cc.c.Retries),
			ctx,
		),
	)
	if err != nil {
		return &gerr.Error{Kind: gerr.KindPartial, Op: "load categories", Err: err}
	}

	byID := make(map[int]entity.Category, len(cs))
	for _, c := range cs {
		byID[c.ID] = c
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.list = cs
	cc.byID = byID
	cc.loadedAt = cc.now()
	return nil
}

// Get returns the cached list, refreshing it when it is older than the TTL.
// When the refresh fails the stale list is returned together with the error.
func (cc *CategoryCache) Get(ctx context.Context) ([]entity.Category, error) {
	if cc.fresh() {
		return cc.GetAllCategories(), nil
	}
	if err := cc.Refresh(ctx); err != nil {
		slog.Default().WarnContext(ctx, "can't refresh categories",
			slog.String("err", err.Error()),
		)
		return cc.GetAllCategories(), fmt.Errorf("categories may be stale: %w", err)
	}
	return cc.GetAllCategories(), nil
}

func (cc *CategoryCache) fresh() bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return !cc.loadedAt.IsZero() && cc.now().Sub(cc.loadedAt) < cc.c.TTL
}

func (cc *CategoryCache) GetCategoryByID(id int) (entity.Category, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	c, ok := cc.byID[id]
	return c, ok
}

func (cc *CategoryCache) GetAllCategories() []entity.Category {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return append([]entity.Category(nil), cc.list...)
}

// Invalidate forces the next Get to refresh.
func (cc *CategoryCache) Invalidate() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.loadedAt = time.Time{}
}
