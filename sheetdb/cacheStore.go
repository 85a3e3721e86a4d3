package sheetdb

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/alrahmateam/medaid_backend/config"
)

const (
	rangeKeyPrefix = "sheetrange:"
	sheetSetPrefix = "sheetranges:"
)

type cacheStore struct {
	inner Store
	ttl   time.Duration
}

// NewCacheStore caches GetRange results in Redis for a short TTL and
// drops every cached range of a sheet when that sheet is written. The
// cache is a best-effort layer: with Redis down or unset every call falls
// through to the inner store.
func NewCacheStore(inner Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return inner
	}
	return &cacheStore{inner: inner, ttl: ttl}
}

func sheetOf(rangeRef string) string {
	if bang := strings.IndexByte(rangeRef, '!'); bang > 0 {
		return rangeRef[:bang]
	}
	return rangeRef
}

func (c *cacheStore) GetRange(ctx context.Context, rangeRef string) ([][]string, error) {
	key := rangeKeyPrefix + rangeRef
	var cached [][]string
	if hit, err := config.GetRedisObject(key, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := c.inner.GetRange(ctx, rangeRef)
	if err != nil {
		return nil, err
	}
	_ = config.SetRedisObject(key, rows, c.ttl)
	_ = config.AddRedisSet(sheetSetPrefix+sheetOf(rangeRef), key)
	return rows, nil
}

func (c *cacheStore) invalidateSheet(sheet string) {
	keys, err := config.GetRedisSetMembers(sheetSetPrefix + sheet)
	if err != nil || len(keys) == 0 {
		return
	}
	_ = config.RemoveRedisKey(append(keys, sheetSetPrefix+sheet)...)
}

func (c *cacheStore) invalidateAll(ctx context.Context) {
	// Structural deletes address sheets by numeric id, so resolve every
	// title rather than guessing which one changed.
	infos, err := c.inner.ListSheets(ctx)
	if err != nil {
		return
	}
	for _, info := range infos {
		c.invalidateSheet(info.Title)
	}
}

func (c *cacheStore) AppendRows(ctx context.Context, rangeRef string, rows [][]string) error {
	if err := c.inner.AppendRows(ctx, rangeRef, rows); err != nil {
		return err
	}
	c.invalidateSheet(sheetOf(rangeRef))
	return nil
}

func (c *cacheStore) UpdateRange(ctx context.Context, rangeRef string, rows [][]string) error {
	if err := c.inner.UpdateRange(ctx, rangeRef, rows); err != nil {
		return err
	}
	c.invalidateSheet(sheetOf(rangeRef))
	return nil
}

func (c *cacheStore) DeleteRowRange(ctx context.Context, sheetID int64, startIndex, endIndex int) error {
	if err := c.inner.DeleteRowRange(ctx, sheetID, startIndex, endIndex); err != nil {
		return err
	}
	c.invalidateAll(ctx)
	return nil
}

func (c *cacheStore) ListSheets(ctx context.Context) ([]SheetInfo, error) {
	return c.inner.ListSheets(ctx)
}
