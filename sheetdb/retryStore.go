package sheetdb

import (
	"context"
	"time"
)

const readAttempts = 3

type retryStore struct {
	inner   Store
	timeout time.Duration
	backoff time.Duration
}

// NewRetryStore bounds every operation with a timeout and retries
// transient failures on read operations only. Writes never retry: a
// timed-out append may still have landed, and a blind second attempt
// would duplicate the row.
func NewRetryStore(inner Store, timeout time.Duration) Store {
	return &retryStore{inner: inner, timeout: timeout, backoff: 300 * time.Millisecond}
}

func (r *retryStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *retryStore) GetRange(ctx context.Context, rangeRef string) ([][]string, error) {
	var rows [][]string
	err := r.retryRead(ctx, func(opCtx context.Context) error {
		var err error
		rows, err = r.inner.GetRange(opCtx, rangeRef)
		return err
	})
	return rows, err
}

func (r *retryStore) ListSheets(ctx context.Context) ([]SheetInfo, error) {
	var infos []SheetInfo
	err := r.retryRead(ctx, func(opCtx context.Context) error {
		var err error
		infos, err = r.inner.ListSheets(opCtx)
		return err
	})
	return infos, err
}

func (r *retryStore) retryRead(ctx context.Context, op func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		opCtx, cancel := r.withTimeout(ctx)
		lastErr = op(opCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			// Caller is gone; stop burning attempts.
			return lastErr
		}
		if attempt < readAttempts {
			select {
			case <-time.After(r.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return lastErr
			}
		}
	}
	return lastErr
}

func (r *retryStore) AppendRows(ctx context.Context, rangeRef string, rows [][]string) error {
	opCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.inner.AppendRows(opCtx, rangeRef, rows)
}

func (r *retryStore) UpdateRange(ctx context.Context, rangeRef string, rows [][]string) error {
	opCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.inner.UpdateRange(opCtx, rangeRef, rows)
}

func (r *retryStore) DeleteRowRange(ctx context.Context, sheetID int64, startIndex, endIndex int) error {
	opCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.inner.DeleteRowRange(opCtx, sheetID, startIndex, endIndex)
}
