package sheetdb

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyStore fails the first failN calls of every operation.
type flakyStore struct {
	inner Store
	failN int
	calls int
}

func (f *flakyStore) fail() error {
	f.calls++
	if f.calls <= f.failN {
		return errors.New("transient backend error")
	}
	return nil
}

func (f *flakyStore) GetRange(ctx context.Context, rangeRef string) ([][]string, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.inner.GetRange(ctx, rangeRef)
}

func (f *flakyStore) AppendRows(ctx context.Context, rangeRef string, rows [][]string) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.inner.AppendRows(ctx, rangeRef, rows)
}

func (f *flakyStore) UpdateRange(ctx context.Context, rangeRef string, rows [][]string) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.inner.UpdateRange(ctx, rangeRef, rows)
}

func (f *flakyStore) DeleteRowRange(ctx context.Context, sheetID int64, startIndex, endIndex int) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.inner.DeleteRowRange(ctx, sheetID, startIndex, endIndex)
}

func (f *flakyStore) ListSheets(ctx context.Context) ([]SheetInfo, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.inner.ListSheets(ctx)
}

func TestRetryStoreReadsRecover(t *testing.T) {
	mem := NewMemStore()
	mem.SetSheet("Cases", [][]string{
		{"id", "date"},
		{"1", "2024-01-01"},
	})
	flaky := &flakyStore{inner: mem, failN: 2}
	store := NewRetryStore(flaky, time.Second)

	rows, err := store.GetRange(context.Background(), "Cases!A2:B")
	if err != nil {
		t.Fatalf("GetRange after transient failures: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "1" {
		t.Fatalf("got rows %v, want the data row", rows)
	}
	if flaky.calls != 3 {
		t.Errorf("inner store called %d times, want 3", flaky.calls)
	}
}

func TestRetryStoreReadsGiveUp(t *testing.T) {
	flaky := &flakyStore{inner: NewMemStore(), failN: 10}
	store := NewRetryStore(flaky, time.Second)

	if _, err := store.GetRange(context.Background(), "Cases!A2:B"); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if flaky.calls != readAttempts {
		t.Errorf("inner store called %d times, want %d", flaky.calls, readAttempts)
	}
}

// A timed-out append may have landed on the backend, so writes must never
// retry.
func TestRetryStoreWritesDoNotRetry(t *testing.T) {
	flaky := &flakyStore{inner: NewMemStore(), failN: 1}
	store := NewRetryStore(flaky, time.Second)

	err := store.AppendRows(context.Background(), "Cases!A2:B", [][]string{{"1", "2024-01-01"}})
	if err == nil {
		t.Fatal("expected the single write attempt to fail")
	}
	if flaky.calls != 1 {
		t.Errorf("inner store called %d times, want 1", flaky.calls)
	}
}
