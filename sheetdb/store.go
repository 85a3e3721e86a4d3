// Package sheetdb is the storage boundary of the app: everything above it
// sees the shared spreadsheet only through the five Store operations.
package sheetdb

import "context"

type SheetInfo struct {
	Title   string
	SheetID int64
}

// Store is the full contract against the backing spreadsheet. Value
// operations address cells by A1 range refs ("Cases!A2:J"); structural row
// deletion addresses a sheet by numeric id with 0-indexed absolute rows.
// Implementations must not depend on any spreadsheet feature beyond that.
type Store interface {
	GetRange(ctx context.Context, rangeRef string) ([][]string, error)
	AppendRows(ctx context.Context, rangeRef string, rows [][]string) error
	UpdateRange(ctx context.Context, rangeRef string, rows [][]string) error
	DeleteRowRange(ctx context.Context, sheetID int64, startIndex, endIndex int) error
	ListSheets(ctx context.Context) ([]SheetInfo, error)
}
