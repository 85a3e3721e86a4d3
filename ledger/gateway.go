package ledger

import (
	"context"
	"errors"
	"sync"

	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
	"bitbucket.org/alrahmateam/medaid_backend/utils"
)

// DeleteMode picks between the status-flag soft delete and the physical
// row removal. Soft is the default everywhere; hard is an administrative
// purge.
type DeleteMode int

const (
	DeleteSoft DeleteMode = iota
	DeleteHard
)

// Gateway owns every mutation against the positional store. Locate is a
// linear scan of the id column; scan+write runs under a per-entity mutex
// (plus a best-effort Redis lock via utils.EntityLock) because the store
// itself has no row locking: two unserialized mutations could both act on
// a stale row index.
type Gateway struct {
	store sheetdb.Store

	muGuard sync.Mutex
	mus     map[models.EntityType]*sync.Mutex
}

func NewGateway(store sheetdb.Store) *Gateway {
	return &Gateway{store: store, mus: map[models.EntityType]*sync.Mutex{}}
}

func (g *Gateway) entityMutex(entity models.EntityType) *sync.Mutex {
	g.muGuard.Lock()
	defer g.muGuard.Unlock()
	mu, ok := g.mus[entity]
	if !ok {
		mu = &sync.Mutex{}
		g.mus[entity] = mu
	}
	return mu
}

func (g *Gateway) lockEntity(ctx context.Context, entity models.EntityType, funcName string) (func(), error) {
	mu := g.entityMutex(entity)
	mu.Lock()
	release, err := utils.EntityLock(ctx, string(entity), "ledger", funcName)
	if err != nil {
		mu.Unlock()
		return nil, transientError(funcName, entity, err)
	}
	return func() {
		release()
		mu.Unlock()
	}, nil
}

// Create appends an encoded row. The id is caller-generated (a timestamp
// token); no collision check happens here, matching the store's
// append-only contract.
func (g *Gateway) Create(ctx context.Context, b models.Binding, row []string) error {
	if len(row) != b.Width {
		return validationError("Create", b.Entity, errors.New("row width does not match current schema"))
	}
	if err := g.store.AppendRows(ctx, b.DataRange, [][]string{row}); err != nil {
		return transientError("Create", b.Entity, err)
	}
	return nil
}

// Append writes multiple encoded rows in one call (promotion batches).
func (g *Gateway) Append(ctx context.Context, b models.Binding, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := g.store.AppendRows(ctx, b.DataRange, rows); err != nil {
		return transientError("Append", b.Entity, err)
	}
	return nil
}

// LocateByID scans the id column for an exact string match and returns
// the 0-based data-row index. O(n) per call by design.
func (g *Gateway) LocateByID(ctx context.Context, b models.Binding, id string) (int, error) {
	cells, err := g.store.GetRange(ctx, b.IDColRange)
	if err != nil {
		return 0, transientError("LocateByID", b.Entity, err)
	}
	for i, row := range cells {
		if len(row) > 0 && row[0] == id {
			return i, nil
		}
	}
	return 0, notFoundError("LocateByID", b.Entity, id)
}

// Update overwrites the full row at the located index. Whole-row replace,
// not a partial patch: the encoded record is the new truth.
func (g *Gateway) Update(ctx context.Context, b models.Binding, id string, row []string) error {
	if len(row) != b.Width {
		return validationError("Update", b.Entity, errors.New("row width does not match current schema"))
	}
	unlock, err := g.lockEntity(ctx, b.Entity, "Update")
	if err != nil {
		return err
	}
	defer unlock()

	idx, err := g.LocateByID(ctx, b, id)
	if err != nil {
		return err
	}
	ref := sheetdb.RowRange(b.Sheet, b.HeaderRows, idx, b.Width)
	if err := g.store.UpdateRange(ctx, ref, [][]string{row}); err != nil {
		return transientError("Update", b.Entity, err)
	}
	return nil
}

// UpdateCell patches one column of a located row, leaving the rest of the
// row untouched. Used for the status flag and the photo reference.
func (g *Gateway) UpdateCell(ctx context.Context, b models.Binding, id string, col int, value string) error {
	if col < 0 || col >= b.Width {
		return validationError("UpdateCell", b.Entity, errors.New("column outside current schema"))
	}
	unlock, err := g.lockEntity(ctx, b.Entity, "UpdateCell")
	if err != nil {
		return err
	}
	defer unlock()

	idx, err := g.LocateByID(ctx, b, id)
	if err != nil {
		return err
	}
	ref := sheetdb.CellRange(b.Sheet, b.HeaderRows, idx, col)
	if err := g.store.UpdateRange(ctx, ref, [][]string{{value}}); err != nil {
		return transientError("UpdateCell", b.Entity, err)
	}
	return nil
}

// Delete removes a record logically or physically depending on mode.
func (g *Gateway) Delete(ctx context.Context, b models.Binding, id string, mode DeleteMode) error {
	if mode == DeleteHard {
		return g.deleteHard(ctx, b, id)
	}
	if b.StatusCol < 0 {
		return validationError("Delete", b.Entity, errors.New("entity has no status column for soft delete"))
	}
	return g.UpdateCell(ctx, b, id, b.StatusCol, models.StatusDeleted)
}

func (g *Gateway) deleteHard(ctx context.Context, b models.Binding, id string) error {
	unlock, err := g.lockEntity(ctx, b.Entity, "deleteHard")
	if err != nil {
		return err
	}
	defer unlock()

	idx, err := g.LocateByID(ctx, b, id)
	if err != nil {
		return err
	}
	sheetID, err := g.sheetID(ctx, b)
	if err != nil {
		return err
	}
	start, end := sheetdb.StructuralRowSpan(b.HeaderRows, idx)
	if err := g.store.DeleteRowRange(ctx, sheetID, start, end); err != nil {
		return transientError("deleteHard", b.Entity, err)
	}
	return nil
}

func (g *Gateway) sheetID(ctx context.Context, b models.Binding) (int64, error) {
	infos, err := g.store.ListSheets(ctx)
	if err != nil {
		return 0, transientError("sheetID", b.Entity, err)
	}
	for _, info := range infos {
		if info.Title == b.Sheet {
			return info.SheetID, nil
		}
	}
	return 0, &Error{Kind: KindInternal, Op: "sheetID", Entity: b.Entity, Err: errors.New("sheet not found in spreadsheet")}
}
