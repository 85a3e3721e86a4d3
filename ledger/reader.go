package ledger

import (
	"context"

	"bitbucket.org/alrahmateam/medaid_backend/appctx"
	"bitbucket.org/alrahmateam/medaid_backend/config"
	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
)

// Reader fetches the row sets behind an entity. Read paths fail open: a
// storage failure logs and yields an empty set so list screens degrade
// to "no data" instead of erroring. Availability over consistency, on
// reads only.
type Reader struct {
	store sheetdb.Store
}

func NewReader(store sheetdb.Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) FetchCanonical(ctx context.Context, b models.Binding) [][]string {
	return r.fetch(ctx, b, "FetchCanonical")
}

// FetchRaw reads an entity's externally-populated source. Only dual-source
// entities (cases) have one; single-source entities never call this.
func (r *Reader) FetchRaw(ctx context.Context, b models.Binding) [][]string {
	return r.fetch(ctx, b, "FetchRaw")
}

func (r *Reader) fetch(ctx context.Context, b models.Binding, funcName string) [][]string {
	rows, err := r.store.GetRange(ctx, b.DataRange)
	if err != nil {
		requestId, _ := appctx.GetString(ctx, appctx.ContextKeyRequestId)
		config.LogError(config.GetLogger(), "ledger", funcName, "store read failed", map[string]any{
			"entity":    b.Entity,
			"range":     b.DataRange,
			"requestId": requestId,
		}, err)
		return nil
	}
	return rows
}
