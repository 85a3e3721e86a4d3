package ledger

import (
	"context"
	"time"

	"bitbucket.org/alrahmateam/medaid_backend/config"
	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
)

// Service wires the read pipeline (fetch -> decode -> reconcile -> filter
// -> sort) and the mutation entry points for every entity. It is the only
// thing the HTTP layer and the sync worker talk to.
type Service struct {
	reader  *Reader
	gateway *Gateway
}

func NewService(store sheetdb.Store) *Service {
	return &Service{reader: NewReader(store), gateway: NewGateway(store)}
}

func (s *Service) Gateway() *Gateway { return s.gateway }

func mustBinding(entity models.EntityType) models.Binding {
	b, ok := models.BindingFor(entity)
	if !ok {
		panic("no binding for entity " + string(entity))
	}
	return b
}

func nowStamp() string { return time.Now().Format(time.RFC3339) }

// ---- cases -----------------------------------------------------------

// ReconcileCases merges the canonical sheet with the raw form sheet and
// returns the merged view plus the rows that exist only in the raw
// source, encoded and ready to append. It never writes: promotion is the
// caller's explicit second step.
func (s *Service) ReconcileCases(ctx context.Context) ([]*models.CaseRecord, [][]string) {
	canonical := models.DecodeCases(s.reader.FetchCanonical(ctx, mustBinding(models.EntityCases)))
	raw := models.DecodeRawCases(s.reader.FetchRaw(ctx, mustBinding(models.EntityCasesRaw)))

	merged, missing := Merge(canonical, raw)
	promotions := make([][]string, 0, len(missing))
	for _, rec := range missing {
		promotions = append(promotions, rec.Row())
	}
	return merged, promotions
}

// CommitCasePromotions appends raw-only records to the canonical sheet.
func (s *Service) CommitCasePromotions(ctx context.Context, promotions [][]string) error {
	return s.gateway.Append(ctx, mustBinding(models.EntityCases), promotions)
}

// ListCases is the read path: merge-only, soft-deletes filtered, newest
// first. With SELF_HEAL_ON_READ set the legacy fused behavior applies and
// pending promotions are committed as a side effect of the read.
func (s *Service) ListCases(ctx context.Context) []*models.CaseRecord {
	merged, promotions := s.ReconcileCases(ctx)
	if len(promotions) > 0 && config.SelfHealOnRead() {
		if err := s.CommitCasePromotions(ctx, promotions); err != nil {
			config.LogError(config.GetLogger(), "ledger", "ListCases", "self-heal append failed", len(promotions), err)
		} else {
			config.LogInfo(config.GetLogger(), "ledger", "ListCases", "auto-sync moved raw rows to Cases", len(promotions))
		}
	}
	merged = FilterDeleted(merged)
	SortRecords(merged)
	return merged
}

func (s *Service) CreateCase(ctx context.Context, c *models.CaseRecord) (*models.CaseRecord, error) {
	c.ID = models.NewRecordID(time.Now())
	c.CreatedAt = nowStamp()
	c.Status = ""
	if err := s.gateway.Create(ctx, mustBinding(models.EntityCases), c.Row()); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCase(ctx context.Context, id string, c *models.CaseRecord) error {
	c.ID = id
	return s.gateway.Update(ctx, mustBinding(models.EntityCases), id, c.Row())
}

func (s *Service) DeleteCase(ctx context.Context, id string, mode DeleteMode) error {
	return s.gateway.Delete(ctx, mustBinding(models.EntityCases), id, mode)
}

// ---- donations / expenses -------------------------------------------

// ListDonations returns one ledger, or both interleaved when ledger is
// empty. Both ledgers are single-source; no raw reconcile applies.
func (s *Service) ListDonations(ctx context.Context, ledgerName string) []*models.DonationRecord {
	var records []*models.DonationRecord
	if ledgerName == "" || ledgerName == models.LedgerReceived {
		rows := s.reader.FetchCanonical(ctx, mustBinding(models.EntityDonations))
		records = append(records, models.DecodeDonations(rows, models.LedgerReceived)...)
	}
	if ledgerName == "" || ledgerName == models.LedgerSpent {
		rows := s.reader.FetchCanonical(ctx, mustBinding(models.EntityExpenses))
		records = append(records, models.DecodeDonations(rows, models.LedgerSpent)...)
	}
	records = FilterDeleted(records)
	SortRecords(records)
	return records
}

func (s *Service) CreateDonation(ctx context.Context, d *models.DonationRecord) (*models.DonationRecord, error) {
	d.ID = models.NewRecordID(time.Now())
	d.CreatedAt = nowStamp()
	d.Status = ""
	if d.Ledger == "" {
		d.Ledger = models.LedgerReceived
	}
	b := mustBinding(models.LedgerEntity(d.Ledger))
	if err := s.gateway.Create(ctx, b, d.Row()); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) UpdateDonation(ctx context.Context, ledgerName, id string, d *models.DonationRecord) error {
	d.ID = id
	d.Ledger = ledgerName
	return s.gateway.Update(ctx, mustBinding(models.LedgerEntity(ledgerName)), id, d.Row())
}

func (s *Service) DeleteDonation(ctx context.Context, ledgerName, id string, mode DeleteMode) error {
	return s.gateway.Delete(ctx, mustBinding(models.LedgerEntity(ledgerName)), id, mode)
}

// FinancialRaw is a passthrough of the untouched form-submission ledger.
func (s *Service) FinancialRaw(ctx context.Context) [][]string {
	return s.reader.FetchRaw(ctx, mustBinding(models.EntityFinancialRaw))
}

// ---- assets ----------------------------------------------------------

func (s *Service) ListAssets(ctx context.Context) []*models.AssetRecord {
	records := models.DecodeAssets(s.reader.FetchCanonical(ctx, mustBinding(models.EntityAssets)))
	records = FilterDeleted(records)
	SortRecords(records)
	return records
}

// ListBorrowed is the de-overloaded view of loaned rows in Assets.
func (s *Service) ListBorrowed(ctx context.Context) []*models.BorrowedAsset {
	out := []*models.BorrowedAsset{}
	for _, a := range s.ListAssets(ctx) {
		if a.IsLoaned() {
			out = append(out, a.BorrowedView())
		}
	}
	return out
}

// CreateBorrowed records a loan as an asset row with the loaned-asset
// marker and the overloaded category/description slots filled in.
func (s *Service) CreateBorrowed(ctx context.Context, b *models.BorrowedAsset) (*models.BorrowedAsset, error) {
	rec := models.NewBorrowedAsset(
		models.NewRecordID(time.Now()),
		b.Branch, b.AssetName, b.Quantity, b.Recipient, b.BorrowDate, b.Notes,
		nowStamp(),
	)
	if err := s.gateway.Create(ctx, mustBinding(models.EntityAssets), rec.Row()); err != nil {
		return nil, err
	}
	return rec.BorrowedView(), nil
}

func (s *Service) CreateAsset(ctx context.Context, a *models.AssetRecord) (*models.AssetRecord, error) {
	a.ID = models.NewRecordID(time.Now())
	now := nowStamp()
	if a.AddedAt == "" {
		a.AddedAt = now
	}
	a.UpdatedAt = now
	a.Status = ""
	if err := s.gateway.Create(ctx, mustBinding(models.EntityAssets), a.Row()); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAsset(ctx context.Context, id string, a *models.AssetRecord) error {
	a.ID = id
	a.UpdatedAt = nowStamp()
	return s.gateway.Update(ctx, mustBinding(models.EntityAssets), id, a.Row())
}

func (s *Service) DeleteAsset(ctx context.Context, id string, mode DeleteMode) error {
	return s.gateway.Delete(ctx, mustBinding(models.EntityAssets), id, mode)
}

// ---- medical team ----------------------------------------------------

func (s *Service) ListTeam(ctx context.Context) []*models.TeamMember {
	records := models.DecodeTeamMembers(s.reader.FetchCanonical(ctx, mustBinding(models.EntityMedicalTeam)))
	records = FilterDeleted(records)
	SortRecords(records)
	return records
}

func (s *Service) CreateTeamMember(ctx context.Context, m *models.TeamMember) (*models.TeamMember, error) {
	m.ID = models.NewRecordID(time.Now())
	m.Status = ""
	if err := s.gateway.Create(ctx, mustBinding(models.EntityMedicalTeam), m.Row()); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateTeamMember(ctx context.Context, id string, m *models.TeamMember) error {
	m.ID = id
	return s.gateway.Update(ctx, mustBinding(models.EntityMedicalTeam), id, m.Row())
}

func (s *Service) DeleteTeamMember(ctx context.Context, id string, mode DeleteMode) error {
	return s.gateway.Delete(ctx, mustBinding(models.EntityMedicalTeam), id, mode)
}

// SetMemberImage patches only the photo column so a concurrent profile
// edit is not clobbered by an upload.
func (s *Service) SetMemberImage(ctx context.Context, id string, url string) error {
	return s.gateway.UpdateCell(ctx, mustBinding(models.EntityMedicalTeam), id, models.ImageRefCol(), url)
}

// ---- inventory -------------------------------------------------------

func (s *Service) ListInventory(ctx context.Context) []*models.InventoryRow {
	return models.DecodeInventoryRows(s.reader.FetchCanonical(ctx, mustBinding(models.EntityInventory)))
}

// UpsertInventory overwrites a branch's counts, appending the branch row
// the first time it is seen.
func (s *Service) UpsertInventory(ctx context.Context, row *models.InventoryRow) error {
	b := mustBinding(models.EntityInventory)
	err := s.gateway.Update(ctx, b, row.Branch, row.Row())
	if IsNotFound(err) {
		return s.gateway.Create(ctx, b, row.Row())
	}
	return err
}
