package ledger

import (
	"context"
	"testing"

	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
)

func rawCaseRow(id, date, branch, caseType string) []string {
	month, year := models.DateParts(date)
	return []string{id, date, month, year, branch, "F", caseType, ""}
}

func newCaseFixture(t *testing.T) (*Service, *sheetdb.MemStore) {
	t.Helper()
	store := sheetdb.NewMemStore()
	store.SetSheet("Cases", [][]string{
		{"id", "date", "branch", "gender", "case_type", "description", "team", "notes", "created_at", "status"},
		caseRow("100", "2024-06-01", "Beirut"),
		caseRow("200", "2024-06-02", "Tripoli"),
	})
	store.SetSheet("Cases_Raw_Data", [][]string{
		{"id", "date", "month", "year", "branch", "gender", "case_type", "notes"},
		rawCaseRow("200", "2024-06-02", "IGNORED", "surgery"), // duplicate of canonical
		rawCaseRow("300", "2024-06-03", "Saida", "equipment"), // never promoted
	})
	return NewService(store), store
}

func TestReconcileCases(t *testing.T) {
	ctx := context.Background()
	service, _ := newCaseFixture(t)

	merged, promotions := service.ReconcileCases(ctx)
	if len(merged) != 3 {
		t.Fatalf("merged has %d records, want 3", len(merged))
	}
	if len(promotions) != 1 {
		t.Fatalf("promotions has %d rows, want 1 (only the raw-only record)", len(promotions))
	}
	if promotions[0][0] != "300" {
		t.Errorf("promotion id = %q, want 300", promotions[0][0])
	}
	if len(promotions[0]) != 10 {
		t.Errorf("promotion encoded %d cells, want the canonical width 10", len(promotions[0]))
	}
	// The duplicate keeps its canonical branch.
	for _, rec := range merged {
		if rec.ID == "200" && rec.Branch != "Tripoli" {
			t.Errorf("canonical record lost to the raw duplicate: %+v", rec)
		}
	}
}

// Reconcile never writes; convergence takes the explicit commit, after
// which a second pass has nothing left to promote.
func TestReconcileThenCommitConverges(t *testing.T) {
	ctx := context.Background()
	service, store := newCaseFixture(t)

	_, promotions := service.ReconcileCases(ctx)
	if got := len(store.Rows("Cases")); got != 3 {
		t.Fatalf("reconcile alone wrote to the sheet: %d rows", got)
	}
	if err := service.CommitCasePromotions(ctx, promotions); err != nil {
		t.Fatalf("CommitCasePromotions: %v", err)
	}
	if got := len(store.Rows("Cases")); got != 4 {
		t.Fatalf("canonical sheet has %d rows after commit, want 4", got)
	}

	merged, again := service.ReconcileCases(ctx)
	if len(again) != 0 {
		t.Errorf("second pass still wants to promote %d rows", len(again))
	}
	if len(merged) != 3 {
		t.Errorf("second pass merged %d records, want 3", len(merged))
	}
}

func TestListCasesDoesNotWriteByDefault(t *testing.T) {
	ctx := context.Background()
	service, store := newCaseFixture(t)

	records := service.ListCases(ctx)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if got := len(store.Rows("Cases")); got != 3 {
		t.Errorf("plain read appended rows: sheet has %d rows", got)
	}
	// Newest first.
	if records[0].ID != "300" || records[2].ID != "100" {
		t.Errorf("order = %s..%s, want 300..100", records[0].ID, records[2].ID)
	}
}

func TestListCasesSelfHealFlag(t *testing.T) {
	t.Setenv("SELF_HEAL_ON_READ", "true")
	ctx := context.Background()
	service, store := newCaseFixture(t)

	service.ListCases(ctx)
	if got := len(store.Rows("Cases")); got != 4 {
		t.Errorf("legacy fused mode must promote on read: sheet has %d rows, want 4", got)
	}
}

func TestListCasesFiltersDeleted(t *testing.T) {
	ctx := context.Background()
	service, store := newCaseFixture(t)

	if err := service.DeleteCase(ctx, "100", DeleteSoft); err != nil {
		t.Fatalf("DeleteCase: %v", err)
	}
	records := service.ListCases(ctx)
	for _, rec := range records {
		if rec.ID == "100" {
			t.Error("soft-deleted record still listed")
		}
	}
	// The row itself survives for audit.
	if got := len(store.Rows("Cases")); got != 3 {
		t.Errorf("soft delete removed a physical row: %d rows", got)
	}
}

func TestCreateCaseFillsServerFields(t *testing.T) {
	ctx := context.Background()
	service, store := newCaseFixture(t)

	created, err := service.CreateCase(ctx, &models.CaseRecord{
		Date: "2024-06-09", Branch: "Tyre", CaseType: "surgery",
		Status: models.StatusDeleted, // client-sent status must be discarded
	})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Errorf("server fields not filled: %+v", created)
	}
	if created.Status != "" {
		t.Errorf("Status = %q, want empty on create", created.Status)
	}
	rows := store.Rows("Cases")
	if rows[len(rows)-1][0] != created.ID {
		t.Errorf("created row not appended last")
	}
}

func TestListDonationsBothLedgers(t *testing.T) {
	ctx := context.Background()
	store := sheetdb.NewMemStore()
	donationRow := func(id, date string) []string {
		return (&models.DonationRecord{ID: id, Date: date, Kind: models.KindCash, Amount: "10", Currency: "USD"}).Row()
	}
	store.SetSheet("Donations", [][]string{
		make([]string, 17),
		donationRow("100", "2024-06-01"),
	})
	store.SetSheet("Expenses", [][]string{
		make([]string, 17),
		donationRow("200", "2024-06-02"),
	})
	service := NewService(store)

	records := service.ListDonations(ctx, "")
	if len(records) != 2 {
		t.Fatalf("got %d records, want both ledgers", len(records))
	}
	if records[0].ID != "200" || records[0].Ledger != models.LedgerSpent {
		t.Errorf("record 0 = %+v, want the newer spent row", records[0])
	}

	received := service.ListDonations(ctx, models.LedgerReceived)
	if len(received) != 1 || received[0].ID != "100" {
		t.Errorf("received ledger = %v", received)
	}
}

func TestUpsertInventory(t *testing.T) {
	ctx := context.Background()
	store := sheetdb.NewMemStore()
	store.SetSheet("Inventory", [][]string{
		{"الفرع", "كراسي معاقين", "ووكر متحرك", "فرشات هوا", "تخوت مرضى", "جهاز أوكسجين", "عكازات"},
	})
	service := NewService(store)

	row := &models.InventoryRow{Branch: "Beirut", Wheelchairs: "4", PatientBeds: "2"}
	if err := service.UpsertInventory(ctx, row); err != nil {
		t.Fatalf("first upsert (create): %v", err)
	}
	row.Wheelchairs = "7"
	if err := service.UpsertInventory(ctx, row); err != nil {
		t.Fatalf("second upsert (update): %v", err)
	}

	rows := service.ListInventory(ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d branch rows, want 1", len(rows))
	}
	if rows[0].Wheelchairs != "7" || rows[0].PatientBeds != "2" {
		t.Errorf("branch row = %+v", rows[0])
	}
}
