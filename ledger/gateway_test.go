package ledger

import (
	"context"
	"testing"

	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
)

func caseRow(id, date, branch string) []string {
	return (&models.CaseRecord{ID: id, Date: date, Branch: branch}).Row()
}

func seededCaseStore(t *testing.T) *sheetdb.MemStore {
	t.Helper()
	store := sheetdb.NewMemStore()
	store.SetSheet("Cases", [][]string{
		{"id", "date", "branch", "gender", "case_type", "description", "team", "notes", "created_at", "status"},
		caseRow("100", "2024-06-01", "Beirut"),
		caseRow("200", "2024-06-02", "Tripoli"),
		caseRow("300", "2024-06-03", "Saida"),
	})
	return store
}

func caseBinding(t *testing.T) models.Binding {
	t.Helper()
	b, ok := models.BindingFor(models.EntityCases)
	if !ok {
		t.Fatal("no binding for cases")
	}
	return b
}

func TestGatewayCreate(t *testing.T) {
	ctx := context.Background()
	store := seededCaseStore(t)
	g := NewGateway(store)
	b := caseBinding(t)

	if err := g.Create(ctx, b, caseRow("400", "2024-06-04", "Tyre")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rows := store.Rows("Cases")
	if len(rows) != 5 {
		t.Fatalf("sheet has %d rows, want 5", len(rows))
	}
	if rows[4][0] != "400" {
		t.Errorf("appended row id = %q, want 400", rows[4][0])
	}
}

func TestGatewayCreateRejectsWrongWidth(t *testing.T) {
	ctx := context.Background()
	store := seededCaseStore(t)
	g := NewGateway(store)

	err := g.Create(ctx, caseBinding(t), []string{"400", "2024-06-04"})
	if KindOf(err) != KindValidation {
		t.Fatalf("error kind = %v, want validation", KindOf(err))
	}
	if len(store.Rows("Cases")) != 4 {
		t.Error("rejected create must not touch the sheet")
	}
}

func TestGatewayLocateByID(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(seededCaseStore(t))
	b := caseBinding(t)

	idx, err := g.LocateByID(ctx, b, "200")
	if err != nil {
		t.Fatalf("LocateByID: %v", err)
	}
	if idx != 1 {
		t.Errorf("data index = %d, want 1", idx)
	}

	_, err = g.LocateByID(ctx, b, "999")
	if !IsNotFound(err) {
		t.Errorf("missing id: error kind = %v, want not-found", KindOf(err))
	}
}

func TestGatewayUpdate(t *testing.T) {
	ctx := context.Background()
	store := seededCaseStore(t)
	g := NewGateway(store)

	if err := g.Update(ctx, caseBinding(t), "200", caseRow("200", "2024-06-20", "Tripoli North")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	rows := store.Rows("Cases")
	if rows[2][1] != "2024-06-20" || rows[2][2] != "Tripoli North" {
		t.Errorf("row not replaced: %v", rows[2])
	}
	// Neighbors untouched.
	if rows[1][0] != "100" || rows[3][0] != "300" {
		t.Errorf("update touched neighboring rows: %v / %v", rows[1], rows[3])
	}
}

// A failed locate must leave the sheet exactly as it was.
func TestGatewayUpdateMissingID(t *testing.T) {
	ctx := context.Background()
	store := seededCaseStore(t)
	g := NewGateway(store)

	before := store.Rows("Cases")
	err := g.Update(ctx, caseBinding(t), "999", caseRow("999", "2024-06-20", "Nowhere"))
	if !IsNotFound(err) {
		t.Fatalf("error kind = %v, want not-found", KindOf(err))
	}
	after := store.Rows("Cases")
	if len(before) != len(after) {
		t.Fatalf("row count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		for j := range before[i] {
			if before[i][j] != after[i][j] {
				t.Fatalf("cell [%d][%d] changed: %q -> %q", i, j, before[i][j], after[i][j])
			}
		}
	}
}

func TestGatewayUpdateCell(t *testing.T) {
	ctx := context.Background()
	store := seededCaseStore(t)
	g := NewGateway(store)
	b := caseBinding(t)

	if err := g.UpdateCell(ctx, b, "200", 7, "updated note"); err != nil {
		t.Fatalf("UpdateCell: %v", err)
	}
	rows := store.Rows("Cases")
	if rows[2][7] != "updated note" {
		t.Errorf("cell = %q, want updated note", rows[2][7])
	}
	if rows[2][2] != "Tripoli" {
		t.Errorf("UpdateCell touched another column: %v", rows[2])
	}

	if err := g.UpdateCell(ctx, b, "200", b.Width, "x"); KindOf(err) != KindValidation {
		t.Errorf("out-of-schema column: error kind = %v, want validation", KindOf(err))
	}
}

func TestGatewaySoftDelete(t *testing.T) {
	ctx := context.Background()
	store := seededCaseStore(t)
	g := NewGateway(store)

	if err := g.Delete(ctx, caseBinding(t), "200", DeleteSoft); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	rows := store.Rows("Cases")
	if len(rows) != 4 {
		t.Fatalf("soft delete must keep the row, got %d rows", len(rows))
	}
	if rows[2][9] != models.StatusDeleted {
		t.Errorf("status cell = %q, want %q", rows[2][9], models.StatusDeleted)
	}
	// Everything but the status cell stays.
	if rows[2][0] != "200" || rows[2][2] != "Tripoli" {
		t.Errorf("soft delete touched other cells: %v", rows[2])
	}
}

func TestGatewaySoftDeleteNeedsStatusColumn(t *testing.T) {
	ctx := context.Background()
	store := sheetdb.NewMemStore()
	store.SetSheet("Cases_Raw_Data", [][]string{
		{"id", "date", "month", "year", "branch", "gender", "case_type", "notes"},
		{"500", "2024-06-01", "06", "2024", "Beirut", "F", "surgery", ""},
	})
	g := NewGateway(store)
	b, _ := models.BindingFor(models.EntityCasesRaw)

	err := g.Delete(ctx, b, "500", DeleteSoft)
	if KindOf(err) != KindValidation {
		t.Errorf("error kind = %v, want validation", KindOf(err))
	}
}

func TestGatewayHardDelete(t *testing.T) {
	ctx := context.Background()
	store := seededCaseStore(t)
	g := NewGateway(store)

	if err := g.Delete(ctx, caseBinding(t), "200", DeleteHard); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	rows := store.Rows("Cases")
	if len(rows) != 3 {
		t.Fatalf("sheet has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "id" {
		t.Error("header row must survive a hard delete")
	}
	// Rows below the deleted one shift up.
	if rows[1][0] != "100" || rows[2][0] != "300" {
		t.Errorf("remaining ids = %q, %q, want 100, 300", rows[1][0], rows[2][0])
	}
}
