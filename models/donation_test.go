package models

import "testing"

func TestDecodeDonationCurrentLayout(t *testing.T) {
	row := []string{
		"1718000000500", "2024-06-12", "06", "2024", "Beirut", "Al Khair Assoc",
		KindCash, "cash", "1,500.50", "USD", "", "", "medication", "", "ramadan drive",
		"2024-06-12T10:00:00Z", "",
	}
	d := DecodeDonation(row, LedgerReceived)
	if d == nil {
		t.Fatal("DecodeDonation returned nil")
	}
	if d.Ledger != LedgerReceived {
		t.Errorf("Ledger = %q, want received", d.Ledger)
	}
	if d.PartyName != "Al Khair Assoc" || d.Currency != "USD" {
		t.Errorf("decoded wrong: %+v", d)
	}
	if got := d.AmountValue().String(); got != "1500.5" {
		t.Errorf("AmountValue = %s, want 1500.5", got)
	}
}

func TestDecodeDonationLegacyLayout(t *testing.T) {
	// 15-column rows predate the derived month/year columns.
	row := []string{
		"1690000000000", "2023-07-20", "Tripoli", "Anonymous",
		KindInKind, "", "", "", "blankets", "20", "winter", "", "",
		"2023-07-20T12:00:00Z", "",
	}
	d := DecodeDonation(row, LedgerReceived)
	if d == nil {
		t.Fatal("DecodeDonation returned nil")
	}
	if d.Branch != "Tripoli" || d.Kind != KindInKind || d.InKindType != "blankets" {
		t.Errorf("legacy layout decoded wrong: %+v", d)
	}
	if d.Month != "" || d.Year != "" {
		t.Errorf("legacy rows have no stored month/year, got %q/%q", d.Month, d.Year)
	}
}

// Old data marks spending through the kind column instead of living in
// the Expenses sheet; decode without a ledger hint must classify it.
func TestDecodeDonationLegacyExpenseKind(t *testing.T) {
	row := []string{
		"1680000000000", "2023-04-01", "04", "2023", "Beirut", "pharmacy",
		KindExpense, "cash", "300", "USD", "", "", "medication", "patient 17", "",
		"2023-04-01T09:00:00Z", "",
	}
	d := DecodeDonation(row, "")
	if d == nil {
		t.Fatal("DecodeDonation returned nil")
	}
	if d.Ledger != LedgerSpent {
		t.Errorf("Ledger = %q, want spent for kind %q", d.Ledger, KindExpense)
	}
	d = DecodeDonation(row, LedgerReceived)
	if d.Ledger != LedgerReceived {
		t.Errorf("explicit ledger hint must win, got %q", d.Ledger)
	}
}

// Month and year are derived from the date on every write; stale stored
// values never survive an edit.
func TestDonationRowDerivesMonthYear(t *testing.T) {
	d := &DonationRecord{
		ID:    "1718000000500",
		Date:  "2024-06-12",
		Month: "01",   // stale
		Year:  "1999", // stale
	}
	row := d.Row()
	if len(row) != 17 {
		t.Fatalf("encoded row has %d cells, want 17", len(row))
	}
	if row[2] != "06" || row[3] != "2024" {
		t.Errorf("encoded month/year = %q/%q, want 06/2024", row[2], row[3])
	}

	// With an unparsable date the stored values are all there is.
	d.Date = "garbage"
	row = d.Row()
	if row[2] != "01" || row[3] != "1999" {
		t.Errorf("fallback month/year = %q/%q, want stored 01/1999", row[2], row[3])
	}
}

func TestLedgerEntity(t *testing.T) {
	if LedgerEntity(LedgerSpent) != EntityExpenses {
		t.Error("spent ledger must map to the Expenses sheet")
	}
	if LedgerEntity(LedgerReceived) != EntityDonations {
		t.Error("received ledger must map to the Donations sheet")
	}
	if LedgerEntity("") != EntityDonations {
		t.Error("empty ledger defaults to the Donations sheet")
	}
}
