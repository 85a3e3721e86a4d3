package models

import "testing"

func TestMonthlyDonationTotals(t *testing.T) {
	records := []*DonationRecord{
		{ID: "1", Date: "2024-06-01", Kind: KindCash, Amount: "100", Currency: "USD"},
		{ID: "2", Date: "2024-06-15", Kind: KindCash, Amount: "250.50", Currency: "USD"},
		{ID: "3", Date: "2024-06-20", Kind: KindInKind, Amount: "", Currency: "USD", InKindType: "blankets"},
		{ID: "4", Date: "2024-05-10", Kind: KindCash, Amount: "40", Currency: "USD"},
		{ID: "5", Date: "2024-06-02", Kind: KindCash, Amount: "3000000", Currency: "LBP"},
	}
	totals := MonthlyDonationTotals(records)
	if len(totals) != 3 {
		t.Fatalf("got %d buckets, want 3", len(totals))
	}

	// Newest month first, currencies ascending within a month.
	if totals[0].Month != "06" || totals[0].Currency != "LBP" {
		t.Errorf("bucket 0 = %s/%s, want 06/LBP", totals[0].Month, totals[0].Currency)
	}
	if totals[1].Month != "06" || totals[1].Currency != "USD" {
		t.Errorf("bucket 1 = %s/%s, want 06/USD", totals[1].Month, totals[1].Currency)
	}
	if totals[2].Month != "05" {
		t.Errorf("bucket 2 month = %s, want 05", totals[2].Month)
	}

	june := totals[1]
	if june.Count != 3 {
		t.Errorf("June USD count = %d, want 3 (in-kind rows still count)", june.Count)
	}
	if got := june.Total.String(); got != "350.5" {
		t.Errorf("June USD total = %s, want 350.5 (in-kind adds no amount)", got)
	}
}

// Rows whose date no longer parses fall back to the stored month/year
// columns instead of vanishing into an empty bucket.
func TestMonthlyDonationTotalsStoredFallback(t *testing.T) {
	records := []*DonationRecord{
		{ID: "1", Date: "???", Month: "03", Year: "2023", Kind: KindCash, Amount: "75", Currency: "USD"},
	}
	totals := MonthlyDonationTotals(records)
	if len(totals) != 1 {
		t.Fatalf("got %d buckets, want 1", len(totals))
	}
	if totals[0].Year != "2023" || totals[0].Month != "03" {
		t.Errorf("bucket = %s/%s, want 2023/03", totals[0].Year, totals[0].Month)
	}
}

func TestMonthlyCaseCounts(t *testing.T) {
	records := []*CaseRecord{
		{ID: "1", Date: "2024-06-01", Branch: "Beirut"},
		{ID: "2", Date: "2024-06-12", Branch: "Beirut"},
		{ID: "3", Date: "2024-06-20", Branch: "Tripoli"},
		{ID: "4", Date: "2023-12-31", Branch: "Beirut"},
	}
	counts := MonthlyCaseCounts(records)
	if len(counts) != 3 {
		t.Fatalf("got %d buckets, want 3", len(counts))
	}
	if counts[0].Branch != "Beirut" || counts[0].Count != 2 {
		t.Errorf("bucket 0 = %+v, want Beirut x2", counts[0])
	}
	if counts[1].Branch != "Tripoli" || counts[1].Count != 1 {
		t.Errorf("bucket 1 = %+v, want Tripoli x1", counts[1])
	}
	if counts[2].Year != "2023" {
		t.Errorf("bucket 2 year = %s, want 2023", counts[2].Year)
	}
}
