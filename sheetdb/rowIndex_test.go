package sheetdb

import (
	"context"
	"testing"
)

func TestValueRangeRow(t *testing.T) {
	cases := []struct {
		headerRows, dataIndex, want int
	}{
		{1, 0, 2},
		{1, 3, 5},
		{2, 0, 3},
		{0, 0, 1},
	}
	for _, tc := range cases {
		if got := ValueRangeRow(tc.headerRows, tc.dataIndex); got != tc.want {
			t.Errorf("ValueRangeRow(%d, %d) = %d, want %d", tc.headerRows, tc.dataIndex, got, tc.want)
		}
	}
}

func TestStructuralRowSpan(t *testing.T) {
	cases := []struct {
		headerRows, dataIndex, wantStart, wantEnd int
	}{
		{1, 0, 1, 2},
		{1, 3, 4, 5},
		{2, 0, 2, 3},
	}
	for _, tc := range cases {
		start, end := StructuralRowSpan(tc.headerRows, tc.dataIndex)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Errorf("StructuralRowSpan(%d, %d) = [%d,%d), want [%d,%d)",
				tc.headerRows, tc.dataIndex, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

// The two addressing schemes must land on the same physical row: writing
// through a value range at a data index and then deleting the structural
// span for the same index must remove exactly that row.
func TestAddressingSchemesAgree(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	store.SetSheet("Cases", [][]string{
		{"id", "date"},
		{"1", "2024-01-01"},
		{"2", "2024-01-02"},
		{"3", "2024-01-03"},
	})

	dataIndex := 1 // the row holding id "2"
	ref := RowRange("Cases", 1, dataIndex, 2)
	rows, err := store.GetRange(ctx, ref)
	if err != nil {
		t.Fatalf("GetRange(%q): %v", ref, err)
	}
	if len(rows) != 1 || rows[0][0] != "2" {
		t.Fatalf("value range addressed %v, want row with id 2", rows)
	}

	infos, err := store.ListSheets(ctx)
	if err != nil {
		t.Fatalf("ListSheets: %v", err)
	}
	start, end := StructuralRowSpan(1, dataIndex)
	if err := store.DeleteRowRange(ctx, infos[0].SheetID, start, end); err != nil {
		t.Fatalf("DeleteRowRange: %v", err)
	}

	remaining := store.Rows("Cases")
	if len(remaining) != 3 {
		t.Fatalf("got %d rows after delete, want 3", len(remaining))
	}
	if remaining[1][0] != "1" || remaining[2][0] != "3" {
		t.Errorf("wrong row deleted, remaining ids %q and %q", remaining[1][0], remaining[2][0])
	}
}
