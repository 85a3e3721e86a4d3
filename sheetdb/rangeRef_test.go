package sheetdb

import "testing"

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{9, "J"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}
	for _, tc := range cases {
		if got := ColumnLetter(tc.index); got != tc.want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", tc.index, got, tc.want)
		}
		if got := columnIndex(tc.want); got != tc.index {
			t.Errorf("columnIndex(%q) = %d, want %d", tc.want, got, tc.index)
		}
	}
}

func TestParseRangeRef(t *testing.T) {
	cases := []struct {
		ref  string
		want RangeRef
	}{
		{"Cases!A2:J", RangeRef{Sheet: "Cases", StartCol: 0, StartRow: 2, EndCol: 9, EndRow: 0}},
		{"Inventory!A1:G1", RangeRef{Sheet: "Inventory", StartCol: 0, StartRow: 1, EndCol: 6, EndRow: 1}},
		{"Cases!J5:J5", RangeRef{Sheet: "Cases", StartCol: 9, StartRow: 5, EndCol: 9, EndRow: 5}},
		{"Cases!B3", RangeRef{Sheet: "Cases", StartCol: 1, StartRow: 3, EndCol: 1, EndRow: 3}},
	}
	for _, tc := range cases {
		got, err := ParseRangeRef(tc.ref)
		if err != nil {
			t.Fatalf("ParseRangeRef(%q): %v", tc.ref, err)
		}
		if got != tc.want {
			t.Errorf("ParseRangeRef(%q) = %+v, want %+v", tc.ref, got, tc.want)
		}
	}
}

func TestParseRangeRefErrors(t *testing.T) {
	for _, ref := range []string{"A2:J", "!A2:J", "Cases!2:5", "Cases!A0"} {
		if _, err := ParseRangeRef(ref); err == nil {
			t.Errorf("ParseRangeRef(%q): expected error", ref)
		}
	}
}

func TestRowRange(t *testing.T) {
	if got := RowRange("Cases", 1, 3, 10); got != "Cases!A5:J5" {
		t.Errorf("RowRange = %q, want Cases!A5:J5", got)
	}
	if got := RowRange("Donations", 1, 0, 17); got != "Donations!A2:Q2" {
		t.Errorf("RowRange = %q, want Donations!A2:Q2", got)
	}
}

func TestCellRange(t *testing.T) {
	if got := CellRange("Cases", 1, 3, 9); got != "Cases!J5:J5" {
		t.Errorf("CellRange = %q, want Cases!J5:J5", got)
	}
}
