package utils

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"100", "100"},
		{"1,500.50", "1500.5"},
		{" 250 USD ", "250"},
		{"$99.90", "99.9"},
		{"", "0"},
		{"free", "0"},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.value).String(); got != tc.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("12.34")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if d.String() != "12.34" {
		t.Errorf("got %s, want 12.34", d.String())
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}
