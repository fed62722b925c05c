package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pizza Palace", "pizza-palace"},
		{"Fish & Chips", "fish-chips"},
		{"  Spaced  Out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"Crêpe Café", "crêpe-café"},
		{"Table 42", "table-42"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
