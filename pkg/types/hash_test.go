package types

import "testing"

func TestHash_IsZero(t *testing.T) {
	cases := []struct {
		name string
		h    Hash
		want bool
	}{
		{"empty", "", true},
		{"zero const", ZeroHash, true},
		{"nonempty", "abcd", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.h.IsZero(); got != tc.want {
				t.Errorf("IsZero() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHash_Equal(t *testing.T) {
	a := Hash("DEADBEEF")
	b := Hash("deadbeef")
	if !a.Equal(b) {
		t.Errorf("expected case-insensitive equality between %q and %q", a, b)
	}
	if a.Equal("cafebabe") {
		t.Errorf("unrelated hashes compared equal")
	}
}

func TestHash_String(t *testing.T) {
	h := Hash("feed")
	if h.String() != "feed" {
		t.Errorf("String() = %q, want %q", h.String(), "feed")
	}
}
