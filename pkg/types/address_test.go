package types

import "testing"

func TestAddress_IsZero(t *testing.T) {
	var a Address
	if !a.IsZero() {
		t.Errorf("zero-value Address should report IsZero")
	}
	a = "02abc123"
	if a.IsZero() {
		t.Errorf("populated Address should not report IsZero")
	}
}

func TestAddress_String(t *testing.T) {
	a := Address("03deadbeef")
	if a.String() != "03deadbeef" {
		t.Errorf("String() = %q, want %q", a.String(), "03deadbeef")
	}
}
