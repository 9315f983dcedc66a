package account

import (
	"strings"
	"testing"
)

func TestParse_RoundTrip(t *testing.T) {
	var a Account
	for i := range a {
		a[i] = byte(i + 1)
	}
	s := a.String()
	if !strings.HasPrefix(s, "0x") || len(s) != 2+2*Size {
		t.Fatalf("bad canonical form: %q", s)
	}
	got, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != a {
		t.Fatalf("round trip mismatch: %s vs %s", got, a)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"NoPrefix", "aabbccddeeff00112233445566778899aabbccdd"},
		{"ShortHex", "0xaabb"},
		{"LongHex", "0x" + strings.Repeat("ab", Size+1)},
		{"NotHex", "0x" + strings.Repeat("zz", Size)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.in); err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
		})
	}
}

func TestZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatalf("Zero must report IsZero")
	}
	var a Account
	a[Size-1] = 1
	if a.IsZero() {
		t.Fatalf("nonzero account reported IsZero")
	}
}
