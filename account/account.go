// Package account provides 20-byte account identifiers used throughout the
// registry, plus deterministic derivation from signing keys.
package account

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Size is the length of an account identifier in bytes.
const Size = 20

// Account is a fixed-width account identifier.
//
// The zero value is the null account; it is never a valid recipient,
// creator, or proxy.
type Account [Size]byte

// Zero is the null account.
var Zero Account

// IsZero reports whether a is the null account.
func (a Account) IsZero() bool { return a == Zero }

// String returns the canonical form: "0x" + 40 lowercase hex digits.
func (a Account) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns a copy of the identifier bytes.
func (a Account) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, a[:])
	return out
}

// Parse parses the canonical hex form. The "0x" prefix is required and
// hex digits are accepted in either case.
func Parse(s string) (Account, error) {
	if !strings.HasPrefix(s, "0x") {
		return Zero, errors.New("account: missing 0x prefix")
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return Zero, fmt.Errorf("account: invalid hex: %w", err)
	}
	return FromBytes(raw)
}

// FromBytes constructs an Account from exactly Size bytes.
func FromBytes(b []byte) (Account, error) {
	if len(b) != Size {
		return Zero, fmt.Errorf("account: need %d bytes, got %d", Size, len(b))
	}
	var a Account
	copy(a[:], b)
	return a, nil
}
