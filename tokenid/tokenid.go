// Package tokenid implements the self-describing token identifier codec.
//
// An identifier is a fixed 256-bit value that packs three fields at fixed
// bit offsets:
//
//	bytes [0:20)  creator   (160-bit account)
//	bytes [20:27) index     (56-bit per-creator sequence number)
//	bytes [27:32) maxSupply (40-bit issuance cap)
//
// Decoding is a pure function of the bit pattern and is total: every
// 256-bit value decodes to some (creator, index, maxSupply) triple, so the
// decode functions never fail. Uniqueness of identifiers follows from
// unique (creator, index) pairs; no registry of issued identifiers exists
// or is needed.
package tokenid

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"xdao.co/tokenreg/account"
)

// Size is the identifier width in bytes.
const Size = 32

// Field widths and bounds.
const (
	IndexBits     = 56
	MaxSupplyBits = 40

	// MaxIndex is the largest encodable per-creator sequence number.
	MaxIndex = uint64(1)<<IndexBits - 1
	// MaxMaxSupply is the largest encodable issuance cap.
	MaxMaxSupply = uint64(1)<<MaxSupplyBits - 1
)

const (
	creatorEnd = account.Size
	indexEnd   = creatorEnd + IndexBits/8
)

// ID is a token identifier. It is comparable and usable as a map key.
type ID [Size]byte

// CreatorOf returns the creator account embedded in id.
func CreatorOf(id ID) account.Account {
	var a account.Account
	copy(a[:], id[:creatorEnd])
	return a
}

// IndexOf returns the per-creator sequence number embedded in id.
func IndexOf(id ID) uint64 {
	var n uint64
	for _, b := range id[creatorEnd:indexEnd] {
		n = n<<8 | uint64(b)
	}
	return n
}

// MaxSupplyOf returns the issuance cap embedded in id.
func MaxSupplyOf(id ID) uint64 {
	var n uint64
	for _, b := range id[indexEnd:] {
		n = n<<8 | uint64(b)
	}
	return n
}

// Encode packs a (creator, index, maxSupply) triple into an identifier.
//
// Identifier construction normally happens in a minting front end; Encode
// exists so front ends and tests can build identifiers that decode back to
// the same triple.
func Encode(creator account.Account, index, maxSupply uint64) (ID, error) {
	var id ID
	if index > MaxIndex {
		return id, fmt.Errorf("tokenid: index %d exceeds %d bits", index, IndexBits)
	}
	if maxSupply > MaxMaxSupply {
		return id, fmt.Errorf("tokenid: max supply %d exceeds %d bits", maxSupply, MaxSupplyBits)
	}
	copy(id[:creatorEnd], creator[:])
	for i := indexEnd - 1; i >= creatorEnd; i-- {
		id[i] = byte(index)
		index >>= 8
	}
	for i := Size - 1; i >= indexEnd; i-- {
		id[i] = byte(maxSupply)
		maxSupply >>= 8
	}
	return id, nil
}

// String returns the canonical form: "0x" + 64 lowercase hex digits.
func (id ID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Bytes returns a copy of the identifier bytes.
func (id ID) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, id[:])
	return out
}

// Parse parses the canonical hex form produced by String.
func Parse(s string) (ID, error) {
	var id ID
	if !strings.HasPrefix(s, "0x") {
		return id, errors.New("tokenid: missing 0x prefix")
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return id, fmt.Errorf("tokenid: invalid hex: %w", err)
	}
	if len(raw) != Size {
		return id, fmt.Errorf("tokenid: need %d bytes, got %d", Size, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// FromBytes constructs an ID from exactly Size bytes.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != Size {
		return id, fmt.Errorf("tokenid: need %d bytes, got %d", Size, len(b))
	}
	copy(id[:], b)
	return id, nil
}
