// Package uridigest computes content digests of metadata URI strings.
//
// Digests are CIDv1 strings (raw multicodec, sha2-256 multihash) so that a
// URI digest recorded here matches the digest any CID-aware tooling would
// compute over the same bytes.
package uridigest

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Sum returns the CIDv1 (raw + sha2-256) digest of uri as a string.
func Sum(uri string) string {
	sum, err := multihash.Sum([]byte(uri), multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum cannot fail for SHA2_256 with default length.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// SumCID returns the CIDv1 (raw + sha2-256) digest of uri.
func SumCID(uri string) (cid.Cid, error) {
	sum, err := multihash.Sum([]byte(uri), multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Equal reports whether two URI strings have the same digest.
//
// Comparing digests rather than strings keeps the comparison semantics
// identical between local and remote registries, which may canonicalize
// string storage differently.
func Equal(a, b string) bool {
	return Sum(a) == Sum(b)
}
