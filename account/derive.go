package account

import (
	"crypto/ed25519"
	"errors"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"
)

// Domain-separation tags for account derivation. Changing a tag changes
// every derived account, so these are frozen.
const (
	tagEd25519    = "tokenreg-account-ed25519-v1"
	tagDilithium3 = "tokenreg-account-dilithium3-v1"
)

func deriveFrom(tag string, pub []byte) Account {
	h := sha3.New256()
	_, _ = h.Write([]byte(tag))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(pub)
	sum := h.Sum(nil)
	var a Account
	copy(a[:], sum[len(sum)-Size:])
	return a
}

// FromEd25519 derives an account from an Ed25519 public key.
//
// The account is the trailing 20 bytes of a domain-separated SHA3-256 of
// the public key. The derivation is pure: same key, same account.
func FromEd25519(pub ed25519.PublicKey) (Account, error) {
	if len(pub) != ed25519.PublicKeySize {
		return Zero, errors.New("account: bad ed25519 public key size")
	}
	return deriveFrom(tagEd25519, pub), nil
}

// FromEd25519Seed derives the account for the keypair expanded from seed.
func FromEd25519Seed(seed []byte) (Account, error) {
	if len(seed) != ed25519.SeedSize {
		return Zero, errors.New("account: bad ed25519 seed size")
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return FromEd25519(priv.Public().(ed25519.PublicKey))
}

// FromDilithium3 derives an account from a Dilithium3 public key using the
// same construction as FromEd25519 under a distinct tag.
func FromDilithium3(pub *mode3.PublicKey) (Account, error) {
	if pub == nil {
		return Zero, errors.New("account: missing dilithium3 public key")
	}
	var packed [mode3.PublicKeySize]byte
	pub.Pack(&packed)
	return deriveFrom(tagDilithium3, packed[:]), nil
}
