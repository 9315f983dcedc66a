// Package statestore defines the deterministic key-value substrate the
// ledger persists into.
package statestore

// Store is a minimal mutable key-value store.
//
// Contract:
// - Put MUST overwrite (last write wins) and MUST copy key and value.
// - Get MUST return ErrNotFound when the key is absent and MUST return
//   bytes the caller may retain.
// - Delete of an absent key is a no-op.
// - Implementations MUST be deterministic: the same sequence of operations
//   yields the same observable state regardless of backend.
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Has(key []byte) bool
	Delete(key []byte) error
}
