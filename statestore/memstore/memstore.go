// Package memstore is an in-memory statestore backend.
package memstore

import (
	"xdao.co/tokenreg/statestore"
)

// Store keeps all state in a map. It is the reference backend: tests and
// single-process hosts use it directly.
//
// It is not safe for concurrent use; the host serializes invocations.
type Store struct {
	m map[string][]byte
}

var _ statestore.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{m: make(map[string][]byte)}
}

func (s *Store) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, statestore.ErrInvalidKey
	}
	v, ok := s.m[string(key)]
	if !ok {
		return nil, statestore.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Put(key, value []byte) error {
	if len(key) == 0 {
		return statestore.ErrInvalidKey
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.m[string(key)] = v
	return nil
}

func (s *Store) Has(key []byte) bool {
	if len(key) == 0 {
		return false
	}
	_, ok := s.m[string(key)]
	return ok
}

func (s *Store) Delete(key []byte) error {
	if len(key) == 0 {
		return statestore.ErrInvalidKey
	}
	delete(s.m, string(key))
	return nil
}

// Len reports the number of stored keys.
func (s *Store) Len() int { return len(s.m) }
