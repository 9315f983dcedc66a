// Package fsstore is a filesystem-backed statestore backend.
package fsstore

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"xdao.co/tokenreg/statestore"
)

// Store keeps one file per key under a root directory.
//
// Keys are hex-encoded into filenames and sharded by their first byte, so
// the layout is a pure function of the keys. Writes go through a temp file
// and rename, so a crash never leaves a half-written value.
//
// This implementation is offline and deterministic: it never uses the
// network and never depends on wall-clock time.
type Store struct {
	root string
}

var _ statestore.Store = (*Store)(nil)

// New constructs a filesystem store rooted at root. The directory will be
// created if needed.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("fsstore: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, statestore.ErrInvalidKey
	}
	b, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, statestore.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Store) Put(key, value []byte) error {
	if len(key) == 0 {
		return statestore.ErrInvalidKey
	}
	path := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (s *Store) Has(key []byte) bool {
	if len(key) == 0 {
		return false
	}
	_, err := os.Stat(s.pathFor(key))
	return err == nil
}

func (s *Store) Delete(key []byte) error {
	if len(key) == 0 {
		return statestore.ErrInvalidKey
	}
	err := os.Remove(s.pathFor(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) pathFor(key []byte) string {
	name := hex.EncodeToString(key)
	return filepath.Join(s.root, name[:2], name)
}
