package statestore

import "errors"

var (
	ErrNotFound   = errors.New("statestore: not found")
	ErrInvalidKey = errors.New("statestore: invalid key")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
