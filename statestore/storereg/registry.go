// Package storereg enumerates the statestore backends linked into a
// binary.
//
// Backends are build-time plugins: each backend package registers itself
// in init(), and a binary enables it with a blank import:
//
//	import _ "xdao.co/tokenreg/statestore/memstore"
//
// Registration therefore finishes before main runs; the package-level map
// is never mutated afterwards and needs no locking.
package storereg

import (
	"flag"
	"fmt"
	"sort"

	"xdao.co/tokenreg/statestore"
)

// Backend describes one linked-in store implementation.
type Backend struct {
	Name        string
	Description string

	// Flags adds the backend's own flags to fs. Called at most once per
	// process, before parsing.
	Flags func(fs *flag.FlagSet)

	// Open constructs the store from the parsed flag values. The close
	// function may be nil.
	Open func() (statestore.Store, func() error, error)
}

var backends = map[string]Backend{}

// Register adds a backend. It is called from backend init functions and
// fails on an incomplete or duplicate registration.
func Register(b Backend) error {
	switch {
	case b.Name == "":
		return fmt.Errorf("storereg: backend name is required")
	case b.Flags == nil:
		return fmt.Errorf("storereg: backend %q missing Flags", b.Name)
	case b.Open == nil:
		return fmt.Errorf("storereg: backend %q missing Open", b.Name)
	}
	if _, exists := backends[b.Name]; exists {
		return fmt.Errorf("storereg: backend %q already registered", b.Name)
	}
	backends[b.Name] = b
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(b Backend) {
	if err := Register(b); err != nil {
		panic(err)
	}
}

// List returns the registered backends sorted by name.
func List() []Backend {
	out := make([]Backend, 0, len(backends))
	for _, b := range backends {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RegisterFlags adds every backend's flags to fs, so one parse accepts
// them all (the flag package rejects unknown flags).
func RegisterFlags(fs *flag.FlagSet) {
	for _, b := range List() {
		b.Flags(fs)
	}
}

// Open opens the named backend.
func Open(name string) (statestore.Store, func() error, error) {
	b, ok := backends[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown backend %q", name)
	}
	return b.Open()
}
