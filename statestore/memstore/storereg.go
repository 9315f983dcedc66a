package memstore

import (
	"flag"

	"xdao.co/tokenreg/statestore"
	"xdao.co/tokenreg/statestore/storereg"
)

func init() {
	storereg.MustRegister(storereg.Backend{
		Name:        "mem",
		Description: "In-memory state store (volatile)",
		Flags:       func(fs *flag.FlagSet) {},
		Open: func() (statestore.Store, func() error, error) {
			return New(), nil, nil
		},
	})
}
