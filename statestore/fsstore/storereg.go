package fsstore

import (
	"flag"
	"fmt"

	"xdao.co/tokenreg/statestore"
	"xdao.co/tokenreg/statestore/storereg"
)

var (
	flagDir string
)

func init() {
	storereg.MustRegister(storereg.Backend{
		Name:        "fs",
		Description: "Filesystem state store (directory)",
		Flags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagDir, "fs-dir", "", "state directory (for --backend=fs)")
		},
		Open: func() (statestore.Store, func() error, error) {
			if flagDir == "" {
				return nil, nil, fmt.Errorf("missing --fs-dir")
			}
			st, err := New(flagDir)
			return st, nil, err
		},
	})
}
