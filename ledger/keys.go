package ledger

import (
	"encoding/binary"
	"fmt"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/statestore"
	"xdao.co/tokenreg/tokenid"
)

// Key prefixes. Frozen: changing one orphans existing state.
const (
	prefixBalance   = 'b' // prefixBalance | id | owner -> uint64
	prefixSupply    = 's' // prefixSupply | id          -> uint64
	prefixURI       = 'u' // prefixURI | id             -> string
	prefixPermanent = 'p' // prefixPermanent | id       -> 1
)

func balanceKey(id tokenid.ID, owner account.Account) []byte {
	k := make([]byte, 0, 1+tokenid.Size+account.Size)
	k = append(k, prefixBalance)
	k = append(k, id[:]...)
	return append(k, owner[:]...)
}

func supplyKey(id tokenid.ID) []byte {
	k := make([]byte, 0, 1+tokenid.Size)
	k = append(k, prefixSupply)
	return append(k, id[:]...)
}

func uriKey(id tokenid.ID) []byte {
	k := make([]byte, 0, 1+tokenid.Size)
	k = append(k, prefixURI)
	return append(k, id[:]...)
}

func permanentKey(id tokenid.ID) []byte {
	k := make([]byte, 0, 1+tokenid.Size)
	k = append(k, prefixPermanent)
	return append(k, id[:]...)
}

// readU64 reads a big-endian counter; an absent key reads as zero.
//
// The substrate is assumed deterministic: any failure other than absence
// means the host state is corrupt, which is not recoverable here.
func (l *Ledger) readU64(key []byte) uint64 {
	b, err := l.store.Get(key)
	if err != nil {
		if statestore.IsNotFound(err) {
			return 0
		}
		panic(fmt.Sprintf("ledger: state read failed: %v", err))
	}
	if len(b) != 8 {
		panic(fmt.Sprintf("ledger: counter at %x has width %d", key, len(b)))
	}
	return binary.BigEndian.Uint64(b)
}

func (l *Ledger) writeU64(key []byte, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return l.store.Put(key, b[:])
}
