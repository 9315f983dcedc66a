package registry

import (
	"fmt"

	"xdao.co/tokenreg/tokenid"
)

// RemainingSupply returns how many units of id may still be issued: the
// cap embedded in the identifier minus the ledger's issued counter.
//
// The ledger consults this hook inside its mint path; the registry does
// not re-check the cap in its own mint entry points.
//
// Issued supply exceeding the cap is impossible by construction. If it is
// ever observed, a prior invocation corrupted state, so this panics rather
// than returning a caller-correctable error.
func (r *Registry) RemainingSupply(id tokenid.ID) uint64 {
	max := tokenid.MaxSupplyOf(id)
	issued := r.ledger.TotalSupply(id)
	if issued > max {
		panic(fmt.Sprintf("registry: issued supply %d exceeds cap %d for %s", issued, max, id))
	}
	return max - issued
}
