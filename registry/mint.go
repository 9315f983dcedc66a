package registry

import (
	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/tokenid"
)

// Mint issues quantity units of id to to. The caller must be the token's
// effective creator or one of its proxies.
//
// The entry is re-entrancy guarded: recipient acceptance callbacks run
// before this returns, and a nested call into a guarded surface fails with
// CodeReentrancy instead of observing a half-updated supply counter.
//
// The supply cap is enforced by the ledger via the RemainingSupply hook;
// its failure is returned unmodified.
func (r *Registry) Mint(caller, to account.Account, id tokenid.ID, quantity uint64, data []byte) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.leave()

	if !r.IsCreatorOrProxy(id, caller) {
		return newError(KindAuth, CodeOnlyCreator, "caller may not manage this token")
	}
	if quantity == 0 {
		return newError(KindInput, CodeZeroQuantity, "mint quantity must be positive")
	}
	if to.IsZero() {
		return newError(KindInput, CodeZeroAddress, "mint recipient must not be the null account")
	}
	return r.ledger.Mint(to, id, quantity, data)
}

// MintBatch issues several token types to the same recipient in one call.
//
// Authorization is checked for every id before any mutation: one
// unauthorized entry aborts the whole batch with zero balance changes.
func (r *Registry) MintBatch(caller, to account.Account, ids []tokenid.ID, quantities []uint64, data []byte) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.leave()

	if len(ids) != len(quantities) {
		return newError(KindInput, CodeLengthMismatch, "ids and quantities must have equal length")
	}
	if to.IsZero() {
		return newError(KindInput, CodeZeroAddress, "mint recipient must not be the null account")
	}
	for i, id := range ids {
		if quantities[i] == 0 {
			return newError(KindInput, CodeZeroQuantity, "mint quantity must be positive")
		}
		if !r.IsCreatorOrProxy(id, caller) {
			return newError(KindAuth, CodeOnlyCreator, "caller may not manage token "+id.String())
		}
	}
	return r.ledger.MintBatch(to, ids, quantities, data)
}
