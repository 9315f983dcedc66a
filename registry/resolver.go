package registry

import (
	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/tokenid"
)

// EffectiveCreator returns the account currently holding management rights
// over id: the creator-override entry when present and non-null, otherwise
// the creator embedded in the identifier.
//
// The result is computed fresh on every call. Overrides and allowlist
// membership change between calls, so callers must not cache it.
func (r *Registry) EffectiveCreator(id tokenid.ID) account.Account {
	if over, ok := r.overrides[id]; ok && !over.IsZero() {
		return over
	}
	return tokenid.CreatorOf(id)
}

// IsCreatorOrProxy is the single authorization gate for creator-gated
// operations: candidate is the effective creator, or a proxy for it.
func (r *Registry) IsCreatorOrProxy(id tokenid.ID, candidate account.Account) bool {
	creator := r.EffectiveCreator(id)
	if candidate == creator {
		return true
	}
	return r.IsProxyForUser(creator, candidate)
}

// IsProxyForUser reports whether operator may act for creator: membership
// in the shared proxy allowlist grants proxy rights for every creator,
// and the external proxy-registry strategy resolves per-creator grants.
func (r *Registry) IsProxyForUser(creator, operator account.Account) bool {
	if _, ok := r.shared[operator]; ok {
		return true
	}
	return r.proxyReg != nil && r.proxyReg.IsProxyFor(creator, operator)
}

// Creator re-exposes EffectiveCreator as a read accessor. It never fails.
func (r *Registry) Creator(id tokenid.ID) account.Account {
	return r.EffectiveCreator(id)
}

// MaxSupply returns the issuance cap embedded in id. It never fails.
func (r *Registry) MaxSupply(id tokenid.ID) uint64 {
	return tokenid.MaxSupplyOf(id)
}

// Index returns the per-creator sequence number embedded in id. It never fails.
func (r *Registry) Index(id tokenid.ID) uint64 {
	return tokenid.IndexOf(id)
}

// Origin returns the default creator embedded in id, ignoring overrides.
// This is the ledger-facing hook; external readers want Creator.
func (r *Registry) Origin(id tokenid.ID) account.Account {
	return tokenid.CreatorOf(id)
}
