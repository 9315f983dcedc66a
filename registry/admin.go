package registry

import (
	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/tokenid"
)

// SetCreator reassigns management rights over id to to. The caller must be
// the current effective creator or one of its proxies.
//
// Override entries are never deleted: rights move only by reassignment,
// and the null account is not a valid target, so a token can never become
// unmanaged.
func (r *Registry) SetCreator(caller account.Account, id tokenid.ID, to account.Account) error {
	if !r.IsCreatorOrProxy(id, caller) {
		return newError(KindAuth, CodeOnlyCreator, "caller may not manage this token")
	}
	if to.IsZero() {
		return newError(KindInput, CodeInvalidAddress, "creator reassignment target must not be the null account")
	}
	r.overrides[id] = to
	r.events.Emit(CreatorChanged{ID: id, NewCreator: to})
	return nil
}

// SetProxyRegistry replaces the external per-creator proxy resolver.
// Administrator only.
func (r *Registry) SetProxyRegistry(caller account.Account, pr ProxyRegistry) error {
	if !r.isAdmin(caller) {
		return newError(KindAuth, CodeOnlyAdmin, "caller is not the registry administrator")
	}
	if pr == nil {
		return newError(KindInput, CodeInvalidAddress, "proxy registry must not be nil")
	}
	r.proxyReg = pr
	r.events.Emit(ProxyRegistryChanged{Address: pr.Address()})
	return nil
}

// AddSharedProxy grants addr proxy rights for every creator.
// Administrator only.
func (r *Registry) AddSharedProxy(caller, addr account.Account) error {
	if !r.isAdmin(caller) {
		return newError(KindAuth, CodeOnlyAdmin, "caller is not the registry administrator")
	}
	if addr.IsZero() {
		return newError(KindInput, CodeInvalidAddress, "shared proxy must not be the null account")
	}
	r.shared[addr] = struct{}{}
	r.events.Emit(SharedProxyAdded{Address: addr})
	return nil
}

// RemoveSharedProxy revokes addr's shared proxy rights. Administrator only.
func (r *Registry) RemoveSharedProxy(caller, addr account.Account) error {
	if !r.isAdmin(caller) {
		return newError(KindAuth, CodeOnlyAdmin, "caller is not the registry administrator")
	}
	delete(r.shared, addr)
	r.events.Emit(SharedProxyRemoved{Address: addr})
	return nil
}

// DisableMigrate clears the migration target. Administrator only.
// There is no re-enable: the transition is one-way by design.
func (r *Registry) DisableMigrate(caller account.Account) error {
	if !r.isAdmin(caller) {
		return newError(KindAuth, CodeOnlyAdmin, "caller is not the registry administrator")
	}
	r.pred = nil
	r.events.Emit(MigrateDisabled{})
	return nil
}

// SetURI sets an impermanent custom URI for id. The caller must be able to
// manage the token and must currently hold its entire outstanding supply,
// measured against the cap embedded in the identifier.
func (r *Registry) SetURI(caller account.Account, id tokenid.ID, uri string) error {
	if err := r.requireFullOwner(caller, id); err != nil {
		return err
	}
	return r.ledger.SetURI(id, uri)
}

// SetPermanentURI sets a custom URI for id and freezes it. Same gate as SetURI.
func (r *Registry) SetPermanentURI(caller account.Account, id tokenid.ID, uri string) error {
	if err := r.requireFullOwner(caller, id); err != nil {
		return err
	}
	if err := r.ledger.SetPermanentURI(id, uri); err != nil {
		return err
	}
	r.events.Emit(PermanentURISet{ID: id, URI: uri})
	return nil
}

func (r *Registry) requireFullOwner(caller account.Account, id tokenid.ID) error {
	if !r.IsCreatorOrProxy(id, caller) {
		return newError(KindAuth, CodeOnlyCreator, "caller may not manage this token")
	}
	if r.ledger.BalanceOf(caller, id) != tokenid.MaxSupplyOf(id) {
		return newError(KindAuth, CodeOnlyFullOwner, "caller must hold the entire outstanding supply")
	}
	return nil
}
