package registry

import (
	"testing"
)

func TestEffectiveCreator_DefaultFromIdentifier(t *testing.T) {
	s := newStack(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 3, 1000)

	if got := s.reg.EffectiveCreator(id); got != creator {
		t.Fatalf("EffectiveCreator: got %s want %s", got, creator)
	}
	if got := s.reg.Creator(id); got != creator {
		t.Fatalf("Creator accessor: got %s want %s", got, creator)
	}
}

func TestEffectiveCreator_OverridePrecedence(t *testing.T) {
	s := newStack(t)
	embedded := acct(0xAA)
	next := acct(0xBB)
	id := mustID(t, embedded, 3, 1000)

	if err := s.reg.SetCreator(embedded, id, next); err != nil {
		t.Fatalf("SetCreator: %v", err)
	}
	if got := s.reg.Creator(id); got != next {
		t.Fatalf("override not honored: got %s want %s", got, next)
	}

	// The new creator can reassign again; the embedded default never
	// comes back on its own.
	third := acct(0xCC)
	if err := s.reg.SetCreator(next, id, third); err != nil {
		t.Fatalf("SetCreator by new creator: %v", err)
	}
	if got := s.reg.Creator(id); got != third {
		t.Fatalf("second reassignment: got %s want %s", got, third)
	}
	if err := s.reg.SetCreator(embedded, id, embedded); !IsCode(err, CodeOnlyCreator) {
		t.Fatalf("embedded creator kept rights after reassignment: %v", err)
	}
}

func TestIsCreatorOrProxy_SharedAllowlist(t *testing.T) {
	s := newStack(t)
	id := mustID(t, acct(0xAA), 1, 10)
	proxy := acct(0xBB)

	if s.reg.IsCreatorOrProxy(id, proxy) {
		t.Fatalf("unlisted account passed the gate")
	}
	if err := s.reg.AddSharedProxy(adminAcct, proxy); err != nil {
		t.Fatalf("AddSharedProxy: %v", err)
	}
	if !s.reg.IsCreatorOrProxy(id, proxy) {
		t.Fatalf("shared proxy rejected")
	}

	// No caching: revocation is visible on the next call.
	if err := s.reg.RemoveSharedProxy(adminAcct, proxy); err != nil {
		t.Fatalf("RemoveSharedProxy: %v", err)
	}
	if s.reg.IsCreatorOrProxy(id, proxy) {
		t.Fatalf("revoked shared proxy still passes")
	}
}

func TestIsCreatorOrProxy_PerCreatorStrategy(t *testing.T) {
	s := newStack(t)
	creator := acct(0xAA)
	operator := acct(0xBB)
	id := mustID(t, creator, 1, 10)

	if s.reg.IsCreatorOrProxy(id, operator) {
		t.Fatalf("ungranted operator passed the gate")
	}
	s.proxy.grant(creator, operator)
	if !s.reg.IsCreatorOrProxy(id, operator) {
		t.Fatalf("granted operator rejected")
	}

	// The grant follows the effective creator, not the embedded one.
	newCreator := acct(0xCC)
	if err := s.reg.SetCreator(creator, id, newCreator); err != nil {
		t.Fatalf("SetCreator: %v", err)
	}
	if s.reg.IsCreatorOrProxy(id, operator) {
		t.Fatalf("operator for the old creator still passes after reassignment")
	}
	s.proxy.grant(newCreator, operator)
	if !s.reg.IsCreatorOrProxy(id, operator) {
		t.Fatalf("operator for the new creator rejected")
	}
}

func TestReadAccessors_PureProjections(t *testing.T) {
	s := newStack(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 7, 555)

	if s.reg.MaxSupply(id) != 555 {
		t.Fatalf("MaxSupply: %d", s.reg.MaxSupply(id))
	}
	if s.reg.Index(id) != 7 {
		t.Fatalf("Index: %d", s.reg.Index(id))
	}
	if s.reg.Origin(id) != creator {
		t.Fatalf("Origin: %s", s.reg.Origin(id))
	}

	// Origin ignores overrides; Creator follows them.
	if err := s.reg.SetCreator(creator, id, acct(0xBB)); err != nil {
		t.Fatalf("SetCreator: %v", err)
	}
	if s.reg.Origin(id) != creator {
		t.Fatalf("Origin changed after override")
	}
	if s.reg.Creator(id) != acct(0xBB) {
		t.Fatalf("Creator ignored override")
	}
}
