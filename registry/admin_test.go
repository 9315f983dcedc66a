package registry

import (
	"testing"

	"xdao.co/tokenreg/account"
)

func TestAdminGate(t *testing.T) {
	s := newStack(t)
	stranger := acct(0x11)

	if err := s.reg.AddSharedProxy(stranger, acct(0x22)); !IsCode(err, CodeOnlyAdmin) {
		t.Fatalf("AddSharedProxy by stranger: got %v", err)
	}
	if err := s.reg.RemoveSharedProxy(stranger, acct(0x22)); !IsCode(err, CodeOnlyAdmin) {
		t.Fatalf("RemoveSharedProxy by stranger: got %v", err)
	}
	if err := s.reg.DisableMigrate(stranger); !IsCode(err, CodeOnlyAdmin) {
		t.Fatalf("DisableMigrate by stranger: got %v", err)
	}
	if err := s.reg.SetProxyRegistry(stranger, s.proxy); !IsCode(err, CodeOnlyAdmin) {
		t.Fatalf("SetProxyRegistry by stranger: got %v", err)
	}
}

func TestAdminGate_RegistryLevelProxy(t *testing.T) {
	s := newStack(t)
	operator := acct(0x11)

	if err := s.reg.AddSharedProxy(operator, acct(0x22)); !IsCode(err, CodeOnlyAdmin) {
		t.Fatalf("before grant: got %v", err)
	}
	// An operator the proxy registry vouches for, on behalf of the
	// administrator, passes the admin gate.
	s.proxy.grant(adminAcct, operator)
	if err := s.reg.AddSharedProxy(operator, acct(0x22)); err != nil {
		t.Fatalf("after grant: %v", err)
	}
}

func TestSetCreator_RejectsNullTarget(t *testing.T) {
	s := newStack(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 100)

	if err := s.reg.SetCreator(creator, id, account.Zero); !IsCode(err, CodeInvalidAddress) {
		t.Fatalf("got %v want CodeInvalidAddress", err)
	}
	if got := s.reg.Creator(id); got != creator {
		t.Fatalf("failed reassignment changed creator: %s", got)
	}
}

func TestSharedProxy_RejectsNull(t *testing.T) {
	s := newStack(t)
	if err := s.reg.AddSharedProxy(adminAcct, account.Zero); !IsCode(err, CodeInvalidAddress) {
		t.Fatalf("got %v want CodeInvalidAddress", err)
	}
}

func TestSetURI_FullOwnerGate(t *testing.T) {
	s := newStack(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 100)

	// Nothing minted yet: the creator does not hold the full supply.
	if err := s.reg.SetURI(creator, id, "ipfs://x"); !IsCode(err, CodeOnlyFullOwner) {
		t.Fatalf("no supply held: got %v", err)
	}

	if err := s.reg.Mint(creator, creator, id, 60, nil); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := s.reg.SetURI(creator, id, "ipfs://x"); !IsCode(err, CodeOnlyFullOwner) {
		t.Fatalf("partial supply held: got %v", err)
	}

	if err := s.reg.Mint(creator, creator, id, 40, nil); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := s.reg.SetURI(creator, id, "ipfs://x"); err != nil {
		t.Fatalf("full supply held: %v", err)
	}
	if s.led.URI(id) != "ipfs://x" {
		t.Fatalf("URI not written")
	}

	// Strangers fail the creator gate before the ownership gate.
	if err := s.reg.SetURI(acct(0xBB), id, "ipfs://y"); !IsCode(err, CodeOnlyCreator) {
		t.Fatalf("stranger: got %v", err)
	}
}

func TestSetPermanentURI_Freezes(t *testing.T) {
	s := newStack(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 10)

	if err := s.reg.Mint(creator, creator, id, 10, nil); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := s.reg.SetPermanentURI(creator, id, "ipfs://forever"); err != nil {
		t.Fatalf("SetPermanentURI: %v", err)
	}
	if err := s.reg.SetURI(creator, id, "ipfs://later"); err == nil {
		t.Fatalf("expected frozen URI to reject updates")
	}
	if s.led.URI(id) != "ipfs://forever" {
		t.Fatalf("frozen URI changed")
	}
}

func TestAdminOperations_EmitEvents(t *testing.T) {
	s := newStack(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 100)
	proxyAddr := acct(0x22)

	if err := s.reg.AddSharedProxy(adminAcct, proxyAddr); err != nil {
		t.Fatalf("AddSharedProxy: %v", err)
	}
	if err := s.reg.RemoveSharedProxy(adminAcct, proxyAddr); err != nil {
		t.Fatalf("RemoveSharedProxy: %v", err)
	}
	if err := s.reg.SetCreator(creator, id, acct(0xBB)); err != nil {
		t.Fatalf("SetCreator: %v", err)
	}
	pr := newStubProxyRegistry(acct(0xE1))
	if err := s.reg.SetProxyRegistry(adminAcct, pr); err != nil {
		t.Fatalf("SetProxyRegistry: %v", err)
	}
	if err := s.reg.DisableMigrate(adminAcct); err != nil {
		t.Fatalf("DisableMigrate: %v", err)
	}

	want := []Event{
		SharedProxyAdded{Address: proxyAddr},
		SharedProxyRemoved{Address: proxyAddr},
		CreatorChanged{ID: id, NewCreator: acct(0xBB)},
		ProxyRegistryChanged{Address: acct(0xE1)},
		MigrateDisabled{},
	}
	if len(s.events.Events) != len(want) {
		t.Fatalf("event count: got %d want %d (%v)", len(s.events.Events), len(want), s.events.Events)
	}
	for i, ev := range want {
		if s.events.Events[i] != ev {
			t.Fatalf("event %d: got %#v want %#v", i, s.events.Events[i], ev)
		}
	}
}

func TestFailedOperations_EmitNothing(t *testing.T) {
	s := newStack(t)
	if err := s.reg.AddSharedProxy(acct(0x11), acct(0x22)); err == nil {
		t.Fatalf("expected failure")
	}
	if len(s.events.Events) != 0 {
		t.Fatalf("failed operation emitted events: %v", s.events.Events)
	}
}
