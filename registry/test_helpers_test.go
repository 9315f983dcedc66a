package registry

import (
	"testing"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/ledger"
	"xdao.co/tokenreg/statestore/memstore"
	"xdao.co/tokenreg/tokenid"
)

func acct(b byte) account.Account {
	var a account.Account
	for i := range a {
		a[i] = b
	}
	return a
}

var adminAcct = acct(0xAD)

func mustID(t *testing.T, creator account.Account, index, cap uint64) tokenid.ID {
	t.Helper()
	id, err := tokenid.Encode(creator, index, cap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return id
}

// stubProxyRegistry grants exactly the (owner, operator) pairs listed.
type stubProxyRegistry struct {
	addr   account.Account
	grants map[[2]account.Account]bool
}

func newStubProxyRegistry(addr account.Account) *stubProxyRegistry {
	return &stubProxyRegistry{addr: addr, grants: make(map[[2]account.Account]bool)}
}

func (s *stubProxyRegistry) grant(owner, operator account.Account) {
	s.grants[[2]account.Account{owner, operator}] = true
}

func (s *stubProxyRegistry) Address() account.Account { return s.addr }

func (s *stubProxyRegistry) IsProxyFor(owner, operator account.Account) bool {
	return s.grants[[2]account.Account{owner, operator}]
}

type stack struct {
	reg    *Registry
	led    *ledger.Ledger
	events *MemorySink
	proxy  *stubProxyRegistry
}

func newStack(t *testing.T, opts ...func(*Config)) *stack {
	t.Helper()
	led, err := ledger.New(memstore.New(), "ipfs://meta/{id}")
	if err != nil {
		t.Fatalf("ledger.New: %v", err)
	}
	events := &MemorySink{}
	proxy := newStubProxyRegistry(acct(0xE0))
	cfg := Config{
		Admin:         adminAcct,
		Ledger:        led,
		ProxyRegistry: proxy,
		Events:        events,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	reg, err := New(cfg)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	led.Bind(reg)
	return &stack{reg: reg, led: led, events: events, proxy: proxy}
}
