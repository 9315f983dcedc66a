package registry

import (
	"errors"
	"testing"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/ledger"
	"xdao.co/tokenreg/statestore/memstore"
	"xdao.co/tokenreg/tokenid"
)

// predecessor builds a populated old-registry instance and returns its
// ledger, which is the read-only surface migration pulls from.
func predecessor(t *testing.T) (*ledger.Ledger, *Registry) {
	t.Helper()
	led, err := ledger.New(memstore.New(), "ipfs://old/{id}")
	if err != nil {
		t.Fatalf("ledger.New: %v", err)
	}
	reg, err := New(Config{Admin: adminAcct, Ledger: led})
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	led.Bind(reg)
	return led, reg
}

func newSuccessor(t *testing.T, pred Predecessor) *stack {
	t.Helper()
	return newStack(t, func(cfg *Config) { cfg.Predecessor = pred })
}

func TestMigrate_BalancesAndMetadata(t *testing.T) {
	predLed, predReg := predecessor(t)
	creator := acct(0xAA)
	custom := mustID(t, creator, 1, 1000)
	templated := mustID(t, creator, 2, 1000)
	alice := acct(0xA1)
	bob := acct(0xB1)

	if err := predReg.Mint(creator, alice, custom, 250, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}
	if err := predReg.Mint(creator, bob, templated, 40, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}
	if err := predLed.SetPermanentURI(custom, "ipfs://bespoke"); err != nil {
		t.Fatalf("pred SetPermanentURI: %v", err)
	}

	s := newSuccessor(t, predLed)
	records := []OwnershipRecord{
		{ID: custom, Owner: alice},
		{ID: templated, Owner: bob},
	}
	if err := s.reg.Migrate(adminAcct, records); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if got := s.led.BalanceOf(alice, custom); got != 250 {
		t.Fatalf("alice balance: got %d want 250", got)
	}
	if got := s.led.BalanceOf(bob, templated); got != 40 {
		t.Fatalf("bob balance: got %d want 40", got)
	}

	// Custom metadata is preserved verbatim and frozen.
	if got := s.led.URI(custom); got != "ipfs://bespoke" {
		t.Fatalf("custom URI: got %q", got)
	}
	if !s.led.IsPermanent(custom) {
		t.Fatalf("copied URI not permanent")
	}

	// Templated metadata is not copied: the new registry derives it from
	// its own template.
	if got := s.led.URI(templated); got != "ipfs://meta/{id}" {
		t.Fatalf("templated URI: got %q", got)
	}
	if s.led.IsPermanent(templated) {
		t.Fatalf("templated token wrongly frozen")
	}
}

func TestMigrate_BypassesCreatorGate(t *testing.T) {
	predLed, predReg := predecessor(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 100)
	owner := acct(0xA1)
	if err := predReg.Mint(creator, owner, id, 10, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}

	// adminAcct is not the token's creator or proxy, and still migrates it.
	s := newSuccessor(t, predLed)
	if err := s.reg.Migrate(adminAcct, []OwnershipRecord{{ID: id, Owner: owner}}); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.led.BalanceOf(owner, id) != 10 {
		t.Fatalf("balance not migrated")
	}
}

func TestMigrate_AdminOnly(t *testing.T) {
	predLed, _ := predecessor(t)
	s := newSuccessor(t, predLed)
	err := s.reg.Migrate(acct(0x11), nil)
	if !IsCode(err, CodeOnlyAdmin) {
		t.Fatalf("got %v want CodeOnlyAdmin", err)
	}
}

func TestMigrate_ZeroBalanceIsNoop(t *testing.T) {
	predLed, _ := predecessor(t)
	s := newSuccessor(t, predLed)
	id := mustID(t, acct(0xAA), 1, 100)
	owner := acct(0xA1)

	if err := s.reg.Migrate(adminAcct, []OwnershipRecord{{ID: id, Owner: owner}}); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.led.TotalSupply(id) != 0 {
		t.Fatalf("zero-balance record minted")
	}
	// Re-running is likewise a no-op, not a failure.
	if err := s.reg.Migrate(adminAcct, []OwnershipRecord{{ID: id, Owner: owner}}); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestMigrate_NullOwnerAbortsAtomically(t *testing.T) {
	predLed, predReg := predecessor(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 100)
	owner := acct(0xA1)
	if err := predReg.Mint(creator, owner, id, 10, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}

	s := newSuccessor(t, predLed)
	records := []OwnershipRecord{
		{ID: id, Owner: owner},
		{ID: id, Owner: account.Zero},
	}
	err := s.reg.Migrate(adminAcct, records)
	if !IsCode(err, CodeZeroAddress) {
		t.Fatalf("got %v want CodeZeroAddress", err)
	}
	if s.led.TotalSupply(id) != 0 {
		t.Fatalf("aborted migration left state behind")
	}
}

func TestMigrate_SupplyCapCheckedUpFront(t *testing.T) {
	predLed, predReg := predecessor(t)
	creator := acct(0xAA)
	// Two predecessor holders of the same token whose combined balances
	// fit the cap, plus a duplicate record that would double-count.
	id := mustID(t, creator, 1, 100)
	owner := acct(0xA1)
	if err := predReg.Mint(creator, owner, id, 60, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}

	s := newSuccessor(t, predLed)
	records := []OwnershipRecord{
		{ID: id, Owner: owner},
		{ID: id, Owner: owner},
	}
	err := s.reg.Migrate(adminAcct, records)
	if !IsCode(err, CodeSupplyExceeded) {
		t.Fatalf("got %v want CodeSupplyExceeded", err)
	}
	if s.led.TotalSupply(id) != 0 {
		t.Fatalf("aborted migration left state behind")
	}
}

// vetoReceiver rejects every incoming credit.
type vetoReceiver struct{}

func (vetoReceiver) OnTokenReceived(account.Account, tokenid.ID, uint64, []byte) error {
	return errors.New("rejected")
}

// A recipient's acceptance callback gets no say during migration: the
// balances already existed in the predecessor, so a rejecting receiver
// can neither veto the import nor strand it half-applied.
func TestMigrate_ReceiverCannotPartialCommit(t *testing.T) {
	predLed, predReg := predecessor(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 100)
	alice := acct(0xA1)
	bob := acct(0xB1)
	if err := predReg.Mint(creator, alice, id, 10, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}
	if err := predReg.Mint(creator, bob, id, 10, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}

	s := newSuccessor(t, predLed)
	s.led.SetReceiver(bob, vetoReceiver{})

	records := []OwnershipRecord{
		{ID: id, Owner: alice},
		{ID: id, Owner: bob},
	}
	if err := s.reg.Migrate(adminAcct, records); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.led.BalanceOf(alice, id) != 10 || s.led.BalanceOf(bob, id) != 10 {
		t.Fatalf("migrated balances wrong: alice=%d bob=%d",
			s.led.BalanceOf(alice, id), s.led.BalanceOf(bob, id))
	}
}

// lossyPredecessor mimics a remote source whose reads fail in flight:
// reads come back zero-valued and the failure is reported out of band,
// the way the gRPC client does.
type lossyPredecessor struct {
	inner Predecessor
	fail  bool
	err   error
}

func (p *lossyPredecessor) BalanceOf(owner account.Account, id tokenid.ID) uint64 {
	if p.fail {
		p.note("balance read")
		return 0
	}
	return p.inner.BalanceOf(owner, id)
}

func (p *lossyPredecessor) URI(id tokenid.ID) string {
	if p.fail {
		p.note("uri read")
		return ""
	}
	return p.inner.URI(id)
}

func (p *lossyPredecessor) TemplateURI() string {
	if p.fail {
		p.note("template read")
		return ""
	}
	return p.inner.TemplateURI()
}

func (p *lossyPredecessor) note(op string) {
	if p.err == nil {
		p.err = errors.New(op + " failed")
	}
}

func (p *lossyPredecessor) ReadErr() error {
	err := p.err
	p.err = nil
	return err
}

func TestMigrate_FailedPredecessorReadAborts(t *testing.T) {
	predLed, predReg := predecessor(t)
	creator := acct(0xAA)
	id := mustID(t, creator, 1, 100)
	owner := acct(0xA1)
	if err := predReg.Mint(creator, owner, id, 10, nil); err != nil {
		t.Fatalf("pred mint: %v", err)
	}

	lossy := &lossyPredecessor{inner: predLed, fail: true}
	s := newSuccessor(t, lossy)

	err := s.reg.Migrate(adminAcct, []OwnershipRecord{{ID: id, Owner: owner}})
	if !IsCode(err, CodePredecessorUnavailable) {
		t.Fatalf("got %v want CodePredecessorUnavailable", err)
	}
	if s.led.TotalSupply(id) != 0 {
		t.Fatalf("aborted migration left state behind")
	}

	// Once the source is reachable again the same records import cleanly.
	lossy.fail = false
	if err := s.reg.Migrate(adminAcct, []OwnershipRecord{{ID: id, Owner: owner}}); err != nil {
		t.Fatalf("Migrate after recovery: %v", err)
	}
	if s.led.BalanceOf(owner, id) != 10 {
		t.Fatalf("balance not migrated after recovery")
	}
}

func TestMigrate_DisableIsFinal(t *testing.T) {
	predLed, _ := predecessor(t)
	s := newSuccessor(t, predLed)

	if !s.reg.MigrateEnabled() {
		t.Fatalf("expected migration enabled")
	}
	if err := s.reg.DisableMigrate(adminAcct); err != nil {
		t.Fatalf("DisableMigrate: %v", err)
	}
	if s.reg.MigrateEnabled() {
		t.Fatalf("expected migration disabled")
	}
	err := s.reg.Migrate(adminAcct, nil)
	if !IsCode(err, CodeMigrateDisabled) {
		t.Fatalf("got %v want CodeMigrateDisabled", err)
	}
}

func TestMigrate_DisabledByDefault(t *testing.T) {
	s := newStack(t)
	err := s.reg.Migrate(adminAcct, nil)
	if !IsCode(err, CodeMigrateDisabled) {
		t.Fatalf("registry without predecessor: got %v", err)
	}
}
