// Package registry implements a shared multi-token balance registry:
// independent creators mint and manage their own token types inside one
// ledger, with per-token supply caps baked into the identifiers, delegable
// management rights, and a one-shot migration path from a predecessor
// registry instance.
//
// The registry itself holds only policy state (creator overrides, the
// shared proxy allowlist, the migration target). Balances, supply counters
// and metadata live in the Ledger collaborator, which calls back into the
// registry for authorization and remaining-supply decisions.
//
// Callers are identified explicitly: every mutating method takes the
// caller's account as its first argument. The host is responsible for
// authenticating that identity and for serializing invocations; Registry
// is not safe for concurrent use.
package registry

import (
	"errors"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/ledger"
	"xdao.co/tokenreg/tokenid"
)

// Ledger is the balance-ledger collaborator the registry mutates through.
// xdao.co/tokenreg/ledger provides the statestore-backed implementation.
type Ledger interface {
	BalanceOf(owner account.Account, id tokenid.ID) uint64
	TotalSupply(id tokenid.ID) uint64
	URI(id tokenid.ID) string
	TemplateURI() string
	IsPermanent(id tokenid.ID) bool

	Mint(to account.Account, id tokenid.ID, amount uint64, data []byte) error
	MintBatch(to account.Account, ids []tokenid.ID, amounts []uint64, data []byte) error
	Import(entries []ledger.ImportEntry) error
	SetURI(id tokenid.ID, uri string) error
	SetPermanentURI(id tokenid.ID, uri string) error
}

// ProxyRegistry resolves the external per-creator proxy relation.
type ProxyRegistry interface {
	// Address identifies the proxy registry in change notifications.
	Address() account.Account
	// IsProxyFor reports whether operator may act on behalf of owner.
	IsProxyFor(owner, operator account.Account) bool
}

// Predecessor is the read-only surface of the registry instance migrated
// from. A *ledger.Ledger satisfies it, as does a gRPC registry client.
type Predecessor interface {
	BalanceOf(owner account.Account, id tokenid.ID) uint64
	URI(id tokenid.ID) string
	TemplateURI() string
}

// UnreliablePredecessor is the optional Predecessor extension for sources
// whose reads cross a transport and can fail out of band. ReadErr returns
// the first read failure observed since the previous call and clears it;
// Migrate consults it after planning and aborts when a read failed,
// rather than treating an unreachable predecessor as all-zero balances.
type UnreliablePredecessor interface {
	Predecessor
	ReadErr() error
}

// OwnershipRecord names one balance line to import during migration.
// Records are consumed, never persisted.
type OwnershipRecord struct {
	ID    tokenid.ID
	Owner account.Account
}

// Config assembles a Registry.
type Config struct {
	// Admin is the registry administrator. Required, non-null.
	Admin account.Account
	// Ledger is the balance-ledger collaborator. Required.
	Ledger Ledger
	// ProxyRegistry resolves per-creator proxies. Optional.
	ProxyRegistry ProxyRegistry
	// Predecessor enables migration when set. Optional; DisableMigrate
	// clears it permanently.
	Predecessor Predecessor
	// Events receives change notifications. Optional; defaults to NopSink.
	Events EventSink
}

// Registry is the policy core. See the package comment for the trust and
// concurrency model.
type Registry struct {
	admin    account.Account
	ledger   Ledger
	proxyReg ProxyRegistry
	pred     Predecessor
	events   EventSink

	overrides map[tokenid.ID]account.Account
	shared    map[account.Account]struct{}

	// entered guards externally-observable mint surfaces against
	// re-entry from recipient callbacks.
	entered bool
}

// New validates cfg and constructs a Registry. The caller must still bind
// the registry to its ledger's hooks (ledger.Bind) before minting.
func New(cfg Config) (*Registry, error) {
	if cfg.Admin.IsZero() {
		return nil, errors.New("registry: admin account is required")
	}
	if cfg.Ledger == nil {
		return nil, errors.New("registry: ledger is required")
	}
	events := cfg.Events
	if events == nil {
		events = NopSink{}
	}
	return &Registry{
		admin:     cfg.Admin,
		ledger:    cfg.Ledger,
		proxyReg:  cfg.ProxyRegistry,
		pred:      cfg.Predecessor,
		events:    events,
		overrides: make(map[tokenid.ID]account.Account),
		shared:    make(map[account.Account]struct{}),
	}, nil
}

// Admin returns the registry administrator.
func (r *Registry) Admin() account.Account { return r.admin }

// MigrateEnabled reports whether a migration target is still set.
func (r *Registry) MigrateEnabled() bool { return r.pred != nil }

func (r *Registry) isAdmin(caller account.Account) bool {
	if caller == r.admin {
		return true
	}
	return r.proxyReg != nil && r.proxyReg.IsProxyFor(r.admin, caller)
}

func (r *Registry) enter() error {
	if r.entered {
		return newError(KindState, CodeReentrancy, "re-entrant call into a guarded mint surface")
	}
	r.entered = true
	return nil
}

func (r *Registry) leave() { r.entered = false }
