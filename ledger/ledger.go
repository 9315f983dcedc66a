// Package ledger implements the multi-token balance ledger the registry
// core mutates through.
//
// The ledger owns balances, per-token issued supply, and metadata URIs,
// all persisted in a statestore.Store under fixed key prefixes, so any
// conformant backend reproduces identical state from the same call
// sequence. Policy questions (who may mint, how much supply remains) are
// not answered here: they are delegated to a Hooks implementation bound
// with Bind, normally the registry core.
package ledger

import (
	"errors"
	"fmt"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/statestore"
	"xdao.co/tokenreg/tokenid"
)

var (
	// ErrSupplyExceeded is returned when a mint would push issued supply
	// past the remaining amount reported by the bound hooks.
	ErrSupplyExceeded = errors.New("ledger: mint exceeds remaining supply")

	// ErrURIFrozen is returned when a URI write targets a token whose
	// metadata was made permanent.
	ErrURIFrozen = errors.New("ledger: uri is permanent")

	// ErrUnbound is returned when a mutating call arrives before Bind.
	ErrUnbound = errors.New("ledger: no hooks bound")

	// ErrLengthMismatch is returned when batch ids and amounts differ in length.
	ErrLengthMismatch = errors.New("ledger: ids and amounts length mismatch")
)

// Hooks are the policy callbacks the ledger consults during mutation.
// The registry core implements them.
type Hooks interface {
	// Origin returns the default creator embedded in the identifier.
	Origin(id tokenid.ID) account.Account
	// RemainingSupply returns how many units of id may still be issued.
	RemainingSupply(id tokenid.ID) uint64
	// IsCreatorOrProxy reports whether acct may manage id.
	IsCreatorOrProxy(id tokenid.ID, acct account.Account) bool
	// IsProxyForUser reports whether operator may act for creator.
	IsProxyForUser(creator, operator account.Account) bool
}

// Receiver is the acceptance callback invoked after a recipient's balance
// is credited. A non-nil error rejects the transfer and rolls the credit
// back. Receiver code runs while the mint is in progress and may attempt
// to re-enter the registry; guarded registry surfaces fail fast in that
// case.
type Receiver interface {
	OnTokenReceived(to account.Account, id tokenid.ID, amount uint64, data []byte) error
}

// BatchReceiver is an optional extension of Receiver for recipients that
// want one callback per batch instead of one per entry.
type BatchReceiver interface {
	Receiver
	OnTokenBatchReceived(to account.Account, ids []tokenid.ID, amounts []uint64, data []byte) error
}

// Ledger is a statestore-backed multi-token ledger.
//
// It is not safe for concurrent use; the host serializes invocations.
type Ledger struct {
	store     statestore.Store
	template  string
	hooks     Hooks
	receivers map[account.Account]Receiver
}

// New constructs a ledger over store. template is the impermanent
// metadata template; "{id}" expands to the token identifier in hex.
func New(store statestore.Store, template string) (*Ledger, error) {
	if store == nil {
		return nil, errors.New("ledger: store is required")
	}
	return &Ledger{
		store:     store,
		template:  template,
		receivers: make(map[account.Account]Receiver),
	}, nil
}

// Bind attaches the policy hooks. The registry core binds itself here
// after construction; minting before Bind fails with ErrUnbound.
func (l *Ledger) Bind(h Hooks) { l.hooks = h }

// SetReceiver registers (or, with nil, removes) the acceptance callback
// for an account.
func (l *Ledger) SetReceiver(acct account.Account, r Receiver) {
	if r == nil {
		delete(l.receivers, acct)
		return
	}
	l.receivers[acct] = r
}

// BalanceOf returns owner's balance of id.
func (l *Ledger) BalanceOf(owner account.Account, id tokenid.ID) uint64 {
	return l.readU64(balanceKey(id, owner))
}

// TotalSupply returns the cumulative issued amount of id.
func (l *Ledger) TotalSupply(id tokenid.ID) uint64 {
	return l.readU64(supplyKey(id))
}

// Mint credits amount of id to to, consulting the bound hooks for the
// remaining supply. The recipient's acceptance callback, if registered,
// runs after state is updated; its rejection rolls the credit back.
func (l *Ledger) Mint(to account.Account, id tokenid.ID, amount uint64, data []byte) error {
	if l.hooks == nil {
		return ErrUnbound
	}
	if remaining := l.hooks.RemainingSupply(id); amount > remaining {
		return fmt.Errorf("%w: want %d, remaining %d", ErrSupplyExceeded, amount, remaining)
	}
	if err := l.credit(to, id, amount); err != nil {
		return err
	}
	if r := l.receivers[to]; r != nil {
		if err := r.OnTokenReceived(to, id, amount, data); err != nil {
			l.uncredit(to, id, amount)
			return fmt.Errorf("ledger: recipient rejected mint: %w", err)
		}
	}
	return nil
}

// MintBatch credits several ids to the same recipient. All supply checks
// run before any credit, so an over-cap entry aborts the batch with no
// state change.
func (l *Ledger) MintBatch(to account.Account, ids []tokenid.ID, amounts []uint64, data []byte) error {
	if l.hooks == nil {
		return ErrUnbound
	}
	if len(ids) != len(amounts) {
		return ErrLengthMismatch
	}

	// Validate cumulatively: the same id may appear more than once.
	want := make(map[tokenid.ID]uint64, len(ids))
	for i, id := range ids {
		want[id] += amounts[i]
		if want[id] > l.hooks.RemainingSupply(id) {
			return fmt.Errorf("%w: id %s", ErrSupplyExceeded, id)
		}
	}

	for i, id := range ids {
		if err := l.credit(to, id, amounts[i]); err != nil {
			for j := 0; j < i; j++ {
				l.uncredit(to, ids[j], amounts[j])
			}
			return err
		}
	}
	if r := l.receivers[to]; r != nil {
		if err := l.notifyBatch(r, to, ids, amounts, data); err != nil {
			for i, id := range ids {
				l.uncredit(to, id, amounts[i])
			}
			return fmt.Errorf("ledger: recipient rejected batch mint: %w", err)
		}
	}
	return nil
}

// notifyBatch prefers the batch callback when the receiver implements it,
// falling back to one single-token callback per entry.
func (l *Ledger) notifyBatch(r Receiver, to account.Account, ids []tokenid.ID, amounts []uint64, data []byte) error {
	if br, ok := r.(BatchReceiver); ok {
		return br.OnTokenBatchReceived(to, ids, amounts, data)
	}
	for i, id := range ids {
		if err := r.OnTokenReceived(to, id, amounts[i], data); err != nil {
			return err
		}
	}
	return nil
}

// ImportEntry is one balance line applied by Import, optionally carrying
// a custom metadata URI to freeze along with the credit.
type ImportEntry struct {
	Owner  account.Account
	ID     tokenid.ID
	Amount uint64

	// URI is stored as ID's permanent URI when FreezeURI is set.
	URI       string
	FreezeURI bool
}

// Import applies migrated balance lines as one unit. Supply caps and URI
// freezes are validated before any write, and a mid-apply store failure
// rolls every applied entry back, so the call either fully applies or
// leaves no trace. Recipient acceptance callbacks do not run: an import
// replays balances that already exist in the source registry, it is not
// a new transfer any recipient gets to veto.
func (l *Ledger) Import(entries []ImportEntry) error {
	if l.hooks == nil {
		return ErrUnbound
	}
	want := make(map[tokenid.ID]uint64, len(entries))
	for _, e := range entries {
		want[e.ID] += e.Amount
		if want[e.ID] > l.hooks.RemainingSupply(e.ID) {
			return fmt.Errorf("%w: id %s", ErrSupplyExceeded, e.ID)
		}
		if e.FreezeURI && l.IsPermanent(e.ID) {
			return ErrURIFrozen
		}
	}

	for i, e := range entries {
		if err := l.credit(e.Owner, e.ID, e.Amount); err != nil {
			l.revertImports(entries[:i])
			return err
		}
		if e.FreezeURI {
			if err := l.SetPermanentURI(e.ID, e.URI); err != nil {
				_ = l.store.Delete(uriKey(e.ID))
				l.uncredit(e.Owner, e.ID, e.Amount)
				l.revertImports(entries[:i])
				return err
			}
		}
	}
	return nil
}

// revertImports undoes fully-applied entries, newest first.
func (l *Ledger) revertImports(entries []ImportEntry) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		l.uncredit(e.Owner, e.ID, e.Amount)
		if e.FreezeURI {
			_ = l.store.Delete(permanentKey(e.ID))
			_ = l.store.Delete(uriKey(e.ID))
		}
	}
}

func (l *Ledger) credit(to account.Account, id tokenid.ID, amount uint64) error {
	if err := l.writeU64(balanceKey(id, to), l.BalanceOf(to, id)+amount); err != nil {
		return err
	}
	return l.writeU64(supplyKey(id), l.TotalSupply(id)+amount)
}

func (l *Ledger) uncredit(to account.Account, id tokenid.ID, amount uint64) {
	_ = l.writeU64(balanceKey(id, to), l.BalanceOf(to, id)-amount)
	_ = l.writeU64(supplyKey(id), l.TotalSupply(id)-amount)
}
