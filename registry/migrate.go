package registry

import (
	"fmt"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/ledger"
	"xdao.co/tokenreg/tokenid"
	"xdao.co/tokenreg/uridigest"
)

// Migrate bulk-imports balances and custom metadata from the predecessor
// registry. Administrator only; migration is itself the authorization, so
// the per-token creator gate is bypassed.
//
// The call is atomic: every record is validated, and the whole import plan
// is checked against the supply caps, before anything is written, and the
// ledger rolls the applied entries back should a write fail mid-plan. A
// null owner anywhere aborts the batch with no effect; the caller
// resubmits a corrected list. Recipient acceptance callbacks are not
// consulted: the balances already existed in the predecessor.
//
// A predecessor whose reads can fail out of band (see
// UnreliablePredecessor) aborts the call when any planning read failed,
// since a failed read is indistinguishable from a zero balance.
//
// Per record, in order:
//   - zero predecessor balance: skipped (idempotent no-op),
//   - otherwise the previous amount is minted to the previous owner,
//   - a predecessor URI whose digest differs from the predecessor's
//     template-URI digest is copied verbatim as a permanent URI; templated
//     metadata is not copied, since this registry derives its own.
func (r *Registry) Migrate(caller account.Account, records []OwnershipRecord) error {
	if !r.isAdmin(caller) {
		return newError(KindAuth, CodeOnlyAdmin, "caller is not the registry administrator")
	}
	if r.pred == nil {
		return newError(KindState, CodeMigrateDisabled, "migration target has been cleared")
	}

	unreliable, _ := r.pred.(UnreliablePredecessor)
	if unreliable != nil {
		unreliable.ReadErr() // discard failures from earlier, unrelated reads
	}

	templateDigest := uridigest.Sum(r.pred.TemplateURI())

	plan := make([]ledger.ImportEntry, 0, len(records))
	need := make(map[tokenid.ID]uint64)
	planned := make(map[tokenid.ID]bool)

	for _, rec := range records {
		if rec.Owner.IsZero() {
			return newError(KindInput, CodeZeroAddress, "ownership record names the null account")
		}
		amount := r.pred.BalanceOf(rec.Owner, rec.ID)
		if amount == 0 {
			continue
		}
		need[rec.ID] += amount
		if need[rec.ID] > r.RemainingSupply(rec.ID) {
			return newError(KindState, CodeSupplyExceeded,
				fmt.Sprintf("migrating %s would exceed its supply cap", rec.ID))
		}

		e := ledger.ImportEntry{Owner: rec.Owner, ID: rec.ID, Amount: amount}
		if uri := r.pred.URI(rec.ID); uridigest.Sum(uri) != templateDigest &&
			!planned[rec.ID] && !r.ledger.IsPermanent(rec.ID) {
			e.URI = uri
			e.FreezeURI = true
			planned[rec.ID] = true
		}
		plan = append(plan, e)
	}

	if unreliable != nil {
		if err := unreliable.ReadErr(); err != nil {
			return wrapError(KindState, CodePredecessorUnavailable,
				"a predecessor read failed while planning the migration", err)
		}
	}

	if err := r.ledger.Import(plan); err != nil {
		return err
	}
	for _, e := range plan {
		if e.FreezeURI {
			r.events.Emit(PermanentURISet{ID: e.ID, URI: e.URI})
		}
	}
	return nil
}
