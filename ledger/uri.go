package ledger

import (
	"encoding/hex"
	"strings"

	"xdao.co/tokenreg/statestore"
	"xdao.co/tokenreg/tokenid"
)

// TemplateURI returns the impermanent metadata template.
func (l *Ledger) TemplateURI() string { return l.template }

// URI returns the metadata URI for id: the custom URI when one was set,
// otherwise the template itself. The "{id}" placeholder is left literal;
// clients substitute it (see Render). Keeping the template un-expanded is
// what lets callers detect templated metadata by comparing against
// TemplateURI.
func (l *Ledger) URI(id tokenid.ID) string {
	b, err := l.store.Get(uriKey(id))
	if err == nil {
		return string(b)
	}
	if !statestore.IsNotFound(err) {
		panic("ledger: state read failed: " + err.Error())
	}
	return l.template
}

// Render expands the "{id}" placeholder in a template URI to the
// identifier's 64 lowercase hex digits.
func Render(template string, id tokenid.ID) string {
	return strings.ReplaceAll(template, "{id}", hex.EncodeToString(id[:]))
}

// IsPermanent reports whether id's metadata has been frozen.
func (l *Ledger) IsPermanent(id tokenid.ID) bool {
	return l.store.Has(permanentKey(id))
}

// SetURI sets a custom, still-updatable URI for id.
func (l *Ledger) SetURI(id tokenid.ID, uri string) error {
	if l.IsPermanent(id) {
		return ErrURIFrozen
	}
	return l.store.Put(uriKey(id), []byte(uri))
}

// SetPermanentURI sets a custom URI for id and freezes it: no further
// SetURI or SetPermanentURI will be accepted. There is no unfreeze.
func (l *Ledger) SetPermanentURI(id tokenid.ID, uri string) error {
	if l.IsPermanent(id) {
		return ErrURIFrozen
	}
	if err := l.store.Put(uriKey(id), []byte(uri)); err != nil {
		return err
	}
	return l.store.Put(permanentKey(id), []byte{1})
}
