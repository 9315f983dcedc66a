package registry

import (
	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/tokenid"
)

// Event is a change notification emitted by mutating operations. The
// registry never reads events back; they exist for host-side observers
// (loggers, indexers, audit trails).
type Event interface{ isEvent() }

// CreatorChanged: management rights over ID were reassigned.
type CreatorChanged struct {
	ID         tokenid.ID
	NewCreator account.Account
}

// ProxyRegistryChanged: the external proxy resolver was replaced.
type ProxyRegistryChanged struct {
	Address account.Account
}

// SharedProxyAdded: Address gained proxy rights for every creator.
type SharedProxyAdded struct {
	Address account.Account
}

// SharedProxyRemoved: Address lost its shared proxy rights.
type SharedProxyRemoved struct {
	Address account.Account
}

// MigrateDisabled: the migration target was cleared permanently.
type MigrateDisabled struct{}

// PermanentURISet: ID's metadata was frozen to URI.
type PermanentURISet struct {
	ID  tokenid.ID
	URI string
}

func (CreatorChanged) isEvent()       {}
func (ProxyRegistryChanged) isEvent() {}
func (SharedProxyAdded) isEvent()     {}
func (SharedProxyRemoved) isEvent()   {}
func (MigrateDisabled) isEvent()      {}
func (PermanentURISet) isEvent()      {}

// EventSink receives emitted events synchronously, inside the emitting
// invocation. Sinks must not call back into the registry.
type EventSink interface {
	Emit(ev Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// MemorySink records events in order. Test helper.
type MemorySink struct {
	Events []Event
}

func (s *MemorySink) Emit(ev Event) { s.Events = append(s.Events, ev) }
