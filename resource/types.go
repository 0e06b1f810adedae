package resource

// Handle is an opaque reference into a table. Handle 0 is reserved and always
// invalid. The low 32 bits select a slot, the high 32 bits hold the slot's
// generation.
type Handle uint64

// Scope distinguishes reference lifetimes.
type Scope uint8

const (
	ScopeLocal Scope = iota + 1
	ScopeGlobal
)

func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeGlobal:
		return "global"
	}
	return "unknown"
}

// EventType identifies a reference lifecycle transition.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDeleted
)

// Event represents a reference lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Scope  Scope
	Type   EventType
}

// Observer receives notifications about reference lifecycle events.
type Observer interface {
	OnReferenceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnReferenceEvent(e Event) { f(e) }

// Dropper is optionally implemented by values that need cleanup when their
// last handle is removed from a table.
type Dropper interface {
	Drop()
}
