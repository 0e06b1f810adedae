package resource

import (
	"sync"
)

// Table manages scoped references with observer support.
type Table struct {
	store     *Store
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates a new table.
func NewTable() *Table {
	return &Table{
		store: NewStore(),
	}
}

// Insert adds a value and returns its handle, or 0 once the table is closed.
func (t *Table) Insert(scope Scope, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	h, err := t.store.Create(scope, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		Scope:  scope,
		Value:  value,
	})
	return h
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	v, _, ok := t.store.Get(h)
	return v, ok
}

// Scope returns the scope of a live handle.
func (t *Table) Scope(h Handle) (Scope, bool) {
	_, scope, ok := t.store.Get(h)
	return scope, ok
}

// GetScoped retrieves a value only if the handle has the expected scope.
func (t *Table) GetScoped(h Handle, scope Scope) (any, bool) {
	v, actual, ok := t.store.Get(h)
	if !ok || actual != scope {
		return nil, false
	}
	return v, true
}

// Remove deletes a handle and returns (value, true) if it was live.
func (t *Table) Remove(h Handle) (any, bool) {
	value, scope, ok := t.store.Delete(h)
	if !ok {
		return nil, false
	}
	t.dropped(h, scope, value)
	return value, true
}

// RemoveScoped deletes a handle only if it has the expected scope.
func (t *Table) RemoveScoped(h Handle, scope Scope) (any, bool) {
	if actual, ok := t.Scope(h); !ok || actual != scope {
		return nil, false
	}
	return t.Remove(h)
}

func (t *Table) dropped(h Handle, scope Scope, value any) {
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{
		Type:   EventDeleted,
		Handle: h,
		Scope:  scope,
		Value:  value,
	})
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. Observers must be comparable.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return t.store.Len(0)
}

// LenScoped returns the number of live handles in scope.
func (t *Table) LenScoped(scope Scope) int {
	return t.store.Len(scope)
}

// Clear removes every live handle.
func (t *Table) Clear() {
	// Collect handles first to avoid holding the store lock during Remove
	var handles []Handle
	t.store.Each(func(h Handle, _ Scope, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close releases all values and stops accepting inserts.
func (t *Table) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.store.Close()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnReferenceEvent(e)
	}
}
