package resource

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("reference store closed")

// Store is the slot storage behind a Table: a slice of entries with a free
// list and per-slot generations.
type Store struct {
	entries  []entry
	freeList []uint32
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value      any
	generation uint32
	scope      Scope
	valid      bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

func makeHandle(slot, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(slot+1))
}

func (h Handle) split() (slot uint32, generation uint32, ok bool) {
	low := uint32(h)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(h >> 32), true
}

// Create stores a value and returns its handle.
func (s *Store) Create(scope Scope, value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	if n := len(s.freeList); n > 0 {
		slot := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		e := &s.entries[slot]
		e.generation++
		e.value = value
		e.scope = scope
		e.valid = true
		return makeHandle(slot, e.generation), nil
	}

	s.entries = append(s.entries, entry{value: value, scope: scope, valid: true})
	return makeHandle(uint32(len(s.entries)-1), 0), nil
}

// lookup must be called with s.mu held.
func (s *Store) lookup(h Handle) *entry {
	slot, gen, ok := h.split()
	if !ok || int(slot) >= len(s.entries) {
		return nil
	}
	e := &s.entries[slot]
	if !e.valid || e.generation != gen {
		return nil
	}
	return e
}

// Get retrieves a value and its scope by handle.
func (s *Store) Get(h Handle) (any, Scope, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.lookup(h)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.scope, true
}

// Delete removes a handle and returns its value. Stale or unknown handles
// report false.
func (s *Store) Delete(h Handle) (any, Scope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil {
		return nil, 0, false
	}

	value, scope := e.value, e.scope
	e.valid = false
	e.value = nil
	slot, _, _ := h.split()
	s.freeList = append(s.freeList, slot)
	return value, scope, true
}

// Len returns the number of live handles in scope, or in all scopes when
// scope is 0.
func (s *Store) Len(scope Scope) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries {
		if e.valid && (scope == 0 || e.scope == scope) {
			count++
		}
	}
	return count
}

// Each iterates over live handles until fn returns false.
func (s *Store) Each(fn func(Handle, Scope, any) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.valid {
			if !fn(makeHandle(uint32(i), e.generation), e.scope, e.value) {
				break
			}
		}
	}
}

// Close drops every live value and rejects further creates.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for i := range s.entries {
		if s.entries[i].valid {
			if d, ok := s.entries[i].value.(Dropper); ok {
				d.Drop()
			}
			s.entries[i].valid = false
			s.entries[i].value = nil
		}
	}
	s.entries = nil
	s.freeList = nil
	return nil
}
