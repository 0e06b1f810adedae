package jvm

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/wippyai/jvm-bridge/value"
)

type lookupKind uint8

const (
	lookupConstructor lookupKind = iota
	lookupMethod
	lookupStaticMethod
	lookupStaticField
)

func (k lookupKind) String() string {
	switch k {
	case lookupConstructor:
		return "constructor"
	case lookupMethod:
		return "method"
	case lookupStaticMethod:
		return "static method"
	case lookupStaticField:
		return "field"
	}
	return "unknown"
}

type lookupKey struct {
	class string
	name  string
	sig   string
	kind  lookupKind
}

func (k lookupKey) String() string {
	return fmt.Sprintf("%d|%s|%s|%s", k.kind, k.class, k.name, k.sig)
}

// cache holds resolved handles and the global class references they point
// into. Entries are never evicted: the VM is never unloaded.
type cache struct {
	classes map[string]value.Ref
	members map[lookupKey]any
	group   singleflight.Group
	mu      sync.RWMutex
}

func newCache() *cache {
	return &cache{
		classes: make(map[string]value.Ref),
		members: make(map[lookupKey]any),
	}
}

func (c *cache) member(key lookupKey) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.members[key]
	return h, ok
}

func (c *cache) putMember(key lookupKey, h any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.members[key] = h
}

func (c *cache) class(name string) (value.Ref, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.classes[name]
	return r, ok
}

func (c *cache) putClass(name string, r value.Ref) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[name] = r
}

// len returns the number of cached members and classes.
func (c *cache) len() (members, classes int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members), len(c.classes)
}
