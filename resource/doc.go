// Package resource provides reference handle tables.
//
// A reference is an opaque handle naming a host-side value. Handles are scoped:
// local references live until their owning frame is discarded, global
// references live until explicitly deleted. This mirrors the JNI reference
// model and backs the in-memory VM in package jvmtest.
//
// # Handle Table
//
// The Table maps handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	h := table.Insert(resource.ScopeGlobal, obj)
//
//	// Retrieve value by handle
//	v, ok := table.Get(h)
//
//	// Scope-checked retrieval and removal
//	v, ok = table.GetScoped(h, resource.ScopeGlobal)
//	v, ok = table.RemoveScoped(h, resource.ScopeGlobal)
//
// # Stale Handles
//
// Slots are reused, but every handle carries the generation of its slot. A
// handle that was already removed never resolves again, even after its slot
// holds a new value, so double deletes are detected instead of silently
// dropping someone else's reference.
//
// # Observers
//
// Register observers to track reference lifecycle events:
//
//	table.Subscribe(observerFunc(func(e resource.Event) {
//	    if e.Type == resource.EventDeleted && e.Scope == resource.ScopeGlobal {
//	        deleted++
//	    }
//	}))
package resource
