// Package registry provides the open-document table owned by the service
// actor.
//
// The table maps a caller-chosen string key to an open document plus the
// metadata derived from it when it was opened. Opening under an existing key
// replaces (and closes) the previous document; removing an absent key is a
// no-op.
//
// # Single Mutator
//
// The table deliberately has no internal locking. Exactly one goroutine, the
// service actor, creates and mutates it; concurrent access is prevented by
// the actor's job queue, not by a mutex. Sharing a Table across goroutines
// is a bug in the caller.
//
// # Observers
//
// Register observers to track document lifecycle events:
//
//	table.Subscribe(obs) // obs.OnRegistryEvent(e) on open/replace/remove
//
// The service uses this to log registry changes without threading a logger
// through every operation.
package registry
