package registry

import (
	"sort"

	pdfservice "github.com/shelfwise/pdf-service"
)

// Entry pairs an open document with the metadata derived from it at open
// time. Both are inserted and removed together; an Entry visible under a key
// is always internally consistent.
type Entry struct {
	Doc  pdfservice.Document
	Info pdfservice.DocumentInfo
}

// EventType describes a registry lifecycle notification.
type EventType uint8

const (
	EventOpened EventType = iota
	EventReplaced
	EventRemoved
)

// Event represents a registry lifecycle event.
type Event struct {
	Type EventType
	Key  string
	Info pdfservice.DocumentInfo
}

// Observer receives notifications about registry lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}

// Table maps caller-chosen string keys to open documents. It has no internal
// locking: the service actor is the table's only mutator, and single-threaded
// by construction. Do not share a Table across goroutines.
type Table struct {
	entries   map[string]*Entry
	observers []Observer
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]*Entry),
	}
}

// Put stores an entry under key. If the key is already present the previous
// document is closed and replaced; Put reports whether a replacement
// happened.
func (t *Table) Put(key string, e *Entry) bool {
	prev, replaced := t.entries[key]
	if replaced {
		prev.Doc.Close()
	}
	t.entries[key] = e

	typ := EventOpened
	if replaced {
		typ = EventReplaced
	}
	t.notify(Event{Type: typ, Key: key, Info: e.Info})
	return replaced
}

// Get retrieves the entry for key.
func (t *Table) Get(key string) (*Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// Remove closes and drops the document under key. Removing an absent key is
// a no-op; Remove reports whether anything was removed.
func (t *Table) Remove(key string) bool {
	e, ok := t.entries[key]
	if !ok {
		return false
	}
	e.Doc.Close()
	delete(t.entries, key)
	t.notify(Event{Type: EventRemoved, Key: key, Info: e.Info})
	return true
}

// Keys returns all present keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of open documents.
func (t *Table) Len() int {
	return len(t.entries)
}

// Clear closes and drops every document. Called on actor shutdown so every
// document handle is released before the engine itself is torn down.
func (t *Table) Clear() {
	for _, key := range t.Keys() {
		t.Remove(key)
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Table) notify(e Event) {
	for _, o := range t.observers {
		o.OnRegistryEvent(e)
	}
}
