package storage

// Storage is the persistent key/value surface the session cache writes to.
// It mirrors the browser localStorage contract: operations never fail from
// the caller's point of view — an unavailable backend degrades to empty
// reads and no-op writes instead of returning errors.
type Storage interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)
	// Set stores the value under key, overwriting any previous value.
	Set(key, value string)
	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string)
	// Clear removes every key in the surface, related to the session or not.
	Clear()
	// Keys lists every stored key.
	Keys() []string
}

// Event describes a single key mutation observed on a storage surface.
type Event struct {
	Key      string
	OldValue string
	NewValue string
}

// Watcher is implemented by storage surfaces that can report mutations made
// by sibling contexts sharing the same underlying store. Watch returns a
// stop function; after stop returns, the callback is never invoked again.
type Watcher interface {
	Watch(fn func(Event)) (stop func())
}

// Disabled is the storage surface used outside a hosting context with
// persistent storage (server-side execution). Every read is empty and every
// write is a no-op.
type Disabled struct{}

// Get describes the get operation and its observable behavior.
func (Disabled) Get(string) (string, bool) { return "", false }

// Set describes the set operation and its observable behavior.
func (Disabled) Set(string, string) {}

// Remove describes the remove operation and its observable behavior.
func (Disabled) Remove(string) {}

// Clear describes the clear operation and its observable behavior.
func (Disabled) Clear() {}

// Keys describes the keys operation and its observable behavior.
func (Disabled) Keys() []string { return nil }
