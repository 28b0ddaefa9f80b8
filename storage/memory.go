package storage

import "sync"

// Memory is an in-process storage surface shared by any number of contexts.
// Each [Memory.Context] view reads and writes the same underlying values;
// watchers registered on one context observe only mutations made through
// sibling contexts, matching the browser storage-event contract (a tab is
// not notified of its own writes).
type Memory struct {
	mu       sync.Mutex
	values   map[string]string
	contexts map[*MemoryContext]struct{}
}

// NewMemory returns an empty shared in-memory surface.
func NewMemory() *Memory {
	return &Memory{
		values:   make(map[string]string),
		contexts: make(map[*MemoryContext]struct{}),
	}
}

// Context returns a new browsing-context view over the shared surface.
func (m *Memory) Context() *MemoryContext {
	ctx := &MemoryContext{core: m}
	m.mu.Lock()
	m.contexts[ctx] = struct{}{}
	m.mu.Unlock()
	return ctx
}

func (m *Memory) set(origin *MemoryContext, key, value string) {
	m.mu.Lock()
	old := m.values[key]
	m.values[key] = value
	watchers := m.siblingsLocked(origin)
	m.mu.Unlock()

	if old != value {
		notify(watchers, Event{Key: key, OldValue: old, NewValue: value})
	}
}

func (m *Memory) remove(origin *MemoryContext, key string) {
	m.mu.Lock()
	old, existed := m.values[key]
	delete(m.values, key)
	watchers := m.siblingsLocked(origin)
	m.mu.Unlock()

	if existed {
		notify(watchers, Event{Key: key, OldValue: old})
	}
}

func (m *Memory) clear(origin *MemoryContext) {
	m.mu.Lock()
	old := m.values
	m.values = make(map[string]string)
	watchers := m.siblingsLocked(origin)
	m.mu.Unlock()

	for key, value := range old {
		notify(watchers, Event{Key: key, OldValue: value})
	}
}

func (m *Memory) siblingsLocked(origin *MemoryContext) []func(Event) {
	var fns []func(Event)
	for ctx := range m.contexts {
		if ctx == origin {
			continue
		}
		fns = append(fns, ctx.watchersSnapshot()...)
	}
	return fns
}

func notify(fns []func(Event), e Event) {
	for _, fn := range fns {
		fn(e)
	}
}

// MemoryContext is one browsing-context view over a shared [Memory] surface.
// It implements [Storage] and [Watcher].
type MemoryContext struct {
	core *Memory

	mu       sync.Mutex
	watchers map[int]func(Event)
	nextID   int
}

// Get describes the get operation and its observable behavior.
func (c *MemoryContext) Get(key string) (string, bool) {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	v, ok := c.core.values[key]
	return v, ok
}

// Set describes the set operation and its observable behavior.
func (c *MemoryContext) Set(key, value string) {
	c.core.set(c, key, value)
}

// Remove describes the remove operation and its observable behavior.
func (c *MemoryContext) Remove(key string) {
	c.core.remove(c, key)
}

// Clear describes the clear operation and its observable behavior.
func (c *MemoryContext) Clear() {
	c.core.clear(c)
}

// Keys describes the keys operation and its observable behavior.
func (c *MemoryContext) Keys() []string {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	keys := make([]string, 0, len(c.core.values))
	for k := range c.core.values {
		keys = append(keys, k)
	}
	return keys
}

// Watch registers fn for mutations made through sibling contexts of the same
// shared surface. The returned stop function unregisters it.
func (c *MemoryContext) Watch(fn func(Event)) (stop func()) {
	c.mu.Lock()
	if c.watchers == nil {
		c.watchers = make(map[int]func(Event))
	}
	id := c.nextID
	c.nextID++
	c.watchers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.watchers, id)
		c.mu.Unlock()
	}
}

func (c *MemoryContext) watchersSnapshot() []func(Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fns := make([]func(Event), 0, len(c.watchers))
	for _, fn := range c.watchers {
		fns = append(fns, fn)
	}
	return fns
}
