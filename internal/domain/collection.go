package domain

import "sync"

// Collection holds the in-memory events of one client in insertion order.
type Collection struct {
	mu     sync.RWMutex
	events []Event
}

// NewCollection creates a collection seeded with a copy of events.
func NewCollection(events []Event) *Collection {
	c := &Collection{}
	c.Replace(events)
	return c
}

// Replace swaps the whole content.
func (c *Collection) Replace(events []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append([]Event{}, events...)
}

// Add appends e.
func (c *Collection) Add(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Remove deletes every event with the given id and reports whether any matched.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.events[:0]
	removed := false
	for _, e := range c.events {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	c.events = kept
	return removed
}

// Get returns the event with the given id.
func (c *Collection) Get(id string) (Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Snapshot returns a copy of the events.
func (c *Collection) Snapshot() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Event{}, c.events...)
}

// Len returns the number of events.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
