/*
Package chat contains the real-time messaging core.

This file defines the PresenceRegistry, the mapping from an online user's
identifier to the single live connection handle events are pushed over. It is
the only mutable shared structure in the core and must stay safe under
concurrent connect/disconnect from independent connection lifecycles.
*/
package chat

import (
	"sort"
	"sync"
)

// PresenceRegistry maps a user identifier to exactly one live *Client at a
// time. Entries exist only while a connection is open; nothing is persisted.
// All operations on the same key are linearizable under the registry mutex,
// and the lock is never held across network calls.
type PresenceRegistry struct {
	// mu protects concurrent access to the entries map.
	mu sync.RWMutex

	// entries maps a user ID to its live connection handle.
	entries map[string]*Client
}

// NewPresenceRegistry constructs an empty registry. The registry is built in
// main and injected into the Gateway, which is its only writer.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		entries: make(map[string]*Client),
	}
}

// Register binds the client as the user's live connection. When an entry
// already exists the newest connection wins; the displaced handle is returned
// so the caller can close it.
func (p *PresenceRegistry) Register(userID string, c *Client) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	displaced := p.entries[userID]
	if displaced == c {
		displaced = nil
	}
	p.entries[userID] = c

	return displaced
}

// Unregister removes the user's entry only if it still refers to the given
// handle, so a late disconnect from a replaced connection cannot clobber the
// newer one. It reports whether an entry was removed.
func (p *PresenceRegistry) Unregister(userID string, c *Client) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok := p.entries[userID]
	if !ok || current != c {
		return false
	}

	delete(p.entries, userID)
	return true
}

// Lookup returns the user's live connection handle, or nil when offline.
func (p *PresenceRegistry) Lookup(userID string) *Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.entries[userID]
}

// OnlineIDs returns the identifiers of all currently connected users, sorted
// for deterministic broadcasts.
func (p *PresenceRegistry) OnlineIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]string, 0, len(p.entries))
	for id := range p.entries {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}

// Clients returns a snapshot of all live connection handles.
func (p *PresenceRegistry) Clients() []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clients := make([]*Client, 0, len(p.entries))
	for _, c := range p.entries {
		clients = append(clients, c)
	}

	return clients
}
