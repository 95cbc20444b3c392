// If you are AI: This file implements the Registry tracking live sessions.

package session

import (
	"sort"
	"sync"
	"sync/atomic"

	"amfgate/internal/core/protocol/amf3"
)

// Registry hands out session ids and tracks sessions until they are closed.
// Lock expectations: RWMutex-protected map, id allocation is atomic.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[uint64]*Session
	nextID    atomic.Uint64
	externals *amf3.ExternalRegistry
}

// NewRegistry creates an empty registry. Sessions it opens resolve externalizable
// classes through externals; nil means none are registered.
func NewRegistry(externals *amf3.ExternalRegistry) *Registry {
	if externals == nil {
		externals = amf3.NewExternalRegistry()
	}
	return &Registry{
		sessions:  make(map[uint64]*Session),
		externals: externals,
	}
}

// Open creates and registers a new session.
func (r *Registry) Open(remoteAddr string) *Session {
	s := New(r.nextID.Add(1), remoteAddr, r.externals)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get returns the session with the given id, or nil.
func (r *Registry) Get(id uint64) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Close removes a session. It reports whether the session was registered.
func (r *Registry) Close(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns snapshots of all live sessions ordered by id.
func (r *Registry) List() []Info {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	infos := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
