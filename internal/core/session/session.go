// If you are AI: This file defines a connection session owning one serialization context
// and one deserialization context for the lifetime of the connection.

package session

import (
	"sync"
	"time"

	"amfgate/internal/core/protocol/amf3"
)

// Session pairs the reference tables of one peer connection.
// Contexts are not safe for concurrent use, so every access goes through Do.
type Session struct {
	ID         uint64
	RemoteAddr string
	Created    time.Time

	mu  sync.Mutex
	enc *amf3.SerializationContext
	dec *amf3.DeserializationContext
}

// Info is a snapshot of a session for the admin API.
type Info struct {
	ID         uint64     `json:"id"`
	RemoteAddr string     `json:"remote_addr"`
	AgeSeconds int64      `json:"age_seconds"`
	Encode     amf3.Stats `json:"encode"`
	Decode     amf3.Stats `json:"decode"`
}

// New creates a session with empty contexts. Externalizable classes are resolved
// through reg, which may be shared between sessions.
func New(id uint64, remoteAddr string, reg *amf3.ExternalRegistry) *Session {
	return &Session{
		ID:         id,
		RemoteAddr: remoteAddr,
		Created:    time.Now(),
		enc:        amf3.NewSerializationContext(),
		dec:        amf3.NewDeserializationContext(reg),
	}
}

// Do runs fn with exclusive access to both contexts.
func (s *Session) Do(fn func(enc *amf3.SerializationContext, dec *amf3.DeserializationContext) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.enc, s.dec)
}

// Reset clears both contexts.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enc.Clear()
	s.dec.Clear()
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:         s.ID,
		RemoteAddr: s.RemoteAddr,
		AgeSeconds: int64(time.Since(s.Created) / time.Second),
		Encode:     s.enc.Stats(),
		Decode:     s.dec.Stats(),
	}
}
