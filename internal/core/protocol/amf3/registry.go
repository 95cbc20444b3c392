// If you are AI: This file implements the registry of decoders for externalizable classes.

package amf3

import "sync"

// ExternalDecoder reads the opaque body of an externalizable object.
// obj is already registered in the object table; the decoder fills it in place.
type ExternalDecoder func(d *Decoder, obj *Object) error

// ExternalRegistry maps class names to external decoders.
// A registry may be shared by many contexts.
type ExternalRegistry struct {
	mu       sync.RWMutex
	decoders map[string]ExternalDecoder
}

// NewExternalRegistry returns an empty registry.
func NewExternalRegistry() *ExternalRegistry {
	return &ExternalRegistry{decoders: make(map[string]ExternalDecoder)}
}

// Register installs fn for className, replacing any previous decoder.
func (r *ExternalRegistry) Register(className string, fn ExternalDecoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[className] = fn
}

// Lookup returns the decoder registered for className.
func (r *ExternalRegistry) Lookup(className string) (ExternalDecoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.decoders[className]
	return fn, ok
}

// Classes returns the number of registered classes.
func (r *ExternalRegistry) Classes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.decoders)
}
