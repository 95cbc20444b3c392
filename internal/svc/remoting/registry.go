// If you are AI: This file implements the Registry mapping remoting targets
// (Service.method) to handlers.

package remoting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"amfgate/internal/core/protocol/amf3"
)

// ErrUnknownTarget means no handler is registered for a target.
var ErrUnknownTarget = errors.New("remoting: unknown target")

// Handler serves one remoting target.
type Handler func(ctx context.Context, args []amf3.Value) (amf3.Value, error)

// Registry maps target names to handlers.
// Lock expectations: RWMutex-protected, lookups never block each other.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds h to target, replacing any previous handler.
func (r *Registry) Register(target string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[target] = h
}

// Lookup returns the handler for target.
func (r *Registry) Lookup(target string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[target]
	return h, ok
}

// Invoke calls the handler for target with args.
func (r *Registry) Invoke(ctx context.Context, target string, args []amf3.Value) (amf3.Value, error) {
	h, ok := r.Lookup(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}
	return h(ctx, args)
}

// Targets returns the registered target names in ascending order.
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	targets := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Args unpacks a message body into handler arguments: the dense part of an array,
// nothing for undefined or null, the value itself otherwise.
func Args(v amf3.Value) []amf3.Value {
	switch body := v.(type) {
	case nil, amf3.Undefined, amf3.Null:
		return nil
	case *amf3.Array:
		if body == nil {
			return nil
		}
		return body.Dense
	default:
		return []amf3.Value{v}
	}
}
