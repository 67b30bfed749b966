// Package listeners multiplexes one host change stream into per-key
// listener sets.
//
// Each (key, listener) pair owns exactly one host registration. Adding the
// same listener twice under a key is a no-op and removing a pair cancels
// exactly the registration created for it.
package listeners

import (
	"sort"
	"sync"
)

// SubscribeFunc registers an adapter closure with the host and returns the
// function that unregisters it.
type SubscribeFunc func() (cancel func())

type entry[L comparable] struct {
	listener L
	cancel   func()
}

// Registry maps keys to the ordered listeners registered for them.
// L is usually a pointer type; its identity is what de-duplicates.
type Registry[L comparable] struct {
	mu   sync.Mutex
	keys map[string][]entry[L]
}

// New creates an empty Registry.
func New[L comparable]() *Registry[L] {
	return &Registry[L]{keys: make(map[string][]entry[L])}
}

// Add registers l under key, calling subscribe to create its host
// registration. It returns false, without calling subscribe, when l is
// already registered under key.
func (r *Registry[L]) Add(key string, l L, subscribe SubscribeFunc) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.keys[key] {
		if e.listener == l {
			return false
		}
	}

	cancel := subscribe()
	if cancel == nil {
		cancel = func() {}
	}
	r.keys[key] = append(r.keys[key], entry[L]{listener: l, cancel: cancel})
	return true
}

// Remove unregisters l from key and cancels its host registration.
// It reports whether l was registered.
func (r *Registry[L]) Remove(key string, l L) bool {
	r.mu.Lock()
	entries := r.keys[key]
	idx := -1
	for i, e := range entries {
		if e.listener == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return false
	}

	cancel := entries[idx].cancel
	rest := make([]entry[L], 0, len(entries)-1)
	rest = append(rest, entries[:idx]...)
	rest = append(rest, entries[idx+1:]...)
	if len(rest) == 0 {
		delete(r.keys, key)
	} else {
		r.keys[key] = rest
	}
	r.mu.Unlock()

	cancel()
	return true
}

// RemoveAll unregisters every listener of key. It reports whether at least
// one listener was removed.
func (r *Registry[L]) RemoveAll(key string) bool {
	r.mu.Lock()
	entries := r.keys[key]
	delete(r.keys, key)
	r.mu.Unlock()

	for _, e := range entries {
		e.cancel()
	}
	return len(entries) > 0
}

// Close unregisters every listener of every key.
func (r *Registry[L]) Close() {
	r.mu.Lock()
	all := r.keys
	r.keys = make(map[string][]entry[L])
	r.mu.Unlock()

	for _, entries := range all {
		for _, e := range entries {
			e.cancel()
		}
	}
}

// Has reports whether l is registered under key.
func (r *Registry[L]) Has(key string, l L) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.keys[key] {
		if e.listener == l {
			return true
		}
	}
	return false
}

// Count returns the number of listeners registered under key.
func (r *Registry[L]) Count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys[key])
}

// Keys returns the sorted keys that have at least one listener.
func (r *Registry[L]) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.keys))
	for k := range r.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
