package browser

import (
	"fmt"

	"github.com/getmockd/typedstore/pkg/webstorage"
)

// Kind distinguishes the two storage areas of a window.
type Kind int

// Storage area kinds.
const (
	Local Kind = iota
	Session
)

func (k Kind) String() string {
	if k == Session {
		return "sessionStorage"
	}
	return "localStorage"
}

// QuotaExceededError is returned by SetItem when the write would push the
// area past its quota.
type QuotaExceededError struct {
	Kind      Kind
	Key       string
	Quota     int
	Requested int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s quota exceeded writing %q: %d bytes requested, %d allowed", e.Kind, e.Key, e.Requested, e.Quota)
}

// store holds the items of one storage area in insertion order.
type store struct {
	keys  []string
	items map[string]string
	used  int
}

func newStore() *store {
	return &store{items: make(map[string]string)}
}

func (s *store) remove(key string) {
	old := s.items[key]
	delete(s.items, key)
	s.used -= len(key) + len(old)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Area is a window's view of a storage area. It implements webstorage.Area.
type Area struct {
	window *Window
	kind   Kind
	data   *store
}

// Kind reports whether the area is local or session storage.
func (a *Area) Kind() Kind { return a.kind }

// Len returns the number of items in the area.
func (a *Area) Len() int {
	o := a.window.origin
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(a.data.keys)
}

// GetItem returns the raw value stored under key.
func (a *Area) GetItem(key string) (string, bool) {
	o := a.window.origin
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := a.data.items[key]
	return v, ok
}

// SetItem stores val under key and notifies the other windows sharing the
// area. Writing the value already stored is a no-op.
func (a *Area) SetItem(key, val string) error {
	o := a.window.origin
	o.mu.Lock()

	old, had := a.data.items[key]
	if had && old == val {
		o.mu.Unlock()
		return nil
	}

	used := a.data.used + len(key) + len(val)
	if had {
		used -= len(key) + len(old)
	}
	if o.quota > 0 && used > o.quota {
		o.mu.Unlock()
		o.log.Warn("storage quota exceeded", "area", a.kind.String(), "key", key, "requested", used, "quota", o.quota)
		return &QuotaExceededError{Kind: a.kind, Key: key, Quota: o.quota, Requested: used}
	}

	if !had {
		a.data.keys = append(a.data.keys, key)
	}
	a.data.items[key] = val
	a.data.used = used

	var oldPtr *string
	if had {
		oldPtr = &old
	}
	pending := a.collect(&key, oldPtr, &val)
	o.mu.Unlock()

	pending.deliver()
	return nil
}

// RemoveItem deletes key and notifies the other windows sharing the area.
func (a *Area) RemoveItem(key string) {
	o := a.window.origin
	o.mu.Lock()

	old, had := a.data.items[key]
	if !had {
		o.mu.Unlock()
		return
	}
	a.data.remove(key)
	pending := a.collect(&key, &old, nil)
	o.mu.Unlock()

	pending.deliver()
}

// Key returns the key at index in insertion order.
func (a *Area) Key(index int) (string, bool) {
	o := a.window.origin
	o.mu.Lock()
	defer o.mu.Unlock()
	if index < 0 || index >= len(a.data.keys) {
		return "", false
	}
	return a.data.keys[index], true
}

// Clear deletes every item and notifies the other windows sharing the area
// with a key-less event.
func (a *Area) Clear() {
	o := a.window.origin
	o.mu.Lock()

	if len(a.data.keys) == 0 {
		o.mu.Unlock()
		return
	}
	a.data.keys = nil
	a.data.items = make(map[string]string)
	a.data.used = 0
	pending := a.collect(nil, nil, nil)
	o.mu.Unlock()

	pending.deliver()
}

type delivery struct {
	fn func(webstorage.HostEvent)
	ev webstorage.HostEvent
}

type deliveries []delivery

func (d deliveries) deliver() {
	for _, item := range d {
		item.fn(item.ev)
	}
}

// collect builds the events for every other open window whose area shares
// a's data. The caller must hold the origin lock.
func (a *Area) collect(key, oldVal, newVal *string) deliveries {
	o := a.window.origin
	source := a.window
	now := o.now()

	var out deliveries
	for _, w := range o.windows {
		if w == source || w.closed {
			continue
		}
		target := w.local
		if a.kind == Session {
			target = w.session
		}
		if target.data != a.data {
			continue
		}
		ev := webstorage.HostEvent{
			Key:         key,
			OldValue:    oldVal,
			NewValue:    newVal,
			URL:         source.url,
			StorageArea: target,
			TimeStamp:   now,
		}
		for _, sub := range w.listeners {
			out = append(out, delivery{fn: sub.fn, ev: ev})
		}
	}
	return out
}

var _ webstorage.Area = (*Area)(nil)
