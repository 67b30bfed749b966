package webstorage

import "time"

// Area is a Web Storage area as exposed by the host (window.localStorage or
// window.sessionStorage). Implementations must be comparable, typically a
// pointer, because change events are matched to areas by identity.
type Area interface {
	// Len returns the number of key/value pairs in the area.
	Len() int
	// GetItem returns the raw value stored under key.
	GetItem(key string) (string, bool)
	// SetItem stores value under key. It fails when the host refuses the
	// write, for example because the quota is exhausted.
	SetItem(key, value string) error
	// RemoveItem deletes key if present.
	RemoveItem(key string)
	// Key returns the name of the key at index in host order.
	Key(index int) (string, bool)
	// Clear deletes every key.
	Clear()
}

// HostEvent is a storage change notification as delivered by the host. It
// mirrors the DOM StorageEvent: nil strings stand for null.
type HostEvent struct {
	// Key is the changed key, or nil when the area was cleared.
	Key *string
	// OldValue is the raw value before the change.
	OldValue *string
	// NewValue is the raw value after the change.
	NewValue *string
	// URL is the address of the document whose script made the change.
	URL string
	// StorageArea is the area that changed, as seen by the receiving window.
	StorageArea Area
	// TimeStamp is when the host created the event.
	TimeStamp time.Time
}

// EventTarget is the host-wide source of storage events.
type EventTarget interface {
	// AddStorageListener registers fn for every storage event and returns the
	// function that unregisters it.
	AddStorageListener(fn func(HostEvent)) (remove func())
}

// Window is a host exposing both storage areas and their event stream.
type Window interface {
	EventTarget
	LocalStorage() Area
	SessionStorage() Area
}
