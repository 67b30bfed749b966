package webstorage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getmockd/typedstore/internal/listeners"
	"github.com/getmockd/typedstore/internal/matching"
	"github.com/getmockd/typedstore/pkg/logging"
	"github.com/getmockd/typedstore/pkg/value"
)

// Event is a decoded storage change for one key of one area.
type Event struct {
	Key string
	// OldValue is the value before the change; nil when there was none.
	OldValue *value.Value
	// NewValue is the value after the change; nil when the key was removed.
	NewValue  *value.Value
	URL       string
	TimeStamp time.Time
}

// Listener wraps a callback so it can be registered and later removed by
// identity.
type Listener struct {
	fn func(Event)
}

// NewListener returns a Listener calling fn.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}

type schemaBinding struct {
	pattern string
	schema  *value.Schema
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger used for listener bookkeeping and dropped
// events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithSchema validates every value written under a key matching pattern
// (a doublestar glob) against schema.
func WithSchema(pattern string, schema *value.Schema) Option {
	return func(s *Storage) {
		s.schemas = append(s.schemas, schemaBinding{pattern: pattern, schema: schema})
	}
}

// Storage is typed access to one Web Storage area. Values are stored as
// JSON envelopes and change events are filtered down to per-key listeners.
type Storage struct {
	area      Area
	target    EventTarget
	log       *slog.Logger
	schemas   []schemaBinding
	listeners *listeners.Registry[*Listener]
}

// New returns typed access to area, listening for changes on target.
func New(area Area, target EventTarget, opts ...Option) *Storage {
	s := &Storage{
		area:      area,
		target:    target,
		log:       logging.Nop(),
		listeners: listeners.New[*Listener](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewLocal returns typed access to the window's local storage.
func NewLocal(w Window, opts ...Option) *Storage {
	return New(w.LocalStorage(), w, opts...)
}

// NewSession returns typed access to the window's session storage.
func NewSession(w Window, opts ...Option) *Storage {
	return New(w.SessionStorage(), w, opts...)
}

// Area returns the underlying host area.
func (s *Storage) Area() Area { return s.area }

// Len returns the number of key/value pairs in the area.
func (s *Storage) Len() int {
	return s.area.Len()
}

// Get returns the value stored under key. A missing key reports not found;
// an entry that is not a valid envelope is a *value.DecodeError.
func (s *Storage) Get(key string) (value.Value, bool, error) {
	raw, ok := s.area.GetItem(key)
	if !ok {
		return value.Value{}, false, nil
	}
	v, found, err := value.Decode(raw)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("read %q: %w", key, err)
	}
	return v, found, nil
}

// Set stores v under key.
func (s *Storage) Set(key string, v value.Value) error {
	if err := s.validate(key, v); err != nil {
		return err
	}
	raw, err := value.Encode(v)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := s.area.SetItem(key, raw); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *Storage) Remove(key string) *Storage {
	s.area.RemoveItem(key)
	return s
}

// Key returns the name of the key at index, in host order.
func (s *Storage) Key(index int) (string, bool) {
	return s.area.Key(index)
}

// Keys returns the keys matching pattern in host order. An empty pattern
// matches every key.
func (s *Storage) Keys(pattern string) ([]string, error) {
	n := s.area.Len()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		k, ok := s.area.Key(i)
		if !ok {
			break
		}
		keys = append(keys, k)
	}
	return matching.FilterKeys(pattern, keys)
}

// Clear deletes every key of the area.
func (s *Storage) Clear() *Storage {
	s.area.Clear()
	return s
}

// AddListener calls l for every change of key in this area. Registering the
// same listener twice for a key has no effect.
func (s *Storage) AddListener(key string, l *Listener) *Listener {
	if l == nil {
		return nil
	}
	added := s.listeners.Add(key, l, func() func() {
		return s.target.AddStorageListener(func(ev HostEvent) {
			if ev.Key == nil || *ev.Key != key || ev.StorageArea != s.area {
				return
			}
			event, err := decodeEvent(key, ev)
			if err != nil {
				s.log.Error("dropping storage event", "key", key, "error", err)
				return
			}
			l.fn(event)
		})
	})
	if added {
		s.log.Debug("storage listener added", "key", key, "listeners", s.listeners.Count(key))
	}
	return l
}

// RemoveListener unregisters l from key. It reports whether l was
// registered.
func (s *Storage) RemoveListener(key string, l *Listener) bool {
	removed := s.listeners.Remove(key, l)
	if removed {
		s.log.Debug("storage listener removed", "key", key)
	}
	return removed
}

// RemoveListeners unregisters every listener of key. It reports whether at
// least one listener was removed.
func (s *Storage) RemoveListeners(key string) bool {
	removed := s.listeners.RemoveAll(key)
	if removed {
		s.log.Debug("storage listeners removed", "key", key)
	}
	return removed
}

// ListenedKeys returns the keys that currently have listeners.
func (s *Storage) ListenedKeys() []string {
	return s.listeners.Keys()
}

// Close unregisters every listener from the host.
func (s *Storage) Close() {
	s.listeners.Close()
}

func (s *Storage) validate(key string, v value.Value) error {
	for _, b := range s.schemas {
		if !matching.MatchKey(b.pattern, key) {
			continue
		}
		if err := b.schema.Validate(v); err != nil {
			return &SchemaError{Key: key, Pattern: b.pattern, Err: err}
		}
	}
	return nil
}

func decodeEvent(key string, ev HostEvent) (Event, error) {
	event := Event{Key: key, URL: ev.URL, TimeStamp: ev.TimeStamp}
	var err error
	if event.OldValue, err = decodeRaw(ev.OldValue); err != nil {
		return Event{}, err
	}
	if event.NewValue, err = decodeRaw(ev.NewValue); err != nil {
		return Event{}, err
	}
	return event, nil
}

func decodeRaw(raw *string) (*value.Value, error) {
	if raw == nil {
		return nil, nil
	}
	v, found, err := value.Decode(*raw)
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}
