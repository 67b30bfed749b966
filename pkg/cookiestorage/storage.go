package cookiestorage

import (
	"fmt"
	"log/slog"

	"github.com/getmockd/typedstore/internal/listeners"
	"github.com/getmockd/typedstore/internal/matching"
	"github.com/getmockd/typedstore/pkg/cookies"
	"github.com/getmockd/typedstore/pkg/logging"
	"github.com/getmockd/typedstore/pkg/value"
)

// Jar is the cookie store the adapter delegates to.
type Jar interface {
	GetAll() map[string]any
	Names() []string
	Get(name string) (any, bool)
	Set(name string, v any, opts *cookies.Options) error
	Remove(name string, opts *cookies.Options)
	AddChangeListener(fn func(cookies.Change)) (remove func())
}

var _ Jar = (*cookies.Jar)(nil)

// Event is a cookie change for one key. NewValue is nil when the cookie
// was removed or no longer holds a typed value.
type Event struct {
	Key      string
	NewValue *value.Value
	Options  *cookies.Options
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

// WithLogger sets the logger used for listener bookkeeping.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithSchema validates every value written under a key matching pattern
// against schema.
func WithSchema(pattern string, schema *value.Schema) Option {
	return func(s *Storage) {
		s.schemas = append(s.schemas, schemaBinding{pattern: pattern, schema: schema})
	}
}

// Storage is typed access to a cookie jar.
type Storage struct {
	jar       Jar
	log       *slog.Logger
	schemas   []schemaBinding
	listeners *listeners.Registry[*Listener]
}

// New returns typed access to jar. A nil jar gets a fresh in-memory one.
func New(jar Jar, opts ...Option) *Storage {
	if jar == nil {
		jar = cookies.NewJar()
	}
	s := &Storage{
		jar:       jar,
		log:       logging.Nop(),
		listeners: listeners.New[*Listener](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Jar returns the underlying cookie jar.
func (s *Storage) Jar() Jar { return s.jar }

// Len returns the number of cookies in the jar.
func (s *Storage) Len() int {
	return len(s.jar.Names())
}

// Get returns the value stored under key. Missing cookies and cookies that
// do not hold a typed value both report not found.
func (s *Storage) Get(key string) (value.Value, bool) {
	raw, ok := s.jar.Get(key)
	if !ok {
		return value.Value{}, false
	}
	return value.Unwrap(raw)
}

// Set stores v under key with the given cookie attributes.
func (s *Storage) Set(key string, v value.Value, opts *cookies.Options) error {
	for _, b := range s.schemas {
		if !matching.MatchKey(b.pattern, key) {
			continue
		}
		if err := b.schema.Validate(v); err != nil {
			return &SchemaError{Key: key, Pattern: b.pattern, Err: err}
		}
	}
	if err := s.jar.Set(key, value.Wrap(v), opts); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the cookie key.
func (s *Storage) Remove(key string, opts *cookies.Options) *Storage {
	s.jar.Remove(key, opts)
	return s
}

// Clear removes every cookie, one at a time.
func (s *Storage) Clear() *Storage {
	for _, name := range s.jar.Names() {
		s.jar.Remove(name, nil)
	}
	return s
}

// Keys returns the cookie names matching pattern. An empty pattern matches
// every name.
func (s *Storage) Keys(pattern string) ([]string, error) {
	return matching.FilterKeys(pattern, s.jar.Names())
}

// AddListener calls l for every change of the cookie key. Registering the
// same listener twice for a key has no effect.
func (s *Storage) AddListener(key string, l *Listener) *Listener {
	if l == nil {
		return nil
	}
	added := s.listeners.Add(key, l, func() func() {
		return s.jar.AddChangeListener(func(c cookies.Change) {
			if c.Name != key {
				return
			}
			ev := Event{Key: key, Options: c.Options}
			if v, ok := value.Unwrap(c.Value); ok {
				ev.NewValue = &v
			}
			l.fn(ev)
		})
	})
	if added {
		s.log.Debug("cookie listener added", "key", key, "listeners", s.listeners.Count(key))
	}
	return l
}

// RemoveListener unregisters l from key. It reports whether l was
// registered.
func (s *Storage) RemoveListener(key string, l *Listener) bool {
	removed := s.listeners.Remove(key, l)
	if removed {
		s.log.Debug("cookie listener removed", "key", key)
	}
	return removed
}

// RemoveListeners unregisters every listener of key. It reports whether at
// least one listener was removed.
func (s *Storage) RemoveListeners(key string) bool {
	removed := s.listeners.RemoveAll(key)
	if removed {
		s.log.Debug("cookie listeners removed", "key", key)
	}
	return removed
}

// ListenedKeys returns the keys that currently have listeners.
func (s *Storage) ListenedKeys() []string {
	return s.listeners.Keys()
}

// Close unregisters every listener from the jar.
func (s *Storage) Close() {
	s.listeners.Close()
}
