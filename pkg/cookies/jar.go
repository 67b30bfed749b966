package cookies

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ohler55/ojg/oj"

	"github.com/getmockd/typedstore/pkg/logging"
)

// Change describes a cookie write or removal. Value is the value handed to
// Set, or nil for a removal.
type Change struct {
	Name    string
	Value   any
	Options *Options
}

// JarOption configures a Jar.
type JarOption func(*Jar)

// WithLogger sets the jar's logger.
func WithLogger(logger *slog.Logger) JarOption {
	return func(j *Jar) {
		if logger != nil {
			j.log = logger
		}
	}
}

// WithClock sets the time source used to decide whether an Expires
// attribute lies in the past.
func WithClock(now func() time.Time) JarOption {
	return func(j *Jar) {
		if now != nil {
			j.now = now
		}
	}
}

type changeListener struct {
	fn func(Change)
}

// Jar is an in-memory cookie jar. Names keep their insertion order.
type Jar struct {
	log *slog.Logger
	now func() time.Time

	mu        sync.Mutex
	names     []string
	raw       map[string]string
	listeners []*changeListener
	pending   []*http.Cookie
}

// NewJar returns an empty jar.
func NewJar(opts ...JarOption) *Jar {
	j := &Jar{
		log: logging.Nop(),
		now: time.Now,
		raw: make(map[string]string),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// ParseHeader returns a jar seeded from the value of a Cookie request
// header, e.g. "a=1; b=%7B%7D". Malformed pairs are skipped and values are
// URL-decoded when possible. The first occurrence of a name wins.
func ParseHeader(header string, opts ...JarOption) *Jar {
	j := NewJar(opts...)
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		if _, seen := j.raw[name]; seen {
			continue
		}
		val = strings.TrimSpace(val)
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			val = val[1 : len(val)-1]
		}
		j.put(name, decodeValue(val))
	}
	return j
}

// FromRequest returns a jar seeded from the cookies of r.
func FromRequest(r *http.Request, opts ...JarOption) *Jar {
	j := NewJar(opts...)
	for _, c := range r.Cookies() {
		if _, seen := j.raw[c.Name]; seen {
			continue
		}
		j.put(c.Name, decodeValue(c.Value))
	}
	return j
}

// Len returns the number of cookies.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.names)
}

// Names returns the cookie names in insertion order.
func (j *Jar) Names() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.names))
	copy(out, j.names)
	return out
}

// GetRaw returns the decoded string value of a cookie.
func (j *Jar) GetRaw(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	v, ok := j.raw[name]
	return v, ok
}

// Get returns a cookie's value. Values that look like a JSON object or
// array and parse as one are returned parsed; anything else is returned as
// the raw string.
func (j *Jar) Get(name string) (any, bool) {
	raw, ok := j.GetRaw(name)
	if !ok {
		return nil, false
	}
	return readValue(raw), true
}

// GetAll returns every cookie as Get would return it.
func (j *Jar) GetAll() map[string]any {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make(map[string]any, len(j.raw))
	for name, raw := range j.raw {
		out[name] = readValue(raw)
	}
	return out
}

// Set writes a cookie. Strings are stored verbatim; any other value is
// stored as its JSON encoding. Options with an Expires in the past or a
// negative MaxAge delete the cookie instead.
func (j *Jar) Set(name string, v any, opts *Options) error {
	if opts.expired(j.now()) {
		j.Remove(name, opts)
		return nil
	}
	raw, err := writeValue(v)
	if err != nil {
		return fmt.Errorf("set cookie %q: %w", name, err)
	}

	j.mu.Lock()
	j.put(name, raw)
	j.pending = append(j.pending, opts.Cookie(name, raw))
	fns := j.snapshot()
	j.mu.Unlock()

	j.log.Debug("cookie set", "name", name, "listeners", len(fns))
	emit(fns, Change{Name: name, Value: v, Options: opts.clone()})
	return nil
}

// Remove deletes a cookie. Listeners are notified even when the cookie
// did not exist.
func (j *Jar) Remove(name string, opts *Options) {
	j.mu.Lock()
	if _, ok := j.raw[name]; ok {
		delete(j.raw, name)
		for i, n := range j.names {
			if n == name {
				j.names = append(j.names[:i:i], j.names[i+1:]...)
				break
			}
		}
	}
	c := opts.Cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	j.pending = append(j.pending, c)
	fns := j.snapshot()
	j.mu.Unlock()

	j.log.Debug("cookie removed", "name", name, "listeners", len(fns))
	emit(fns, Change{Name: name, Options: opts.clone()})
}

// AddChangeListener registers fn for every write and removal. Listeners
// run synchronously in registration order. The returned function
// unregisters fn and may be called more than once.
func (j *Jar) AddChangeListener(fn func(Change)) func() {
	l := &changeListener{fn: fn}
	j.mu.Lock()
	j.listeners = append(j.listeners, l)
	j.mu.Unlock()

	return func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		for i, other := range j.listeners {
			if other == l {
				j.listeners = append(j.listeners[:i:i], j.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered change listeners.
func (j *Jar) ListenerCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.listeners)
}

// Header serializes the jar as the value of a Cookie request header.
func (j *Jar) Header() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	var b strings.Builder
	for i, name := range j.names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(encodeValue(j.raw[name]))
	}
	return b.String()
}

// WriteTo adds a Set-Cookie header to w for every write and removal since
// the last call, in the order they happened.
func (j *Jar) WriteTo(w http.ResponseWriter) {
	j.mu.Lock()
	pending := j.pending
	j.pending = nil
	j.mu.Unlock()

	for _, c := range pending {
		http.SetCookie(w, c)
	}
}

// put stores raw under name. The caller must hold j.mu or own j exclusively.
func (j *Jar) put(name, raw string) {
	if _, ok := j.raw[name]; !ok {
		j.names = append(j.names, name)
	}
	j.raw[name] = raw
}

func (j *Jar) snapshot() []*changeListener {
	out := make([]*changeListener, len(j.listeners))
	copy(out, j.listeners)
	return out
}

func emit(listeners []*changeListener, c Change) {
	for _, l := range listeners {
		l.fn(c)
	}
}

func readValue(raw string) any {
	if raw == "" || (raw[0] != '{' && raw[0] != '[') {
		return raw
	}
	var data any
	if err := oj.Unmarshal([]byte(raw), &data); err != nil {
		return raw
	}
	return data
}

func writeValue(v any) (s string, err error) {
	if str, ok := v.(string); ok {
		return str, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("encode: %v", r)
		}
	}()
	return oj.JSON(v, &oj.Options{Sort: true}), nil
}
