package browser

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/typedstore/pkg/logging"
	"github.com/getmockd/typedstore/pkg/webstorage"
)

// DefaultQuota is the per-area storage limit, in bytes of keys plus values.
const DefaultQuota = 5 << 20

// Option configures an Origin.
type Option func(*Origin)

// WithQuota sets the per-area storage limit. Zero or a negative value
// disables the limit.
func WithQuota(bytes int) Option {
	return func(o *Origin) { o.quota = bytes }
}

// WithLogger sets the origin's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Origin) {
		if logger != nil {
			o.log = logger
		}
	}
}

// WithClock sets the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(o *Origin) {
		if now != nil {
			o.now = now
		}
	}
}

// Origin is a set of windows sharing one localStorage. Every window has a
// sessionStorage of its own.
type Origin struct {
	url   string
	quota int
	now   func() time.Time
	log   *slog.Logger

	// mu guards every store, window and listener list of the origin.
	mu      sync.Mutex
	local   *store
	windows []*Window
}

// NewOrigin creates an origin for url, for example "https://example.com".
func NewOrigin(url string, opts ...Option) *Origin {
	o := &Origin{
		url:   strings.TrimSuffix(url, "/"),
		quota: DefaultQuota,
		now:   time.Now,
		log:   logging.Nop(),
		local: newStore(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// URL returns the origin's URL.
func (o *Origin) URL() string { return o.url }

// Open opens a new window on path.
func (o *Origin) Open(path string) *Window {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	w := &Window{
		id:     uuid.NewString(),
		url:    o.url + path,
		origin: o,
	}
	w.local = &Area{window: w, kind: Local, data: o.local}
	w.session = &Area{window: w, kind: Session, data: newStore()}

	o.mu.Lock()
	o.windows = append(o.windows, w)
	o.mu.Unlock()

	o.log.Debug("window opened", "window", w.id, "url", w.url)
	return w
}

// Windows returns the open windows in the order they were opened.
func (o *Origin) Windows() []*Window {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*Window, len(o.windows))
	copy(out, o.windows)
	return out
}

type subscription struct {
	fn func(webstorage.HostEvent)
}

// Window is one browsing context of an origin. It implements
// webstorage.Window.
type Window struct {
	id      string
	url     string
	origin  *Origin
	local   *Area
	session *Area

	// guarded by origin.mu
	listeners []*subscription
	closed    bool
}

// ID returns the window's unique identifier.
func (w *Window) ID() string { return w.id }

// URL returns the window's document URL.
func (w *Window) URL() string { return w.url }

// LocalStorage returns the window's view of the origin's local storage.
func (w *Window) LocalStorage() webstorage.Area { return w.local }

// SessionStorage returns the window's session storage.
func (w *Window) SessionStorage() webstorage.Area { return w.session }

// AddStorageListener registers fn for storage events caused by other
// windows. The returned function unregisters it and may be called more than
// once.
func (w *Window) AddStorageListener(fn func(webstorage.HostEvent)) func() {
	o := w.origin
	sub := &subscription{fn: fn}

	o.mu.Lock()
	if w.closed {
		o.mu.Unlock()
		return func() {}
	}
	w.listeners = append(w.listeners, sub)
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range w.listeners {
			if s == sub {
				w.listeners = append(w.listeners[:i:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of storage listeners registered on the
// window.
func (w *Window) ListenerCount() int {
	w.origin.mu.Lock()
	defer w.origin.mu.Unlock()
	return len(w.listeners)
}

// Close detaches the window from its origin and drops its listeners.
func (w *Window) Close() {
	o := w.origin
	o.mu.Lock()
	if w.closed {
		o.mu.Unlock()
		return
	}
	w.closed = true
	w.listeners = nil
	for i, other := range o.windows {
		if other == w {
			o.windows = append(o.windows[:i:i], o.windows[i+1:]...)
			break
		}
	}
	o.mu.Unlock()

	o.log.Debug("window closed", "window", w.id)
}

var _ webstorage.Window = (*Window)(nil)
