//go:build js && wasm

package jshost

import (
	"errors"
	"fmt"
	"sync"
	"syscall/js"
	"time"

	"github.com/getmockd/typedstore/pkg/webstorage"
)

// ErrUnavailable is returned when the global scope has no window or the
// storage areas cannot be reached.
var ErrUnavailable = errors.New("web storage is not available")

// StorageError is a JavaScript exception thrown by a storage call, most
// commonly a QuotaExceededError.
type StorageError struct {
	Op   string
	Key  string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %q: %s: %v", e.Op, e.Key, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Window wraps the global window object.
type Window struct {
	value   js.Value
	local   *Area
	session *Area
}

// Current returns the global window.
func Current() (*Window, error) {
	return Wrap(js.Global().Get("window"))
}

// Wrap returns a Window around a JavaScript window object.
func Wrap(v js.Value) (w *Window, err error) {
	if v.IsUndefined() || v.IsNull() {
		return nil, ErrUnavailable
	}
	// Accessing storage throws a SecurityError in sandboxed frames.
	defer func() {
		if r := recover(); r != nil {
			w, err = nil, fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()
	local := v.Get("localStorage")
	session := v.Get("sessionStorage")
	if local.IsUndefined() || local.IsNull() || session.IsUndefined() || session.IsNull() {
		return nil, ErrUnavailable
	}
	return &Window{
		value:   v,
		local:   &Area{value: local},
		session: &Area{value: session},
	}, nil
}

// LocalStorage returns window.localStorage.
func (w *Window) LocalStorage() webstorage.Area { return w.local }

// SessionStorage returns window.sessionStorage.
func (w *Window) SessionStorage() webstorage.Area { return w.session }

// AddStorageListener registers fn for the window's "storage" events.
// The returned function removes the listener and releases the callback.
func (w *Window) AddStorageListener(fn func(webstorage.HostEvent)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		fn(w.convert(args[0]))
		return nil
	})
	w.value.Call("addEventListener", "storage", cb)

	var once sync.Once
	return func() {
		once.Do(func() {
			w.value.Call("removeEventListener", "storage", cb)
			cb.Release()
		})
	}
}

func (w *Window) convert(ev js.Value) webstorage.HostEvent {
	out := webstorage.HostEvent{
		Key:      optionalString(ev.Get("key")),
		OldValue: optionalString(ev.Get("oldValue")),
		NewValue: optionalString(ev.Get("newValue")),
		URL:      ev.Get("url").String(),
	}
	switch area := ev.Get("storageArea"); {
	case area.Equal(w.local.value):
		out.StorageArea = w.local
	case area.Equal(w.session.value):
		out.StorageArea = w.session
	}
	if ts := ev.Get("timeStamp"); ts.Type() == js.TypeNumber {
		origin := js.Global().Get("performance").Get("timeOrigin")
		if origin.Type() == js.TypeNumber {
			ms := origin.Float() + ts.Float()
			out.TimeStamp = time.UnixMilli(int64(ms))
		}
	}
	if out.TimeStamp.IsZero() {
		out.TimeStamp = time.Now()
	}
	return out
}

// Area wraps a JavaScript Storage object.
type Area struct {
	value js.Value
}

// Len returns storage.length.
func (a *Area) Len() int {
	return a.value.Get("length").Int()
}

// GetItem calls storage.getItem.
func (a *Area) GetItem(key string) (string, bool) {
	return optionalValue(a.value.Call("getItem", key))
}

// SetItem calls storage.setItem. A thrown exception is returned as a
// *StorageError.
func (a *Area) SetItem(key, val string) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var jsErr js.Error
		if errors.As(asError(r), &jsErr) {
			err = &StorageError{Op: "setItem", Key: key, Name: jsErr.Get("name").String(), Err: jsErr}
			return
		}
		panic(r)
	}()
	a.value.Call("setItem", key, val)
	return nil
}

// RemoveItem calls storage.removeItem.
func (a *Area) RemoveItem(key string) {
	a.value.Call("removeItem", key)
}

// Key calls storage.key.
func (a *Area) Key(index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	return optionalValue(a.value.Call("key", index))
}

// Clear calls storage.clear.
func (a *Area) Clear() {
	a.value.Call("clear")
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func optionalValue(v js.Value) (string, bool) {
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func optionalString(v js.Value) *string {
	s, ok := optionalValue(v)
	if !ok {
		return nil
	}
	return &s
}

var (
	_ webstorage.Window = (*Window)(nil)
	_ webstorage.Area   = (*Area)(nil)
)
