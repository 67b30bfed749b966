package browser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/typedstore/pkg/webstorage"
)

func recordEvents(w *Window) (*[]webstorage.HostEvent, func()) {
	var events []webstorage.HostEvent
	remove := w.AddStorageListener(func(ev webstorage.HostEvent) {
		events = append(events, ev)
	})
	return &events, remove
}

func TestOrigin_Open(t *testing.T) {
	origin := NewOrigin("https://example.com/")
	w1 := origin.Open("inbox")
	w2 := origin.Open("/settings")

	assert.Equal(t, "https://example.com", origin.URL())
	assert.Equal(t, "https://example.com/inbox", w1.URL())
	assert.Equal(t, "https://example.com/settings", w2.URL())
	assert.NotEqual(t, w1.ID(), w2.ID())
	assert.Equal(t, []*Window{w1, w2}, origin.Windows())
}

func TestArea_BasicOperations(t *testing.T) {
	w := NewOrigin("https://example.com").Open("/")
	area := w.LocalStorage()

	assert.Equal(t, 0, area.Len())
	require.NoError(t, area.SetItem("a", "1"))
	require.NoError(t, area.SetItem("b", "2"))
	require.NoError(t, area.SetItem("a", "3"))

	assert.Equal(t, 2, area.Len())
	v, ok := area.GetItem("a")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	k, ok := area.Key(0)
	assert.True(t, ok)
	assert.Equal(t, "a", k, "overwriting keeps insertion position")
	k, _ = area.Key(1)
	assert.Equal(t, "b", k)
	_, ok = area.Key(2)
	assert.False(t, ok)
	_, ok = area.Key(-1)
	assert.False(t, ok)

	area.RemoveItem("a")
	_, ok = area.GetItem("a")
	assert.False(t, ok)
	k, _ = area.Key(0)
	assert.Equal(t, "b", k)

	area.Clear()
	assert.Equal(t, 0, area.Len())
}

func TestArea_LocalSharedSessionPrivate(t *testing.T) {
	origin := NewOrigin("https://example.com")
	w1, w2 := origin.Open("/"), origin.Open("/")

	require.NoError(t, w1.LocalStorage().SetItem("shared", "yes"))
	require.NoError(t, w1.SessionStorage().SetItem("private", "yes"))

	v, ok := w2.LocalStorage().GetItem("shared")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)

	_, ok = w2.SessionStorage().GetItem("private")
	assert.False(t, ok)
}

func TestArea_EventsGoToOtherWindows(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	origin := NewOrigin("https://example.com", WithClock(func() time.Time { return at }))
	writer, reader := origin.Open("/writer"), origin.Open("/reader")

	own, _ := recordEvents(writer)
	got, _ := recordEvents(reader)

	require.NoError(t, writer.LocalStorage().SetItem("k", "v1"))
	require.NoError(t, writer.LocalStorage().SetItem("k", "v2"))
	writer.LocalStorage().RemoveItem("k")

	assert.Empty(t, *own, "the writing window is not notified")
	require.Len(t, *got, 3)

	first := (*got)[0]
	assert.Equal(t, "k", *first.Key)
	assert.Nil(t, first.OldValue)
	assert.Equal(t, "v1", *first.NewValue)
	assert.Equal(t, "https://example.com/writer", first.URL)
	assert.Equal(t, at, first.TimeStamp)
	assert.True(t, first.StorageArea == reader.LocalStorage(), "event carries the receiving window's area")

	second := (*got)[1]
	assert.Equal(t, "v1", *second.OldValue)
	assert.Equal(t, "v2", *second.NewValue)

	third := (*got)[2]
	assert.Equal(t, "v2", *third.OldValue)
	assert.Nil(t, third.NewValue)
}

func TestArea_SilentChanges(t *testing.T) {
	origin := NewOrigin("https://example.com")
	writer, reader := origin.Open("/"), origin.Open("/")
	got, _ := recordEvents(reader)

	require.NoError(t, writer.LocalStorage().SetItem("k", "v"))
	require.NoError(t, writer.LocalStorage().SetItem("k", "v"))
	writer.LocalStorage().RemoveItem("missing")
	writer.SessionStorage().Clear()

	assert.Len(t, *got, 1)
}

func TestArea_ClearEvent(t *testing.T) {
	origin := NewOrigin("https://example.com")
	writer, reader := origin.Open("/"), origin.Open("/")
	require.NoError(t, writer.LocalStorage().SetItem("k", "v"))

	got, _ := recordEvents(reader)
	writer.LocalStorage().Clear()

	require.Len(t, *got, 1)
	assert.Nil(t, (*got)[0].Key)
	assert.Nil(t, (*got)[0].OldValue)
	assert.Nil(t, (*got)[0].NewValue)
}

func TestArea_SessionEventsStayInWindow(t *testing.T) {
	origin := NewOrigin("https://example.com")
	writer, reader := origin.Open("/"), origin.Open("/")
	got, _ := recordEvents(reader)

	require.NoError(t, writer.SessionStorage().SetItem("k", "v"))
	assert.Empty(t, *got)
}

func TestWindow_RemoveListener(t *testing.T) {
	origin := NewOrigin("https://example.com")
	writer, reader := origin.Open("/"), origin.Open("/")

	got, remove := recordEvents(reader)
	assert.Equal(t, 1, reader.ListenerCount())

	remove()
	remove()
	assert.Equal(t, 0, reader.ListenerCount())

	require.NoError(t, writer.LocalStorage().SetItem("k", "v"))
	assert.Empty(t, *got)
}

func TestWindow_ListenerOrder(t *testing.T) {
	origin := NewOrigin("https://example.com")
	writer, reader := origin.Open("/"), origin.Open("/")

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		reader.AddStorageListener(func(webstorage.HostEvent) { order = append(order, i) })
	}

	require.NoError(t, writer.LocalStorage().SetItem("k", "v"))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestWindow_ListenerMayWrite(t *testing.T) {
	origin := NewOrigin("https://example.com")
	writer, reader := origin.Open("/"), origin.Open("/")

	reader.AddStorageListener(func(ev webstorage.HostEvent) {
		if ev.Key != nil && *ev.Key == "ping" {
			_ = reader.LocalStorage().SetItem("pong", "1")
		}
	})
	pongs, _ := recordEvents(writer)

	require.NoError(t, writer.LocalStorage().SetItem("ping", "1"))
	require.Len(t, *pongs, 1)
	assert.Equal(t, "pong", *(*pongs)[0].Key)
}

func TestWindow_Close(t *testing.T) {
	origin := NewOrigin("https://example.com")
	writer, reader := origin.Open("/"), origin.Open("/")
	got, _ := recordEvents(reader)

	reader.Close()
	reader.Close()
	assert.Equal(t, []*Window{writer}, origin.Windows())
	assert.Equal(t, 0, reader.ListenerCount())

	require.NoError(t, writer.LocalStorage().SetItem("k", "v"))
	assert.Empty(t, *got)

	remove := reader.AddStorageListener(func(webstorage.HostEvent) {})
	assert.NotPanics(t, remove)
}

func TestArea_Quota(t *testing.T) {
	origin := NewOrigin("https://example.com", WithQuota(10))
	area := origin.Open("/").LocalStorage()

	require.NoError(t, area.SetItem("k", "123456789"))
	err := area.SetItem("x", "1")
	require.Error(t, err)

	var quotaErr *QuotaExceededError
	require.True(t, errors.As(err, &quotaErr))
	assert.Equal(t, "x", quotaErr.Key)
	assert.Equal(t, 10, quotaErr.Quota)
	assert.Equal(t, 12, quotaErr.Requested)

	require.NoError(t, area.SetItem("k", "12345678"), "replacing a value frees its old size")
	area.RemoveItem("k")
	require.NoError(t, area.SetItem("x", "1"))
}

func TestArea_Kind(t *testing.T) {
	w := NewOrigin("https://example.com").Open("/")
	assert.Equal(t, Local, w.local.Kind())
	assert.Equal(t, Session, w.session.Kind())
	assert.Equal(t, "sessionStorage", Session.String())
}
