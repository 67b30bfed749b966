// Package webstorage provides typed access to Web Storage areas
// (localStorage and sessionStorage).
//
// A Storage wraps one host Area. Values are written as JSON envelopes (see
// package value) and read back with their shape intact. Change
// notifications come from the host's EventTarget, which reports changes for
// every area and key; each registered listener gets its own host
// registration that only forwards events for its key in this Storage's area.
//
// Usage:
//
//	local := webstorage.NewLocal(win)
//	if err := local.Set("prefs", value.Object(map[string]value.Value{
//	    "theme": value.String("dark"),
//	})); err != nil {
//	    return err
//	}
//	prefs, found, err := local.Get("prefs")
//
//	l := local.AddListener("prefs", webstorage.NewListener(func(ev webstorage.Event) {
//	    // ev.OldValue, ev.NewValue
//	}))
//	defer local.RemoveListener("prefs", l)
//
// Hosts are provided by package browser (in memory) and package
// browser/jshost (syscall/js, for js/wasm builds).
package webstorage
