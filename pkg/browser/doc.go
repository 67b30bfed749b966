// Package browser is an in-memory Web Storage host.
//
// An Origin groups windows that share one localStorage; each Window owns its
// own sessionStorage. Windows implement webstorage.Window, so they plug
// straight into the typed adapters:
//
//	origin := browser.NewOrigin("https://example.com")
//	tab1 := origin.Open("/inbox")
//	tab2 := origin.Open("/settings")
//
//	inbox := webstorage.NewLocal(tab1)
//	settings := webstorage.NewLocal(tab2)
//
// Storage events follow browser rules: a change is announced to every other
// window sharing the changed area, never to the window that made it.
// Writing the value already stored, removing a missing key and clearing an
// empty area are silent. Events are delivered synchronously, in listener
// registration order, after the origin lock is released, so listeners may
// read and write storage.
package browser
