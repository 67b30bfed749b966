// Package cookiestorage provides typed access to a cookie jar.
//
// Values are written to the jar as {"value": ...} envelopes, so a cookie
// holding the string "true" stays distinct from one holding the boolean
// true. Listeners are registered per cookie name:
//
//	store := cookiestorage.New(cookies.FromRequest(r))
//	store.AddListener("cart", cookiestorage.NewListener(func(ev cookiestorage.Event) {
//		log.Println("cart changed", ev.NewValue)
//	}))
package cookiestorage
